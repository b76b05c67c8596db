package sessionRepo

import (
	"context"
	"errors"

	"inkbook/models"
)

// ErrSessionNotFound is returned by Get and Advance when no session exists for the user.
var ErrSessionNotFound = errors.New("bot session not found")

// SessionRepository persists one chat booking dialogue per external user.
type SessionRepository interface {
	// ResolveOrCreate returns the user's session, creating it in the initial state
	// when none exists. created is true only for the call that inserted it.
	ResolveOrCreate(ctx context.Context, userID int64, username string) (session *models.BotSession, created bool, err error)
	// Get returns the stored session without creating one, or ErrSessionNotFound.
	Get(ctx context.Context, userID int64) (*models.BotSession, error)
	// Advance replaces the session's state and answers in a single write.
	Advance(ctx context.Context, userID int64, state models.BotState, answers models.BotAnswers) error
	// GetAll returns every stored session.
	GetAll(ctx context.Context) ([]models.BotSession, error)
}
