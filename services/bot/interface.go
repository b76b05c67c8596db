package bot

import (
	"context"
	"time"

	appointmentRepo "inkbook/database/repository/appointment"
	sessionRepo "inkbook/database/repository/session"
	"inkbook/models"

	"go.uber.org/zap"
)

// BotService drives the chat booking dialogue.
type BotService interface {
	HandleUpdate(ctx context.Context, update models.BotUpdate) (*models.BotReply, error)
}

// DefaultBotService implements BotService on top of a session repository.
type DefaultBotService struct {
	Sessions  sessionRepo.SessionRepository
	Finalizer *Finalizer
	Locker    KeyedLocker
	Logger    *zap.Logger
	// Timeout bounds one update, lock wait included. It must stay below any lock lease.
	Timeout time.Duration
}

// NewBotService wires the default service. A nil locker falls back to an in-process one.
func NewBotService(
	sessions sessionRepo.SessionRepository,
	appointments appointmentRepo.AppointmentRepository,
	locker KeyedLocker,
	logger *zap.Logger,
) *DefaultBotService {
	if locker == nil {
		locker = NewMemoryLocker()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBotService{
		Sessions:  sessions,
		Finalizer: &Finalizer{Repo: appointments},
		Locker:    locker,
		Logger:    logger,
		Timeout:   5 * time.Second,
	}
}
