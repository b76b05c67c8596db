package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	sessionRepo "inkbook/database/repository/session"
	"inkbook/models"
)

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[int64]models.BotSession
	creates  int

	resolveErr   error
	advanceErr   error
	getErr       error
	resolveDelay time.Duration
	// advanceLands applies the write before returning advanceErr, like an
	// update the server committed after the client gave up waiting.
	advanceLands bool
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[int64]models.BotSession)}
}

func (f *fakeSessionRepo) ResolveOrCreate(ctx context.Context, userID int64, username string) (*models.BotSession, bool, error) {
	f.mu.Lock()
	if f.resolveErr != nil {
		f.mu.Unlock()
		return nil, false, f.resolveErr
	}
	s, ok := f.sessions[userID]
	if !ok {
		s = models.BotSession{
			ID:             fmt.Sprintf("session-%d", userID),
			TelegramUserID: userID,
			Username:       username,
			State:          models.BotStateAskName,
			CreatedAt:      time.Now(),
		}
		f.sessions[userID] = s
		f.creates++
	}
	delay := f.resolveDelay
	f.mu.Unlock()

	// Widens the read-then-write window for the ordering tests.
	if delay > 0 {
		time.Sleep(delay)
	}
	return &s, !ok, nil
}

func (f *fakeSessionRepo) Advance(ctx context.Context, userID int64, state models.BotState, answers models.BotAnswers) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.advanceErr != nil && !f.advanceLands {
		return f.advanceErr
	}
	s, ok := f.sessions[userID]
	if !ok {
		return sessionRepo.ErrSessionNotFound
	}
	now := time.Now()
	s.State = state
	s.Answers = answers
	s.LastUpdate = &now
	f.sessions[userID] = s
	return f.advanceErr
}

func (f *fakeSessionRepo) Get(ctx context.Context, userID int64) (*models.BotSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.sessions[userID]
	if !ok {
		return nil, sessionRepo.ErrSessionNotFound
	}
	return &s, nil
}

func (f *fakeSessionRepo) GetAll(ctx context.Context) ([]models.BotSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.BotSession, 0, len(f.sessions))
	for _, s := range f.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSessionRepo) get(userID int64) models.BotSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[userID]
}

func (f *fakeSessionRepo) put(s models.BotSession) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.TelegramUserID] = s
}

type fakeAppointmentRepo struct {
	mu        sync.Mutex
	items     []models.Appointment
	seq       int
	createErr error
	deleted   []string
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.seq++
	appt.ID = fmt.Sprintf("appt-%d", f.seq)
	appt.CreatedAt = time.Now()
	f.items = append(f.items, *appt)
	return appt.ID, nil
}

func (f *fakeAppointmentRepo) GetAll(ctx context.Context) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Appointment(nil), f.items...), nil
}

func (f *fakeAppointmentRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, a := range f.items {
		if a.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeAppointmentRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
