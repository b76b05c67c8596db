package bot

import (
	"context"
	"time"

	"inkbook/database"
	"inkbook/models"

	"go.uber.org/zap"
)

// HandleUpdate applies one inbound message to the sender's session.
//
// Messages from the same user are applied one at a time in lock order; each sees
// the state the previous one wrote. Nothing is written when a step fails. A booking
// inserted for a step whose session write then fails is removed again unless the
// write may have landed, see settleBooking.
func (s *DefaultBotService) HandleUpdate(ctx context.Context, update models.BotUpdate) (*models.BotReply, error) {
	if update.UserID == nil || *update.UserID <= 0 {
		return nil, ErrInvalidIdentity
	}
	userID := *update.UserID
	if s.Sessions == nil || s.Finalizer == nil || s.Finalizer.Repo == nil {
		return nil, ErrStorageUnavailable
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	logger := s.Logger.With(zap.Int64("userID", userID))

	unlock, err := s.Locker.Lock(ctx, userID)
	if err != nil {
		logger.Warn("HandleUpdate: could not lock session", zap.Error(err))
		return nil, wrap(ErrStorageUnavailable, err)
	}
	defer unlock()

	var username string
	if update.Username != nil {
		username = *update.Username
	}
	session, created, err := s.Sessions.ResolveOrCreate(ctx, userID, username)
	if err != nil {
		logger.Error("HandleUpdate: failed to resolve session", zap.Error(err))
		return nil, readError(err)
	}
	if created {
		logger.Info("HandleUpdate: new session")
		return &models.BotReply{Reply: replyGreeting, State: models.BotStateAskName}, nil
	}

	state, err := models.ParseBotState(string(session.State))
	if err != nil {
		logger.Warn("HandleUpdate: unknown stored state, restarting dialogue", zap.String("state", string(session.State)))
		state = models.BotStateAskName
	}

	step := Transition(state, session.Answers, update.Text())
	if !step.Advanced {
		return &models.BotReply{Reply: step.Reply, State: step.Next}, nil
	}

	reply := step.Reply
	var bookingID string
	if step.Action == ActionFinalize {
		bookingID, err = s.Finalizer.Finalize(ctx, userID, step.Answers)
		if err != nil {
			logger.Error("HandleUpdate: failed to finalize booking", zap.Error(err))
			return nil, err
		}
		reply = completionReply(bookingID)
	}

	if err := s.Sessions.Advance(ctx, userID, step.Next, step.Answers); err != nil {
		logger.Error("HandleUpdate: failed to advance session",
			zap.String("from", string(state)), zap.String("to", string(step.Next)), zap.Error(err))
		if bookingID != "" && s.settleBooking(userID, bookingID, step.Next, err, logger) {
			logger.Info("HandleUpdate: booking created", zap.String("bookingID", bookingID))
			return &models.BotReply{Reply: reply, State: step.Next}, nil
		}
		return nil, writeError(err)
	}

	if bookingID != "" {
		logger.Info("HandleUpdate: booking created", zap.String("bookingID", bookingID))
	}
	return &models.BotReply{Reply: reply, State: step.Next}, nil
}

// settleBooking decides what happens to a booking whose session write failed and
// reports whether the session turned out to be advanced after all.
//
// A rejected write means the session is untouched, so the booking is removed. A
// write that timed out or lost its connection may still have been applied; the
// booking is removed only once a fresh read shows the session short of want, and
// kept when the session cannot be read at all.
func (s *DefaultBotService) settleBooking(userID int64, bookingID string, want models.BotState, advanceErr error, logger *zap.Logger) bool {
	// Fresh context: the request one may be what just expired.
	ctx, cancel := context.WithTimeout(context.Background(), s.settleTimeout())
	defer cancel()

	logger = logger.With(zap.String("bookingID", bookingID))
	if !database.IsUnavailable(advanceErr) {
		s.revoke(ctx, bookingID, logger)
		return false
	}

	session, err := s.Sessions.Get(ctx, userID)
	if err != nil {
		logger.Warn("HandleUpdate: session state unknown after failed write, keeping booking", zap.Error(err))
		return false
	}
	if session.State == want {
		logger.Warn("HandleUpdate: session write reported failure but was applied")
		return true
	}
	s.revoke(ctx, bookingID, logger)
	return false
}

func (s *DefaultBotService) revoke(ctx context.Context, bookingID string, logger *zap.Logger) {
	if err := s.Finalizer.Revoke(ctx, bookingID); err != nil {
		logger.Error("HandleUpdate: failed to revoke orphaned booking", zap.Error(err))
	}
}

func (s *DefaultBotService) settleTimeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return 5 * time.Second
}
