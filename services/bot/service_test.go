package bot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"inkbook/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestService() (*DefaultBotService, *fakeSessionRepo, *fakeAppointmentRepo) {
	sessions := newFakeSessionRepo()
	appts := &fakeAppointmentRepo{}
	return NewBotService(sessions, appts, nil, zap.NewNop()), sessions, appts
}

func send(t *testing.T, svc BotService, userID int64, text *string) *models.BotReply {
	t.Helper()
	reply, err := svc.HandleUpdate(context.Background(), models.BotUpdate{UserID: &userID, MessageText: text})
	if err != nil {
		t.Fatalf("HandleUpdate(%d): %v", userID, err)
	}
	return reply
}

func str(s string) *string { return &s }

func TestHandleUpdateBookingScenario(t *testing.T) {
	svc, sessions, appts := newTestService()
	const user int64 = 42

	first := send(t, svc, user, nil)
	if first.State != models.BotStateAskName || first.Reply != replyGreeting {
		t.Fatalf("first reply = %+v", first)
	}
	if sessions.creates != 1 {
		t.Fatalf("creates = %d", sessions.creates)
	}

	steps := []struct {
		text string
		want models.BotState
	}{
		{"Alex", models.BotStateAskPhone},
		{"+1555", models.BotStateAskDate},
		{"2025-12-01", models.BotStateAskTime},
		{"14:00", models.BotStateAskNote},
		{"no preference", models.BotStateComplete},
	}
	var last *models.BotReply
	for _, s := range steps {
		last = send(t, svc, user, str(s.text))
		if last.State != s.want {
			t.Fatalf("after %q state = %s, want %s", s.text, last.State, s.want)
		}
	}

	if appts.count() != 1 {
		t.Fatalf("bookings = %d, want 1", appts.count())
	}
	got := appts.items[0]
	if got.ClientName != "Alex" || got.Phone != "+1555" || got.PreferredDate != "2025-12-01" ||
		got.PreferredTime != "14:00" || got.Note != "no preference" {
		t.Fatalf("booking fields = %+v", got)
	}
	if got.Source != models.AppointmentSourceBot || got.Status != models.AppointmentStatusNew {
		t.Fatalf("booking tags = %s/%s", got.Source, got.Status)
	}
	if got.TelegramUserID == nil || *got.TelegramUserID != user {
		t.Fatalf("telegram user id = %v", got.TelegramUserID)
	}
	if !strings.Contains(last.Reply, got.ID) {
		t.Fatalf("reply %q does not carry booking id %s", last.Reply, got.ID)
	}
	if sessions.creates != 1 {
		t.Fatalf("creates = %d, want 1", sessions.creates)
	}
}

func TestHandleUpdateFirstContactIgnoresText(t *testing.T) {
	svc, sessions, _ := newTestService()
	reply := send(t, svc, 7, str("Alex"))
	if reply.State != models.BotStateAskName || reply.Reply != replyGreeting {
		t.Fatalf("reply = %+v", reply)
	}
	if s := sessions.get(7); s.Answers != (models.BotAnswers{}) {
		t.Fatalf("answers written on first contact: %+v", s.Answers)
	}
}

func TestHandleUpdateRequiresUserID(t *testing.T) {
	svc, sessions, _ := newTestService()
	zero := int64(0)
	for _, upd := range []models.BotUpdate{{}, {UserID: &zero, MessageText: str("hi")}} {
		_, err := svc.HandleUpdate(context.Background(), upd)
		if !errors.Is(err, ErrInvalidIdentity) {
			t.Fatalf("err = %v, want ErrInvalidIdentity", err)
		}
	}
	if sessions.creates != 0 {
		t.Fatalf("session created for invalid identity")
	}
}

func TestHandleUpdateCompleteIsStable(t *testing.T) {
	svc, sessions, appts := newTestService()
	sessions.put(models.BotSession{
		TelegramUserID: 5,
		State:          models.BotStateComplete,
		Answers:        models.BotAnswers{ClientName: "Alex"},
	})

	for i := 0; i < 3; i++ {
		reply := send(t, svc, 5, str("again"))
		if reply.State != models.BotStateComplete || reply.Reply != replyAlreadyDone {
			t.Fatalf("reply = %+v", reply)
		}
	}
	if appts.count() != 0 {
		t.Fatalf("complete session created bookings")
	}
	if s := sessions.get(5); s.LastUpdate != nil {
		t.Fatalf("complete session was rewritten")
	}
}

func TestHandleUpdateBlankNameLeavesSessionUntouched(t *testing.T) {
	svc, sessions, _ := newTestService()
	send(t, svc, 9, nil)

	reply := send(t, svc, 9, str("   "))
	if reply.State != models.BotStateAskName || reply.Reply != replyAskNameAgain {
		t.Fatalf("reply = %+v", reply)
	}
	if s := sessions.get(9); s.LastUpdate != nil || s.Answers != (models.BotAnswers{}) {
		t.Fatalf("session written: %+v", s)
	}
}

func atNote(userID int64) models.BotSession {
	return models.BotSession{
		TelegramUserID: userID,
		State:          models.BotStateAskNote,
		Answers:        models.BotAnswers{ClientName: "Alex", Phone: "+1555", PreferredDate: "2025-12-01", PreferredTime: "14:00"},
	}
}

func TestHandleUpdateFinalizeFailureDoesNotAdvance(t *testing.T) {
	svc, sessions, appts := newTestService()
	sessions.put(atNote(11))
	appts.createErr = errors.New("write rejected")

	_, err := svc.HandleUpdate(context.Background(), models.BotUpdate{UserID: ptr(11), MessageText: str("note")})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("err = %v, want ErrPersistence", err)
	}
	if s := sessions.get(11); s.State != models.BotStateAskNote || s.Answers.Note != "" {
		t.Fatalf("session advanced after failed booking: %+v", s)
	}
}

func TestHandleUpdateAdvanceFailureRevokesBooking(t *testing.T) {
	svc, sessions, appts := newTestService()
	sessions.put(atNote(12))
	sessions.advanceErr = errors.New("update rejected")

	_, err := svc.HandleUpdate(context.Background(), models.BotUpdate{UserID: ptr(12), MessageText: str("note")})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("err = %v, want ErrPersistence", err)
	}
	if appts.count() != 0 || len(appts.deleted) != 1 {
		t.Fatalf("booking not revoked: items=%d deleted=%v", appts.count(), appts.deleted)
	}
	if s := sessions.get(12); s.State != models.BotStateAskNote {
		t.Fatalf("state = %s", s.State)
	}

	// Retrying once the store recovers yields exactly one booking.
	sessions.advanceErr = nil
	reply := send(t, svc, 12, str("note"))
	if reply.State != models.BotStateComplete || appts.count() != 1 {
		t.Fatalf("retry: reply=%+v bookings=%d", reply, appts.count())
	}
}

func TestHandleUpdateTimedOutAdvanceThatLandedKeepsBooking(t *testing.T) {
	svc, sessions, appts := newTestService()
	sessions.put(atNote(15))
	sessions.advanceErr = context.DeadlineExceeded
	sessions.advanceLands = true

	reply, err := svc.HandleUpdate(context.Background(), models.BotUpdate{UserID: ptr(15), MessageText: str("note")})
	if err != nil {
		t.Fatalf("HandleUpdate: %v", err)
	}
	if reply.State != models.BotStateComplete || !strings.Contains(reply.Reply, "appt-1") {
		t.Fatalf("reply = %+v", reply)
	}
	if appts.count() != 1 || len(appts.deleted) != 0 {
		t.Fatalf("booking lost: items=%d deleted=%v", appts.count(), appts.deleted)
	}

	sessions.advanceErr = nil
	again := send(t, svc, 15, str("anything"))
	if again.Reply != replyAlreadyDone || appts.count() != 1 {
		t.Fatalf("retry: reply=%+v bookings=%d", again, appts.count())
	}
}

func TestHandleUpdateTimedOutAdvanceNotAppliedRevokesBooking(t *testing.T) {
	svc, sessions, appts := newTestService()
	sessions.put(atNote(16))
	sessions.advanceErr = context.DeadlineExceeded

	_, err := svc.HandleUpdate(context.Background(), models.BotUpdate{UserID: ptr(16), MessageText: str("note")})
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("err = %v, want ErrStorageUnavailable", err)
	}
	if appts.count() != 0 || len(appts.deleted) != 1 {
		t.Fatalf("booking not revoked: items=%d deleted=%v", appts.count(), appts.deleted)
	}
	if s := sessions.get(16); s.State != models.BotStateAskNote {
		t.Fatalf("state = %s", s.State)
	}
}

func TestHandleUpdateUnconfirmedAdvanceKeepsBooking(t *testing.T) {
	svc, sessions, appts := newTestService()
	sessions.put(atNote(17))
	sessions.advanceErr = mongo.ErrClientDisconnected
	sessions.getErr = mongo.ErrClientDisconnected

	_, err := svc.HandleUpdate(context.Background(), models.BotUpdate{UserID: ptr(17), MessageText: str("note")})
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("err = %v, want ErrStorageUnavailable", err)
	}
	if appts.count() != 1 || len(appts.deleted) != 0 {
		t.Fatalf("unconfirmed booking removed: items=%d deleted=%v", appts.count(), appts.deleted)
	}
}

func TestHandleUpdateNetworkFailureIsStorageUnavailable(t *testing.T) {
	svc, sessions, _ := newTestService()
	sessions.put(models.BotSession{TelegramUserID: 13, State: models.BotStateAskPhone, Answers: models.BotAnswers{ClientName: "A"}})
	sessions.advanceErr = mongo.ErrClientDisconnected

	_, err := svc.HandleUpdate(context.Background(), models.BotUpdate{UserID: ptr(13), MessageText: str("+1")})
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("err = %v, want ErrStorageUnavailable", err)
	}
}

func TestHandleUpdateResolveFailure(t *testing.T) {
	svc, sessions, _ := newTestService()
	sessions.resolveErr = errors.New("no route to host")

	_, err := svc.HandleUpdate(context.Background(), models.BotUpdate{UserID: ptr(14)})
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("err = %v, want ErrStorageUnavailable", err)
	}
}

func TestHandleUpdateMissingStorage(t *testing.T) {
	svc := NewBotService(nil, nil, nil, nil)
	_, err := svc.HandleUpdate(context.Background(), models.BotUpdate{UserID: ptr(1)})
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("err = %v, want ErrStorageUnavailable", err)
	}
}

func TestHandleUpdateLegacyStartState(t *testing.T) {
	svc, sessions, _ := newTestService()
	sessions.put(models.BotSession{TelegramUserID: 15, State: models.BotState("start")})

	reply := send(t, svc, 15, str("Alex"))
	if reply.State != models.BotStateAskPhone {
		t.Fatalf("state = %s", reply.State)
	}
}

func TestHandleUpdateSerializesSameUser(t *testing.T) {
	svc, sessions, appts := newTestService()
	const user int64 = 77
	send(t, svc, user, nil)
	sessions.resolveDelay = 2 * time.Millisecond

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.HandleUpdate(context.Background(), models.BotUpdate{UserID: ptr(user), MessageText: str("x")})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("HandleUpdate: %v", err)
		}
	}

	// Five serialized turns walk ask_name through ask_note exactly once each.
	if s := sessions.get(user); s.State != models.BotStateComplete {
		t.Fatalf("state = %s, want complete", s.State)
	}
	if appts.count() != 1 {
		t.Fatalf("bookings = %d, want 1", appts.count())
	}
}

func TestHandleUpdateDifferentUsersRunInParallel(t *testing.T) {
	svc, sessions, _ := newTestService()
	sessions.resolveDelay = 50 * time.Millisecond

	start := time.Now()
	var wg sync.WaitGroup
	for i := int64(1); i <= 4; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if _, err := svc.HandleUpdate(context.Background(), models.BotUpdate{UserID: ptr(id)}); err != nil {
				t.Errorf("HandleUpdate(%d): %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	if elapsed := time.Since(start); elapsed > 180*time.Millisecond {
		t.Fatalf("distinct users were serialized: %s", elapsed)
	}
	if sessions.creates != 4 {
		t.Fatalf("creates = %d", sessions.creates)
	}
}

func ptr(v int64) *int64 { return &v }
