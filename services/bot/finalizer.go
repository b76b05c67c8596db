package bot

import (
	"context"
	"errors"
	"strings"

	appointmentRepo "inkbook/database/repository/appointment"
	"inkbook/models"
)

var errMissingClientName = errors.New("client name is required")

// Finalizer turns completed dialogue answers into an appointment.
type Finalizer struct {
	Repo appointmentRepo.AppointmentRepository
}

// Finalize writes exactly one bot-sourced appointment and returns its ID.
func (f *Finalizer) Finalize(ctx context.Context, userID int64, answers models.BotAnswers) (string, error) {
	if strings.TrimSpace(answers.ClientName) == "" {
		return "", wrap(ErrPersistence, errMissingClientName)
	}

	tgID := userID
	appt := &models.Appointment{
		ClientName:     answers.ClientName,
		Phone:          answers.Phone,
		TelegramUserID: &tgID,
		PreferredDate:  answers.PreferredDate,
		PreferredTime:  answers.PreferredTime,
		Note:           answers.Note,
		Status:         models.AppointmentStatusNew,
		Source:         models.AppointmentSourceBot,
	}
	id, err := f.Repo.Create(ctx, appt)
	if err != nil {
		return "", wrap(ErrPersistence, err)
	}
	return id, nil
}

// Revoke deletes an appointment created by Finalize whose session write then failed.
func (f *Finalizer) Revoke(ctx context.Context, bookingID string) error {
	return f.Repo.Delete(ctx, bookingID)
}
