package appointmentRepo

import (
	"context"

	"inkbook/models"
)

type AppointmentRepository interface {
	// Create inserts the appointment, assigning ID and CreatedAt, and returns the ID.
	Create(ctx context.Context, appt *models.Appointment) (string, error)
	GetAll(ctx context.Context) ([]models.Appointment, error)
	// Delete removes an appointment. It exists only to undo an insert whose
	// surrounding operation failed; appointments are otherwise immutable here.
	Delete(ctx context.Context, id string) error
}
