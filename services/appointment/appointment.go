package appointment

import (
	"context"
	"strings"

	appointmentRepo "inkbook/database/repository/appointment"
	"inkbook/models"
)

// AppointmentService handles booking requests submitted from the website.
type AppointmentService interface {
	Create(ctx context.Context, in models.AppointmentInput) (string, error)
	List(ctx context.Context) ([]models.Appointment, error)
}

type DefaultAppointmentService struct {
	Repo appointmentRepo.AppointmentRepository
}

// Create stores a site booking. Status and source are fixed here, not taken from the client.
func (s *DefaultAppointmentService) Create(ctx context.Context, in models.AppointmentInput) (string, error) {
	appt := &models.Appointment{
		ClientName:    strings.TrimSpace(in.ClientName),
		Phone:         strings.TrimSpace(in.Phone),
		ServiceID:     strings.TrimSpace(in.ServiceID),
		PreferredDate: strings.TrimSpace(in.PreferredDate),
		PreferredTime: strings.TrimSpace(in.PreferredTime),
		Note:          strings.TrimSpace(in.Note),
		Status:        models.AppointmentStatusNew,
		Source:        models.AppointmentSourceSite,
	}
	return s.Repo.Create(ctx, appt)
}

func (s *DefaultAppointmentService) List(ctx context.Context) ([]models.Appointment, error) {
	return s.Repo.GetAll(ctx)
}
