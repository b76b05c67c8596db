package backup

import (
	"context"
	"fmt"

	appointmentRepo "inkbook/database/repository/appointment"
	catalogRepo "inkbook/database/repository/catalog"
	sessionRepo "inkbook/database/repository/session"
	"inkbook/models"
)

// Dump is a full JSON export keyed by collection name.
type Dump struct {
	Services     []models.TattooService `json:"tattooservice"`
	Portfolio    []models.PortfolioItem `json:"portfolioitem"`
	Appointments []models.Appointment   `json:"appointment"`
	BotSessions  []models.BotSession    `json:"botsession"`
}

type Exporter struct {
	Catalog      catalogRepo.CatalogRepository
	Appointments appointmentRepo.AppointmentRepository
	Sessions     sessionRepo.SessionRepository
}

// Export reads every collection. Collections are read one after another, so the
// dump is not a point-in-time snapshot across them.
func (e *Exporter) Export(ctx context.Context) (*Dump, error) {
	var (
		d   Dump
		err error
	)
	if d.Services, err = e.Catalog.ListServices(ctx, false); err != nil {
		return nil, fmt.Errorf("export services: %w", err)
	}
	if d.Portfolio, err = e.Catalog.ListPortfolio(ctx); err != nil {
		return nil, fmt.Errorf("export portfolio: %w", err)
	}
	if d.Appointments, err = e.Appointments.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("export appointments: %w", err)
	}
	if d.BotSessions, err = e.Sessions.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("export bot sessions: %w", err)
	}
	return &d, nil
}
