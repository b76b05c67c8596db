package models

import "time"

type AppointmentStatus string

const (
	AppointmentStatusNew       AppointmentStatus = "new"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusDone      AppointmentStatus = "done"
	AppointmentStatusCanceled  AppointmentStatus = "canceled"
)

type AppointmentSource string

const (
	AppointmentSourceSite AppointmentSource = "site"
	AppointmentSourceBot  AppointmentSource = "bot"
)

// Appointment is a booking request. Records are immutable once inserted.
type Appointment struct {
	ID             string            `bson:"id" json:"id"`
	ClientName     string            `bson:"client_name" json:"client_name"`
	Phone          string            `bson:"phone" json:"phone"`
	TelegramUserID *int64            `bson:"telegram_user_id,omitempty" json:"telegram_user_id,omitempty"`
	ServiceID      string            `bson:"service_id,omitempty" json:"service_id,omitempty"`
	PreferredDate  string            `bson:"preferred_date" json:"preferred_date"`
	PreferredTime  string            `bson:"preferred_time" json:"preferred_time"`
	Note           string            `bson:"note" json:"note"`
	Status         AppointmentStatus `bson:"status" json:"status"`
	Source         AppointmentSource `bson:"source" json:"source"`
	CreatedAt      time.Time         `bson:"created_at" json:"created_at"`
}

// AppointmentInput is the public booking form submitted from the website.
type AppointmentInput struct {
	ClientName    string `json:"client_name" binding:"required,max=200"`
	Phone         string `json:"phone" binding:"max=100"`
	ServiceID     string `json:"service_id" binding:"max=64"`
	PreferredDate string `json:"preferred_date" binding:"max=100"`
	PreferredTime string `json:"preferred_time" binding:"max=100"`
	Note          string `json:"note" binding:"max=2000"`
}
