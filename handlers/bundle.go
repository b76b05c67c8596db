package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers plus the settings routes need.
type HandlerBundle struct {
	AdminSecret       string
	MaxRequestsPerMin int
	CORSAllowOrigins  []string

	// Service endpoints
	Root   gin.HandlerFunc
	Health gin.HandlerFunc

	// Public catalog endpoints
	ListServices  gin.HandlerFunc
	ListPortfolio gin.HandlerFunc

	// Booking endpoints
	CreateAppointment gin.HandlerFunc
	BotUpdate         gin.HandlerFunc

	// Admin endpoints
	ListAppointments gin.HandlerFunc
	AddService       gin.HandlerFunc
	AddPortfolioItem gin.HandlerFunc
	ExportBackup     gin.HandlerFunc
}
