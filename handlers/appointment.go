package handlers

import (
	"net/http"

	"inkbook/models"
	"inkbook/services/appointment"
	"inkbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AppointmentHandler struct {
	AppointmentSvc appointment.AppointmentService
	Logger         *zap.Logger
}

func NewAppointmentHandler(svc appointment.AppointmentService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{AppointmentSvc: svc, Logger: logger}
}

// CreateAppointment handles POST /appointments.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var input models.AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeBadRequest, "invalid appointment", err.Error())
		return
	}
	id, err := h.AppointmentSvc.Create(c.Request.Context(), input)
	if err != nil {
		h.Logger.Error("CreateAppointment: failed to save appointment", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, utils.CodeInternal, "failed to save appointment", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ListAppointments handles GET /admin/appointments.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	items, err := h.AppointmentSvc.List(c.Request.Context())
	if err != nil {
		h.Logger.Error("ListAppointments: failed to fetch appointments", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, utils.CodeInternal, "failed to fetch appointments", "")
		return
	}
	c.JSON(http.StatusOK, items)
}
