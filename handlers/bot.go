package handlers

import (
	"errors"
	"net/http"

	"inkbook/models"
	"inkbook/services/bot"
	"inkbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BotHandler serves the chat webhook.
type BotHandler struct {
	BotSvc bot.BotService
	Logger *zap.Logger
}

func NewBotHandler(svc bot.BotService, logger *zap.Logger) *BotHandler {
	return &BotHandler{BotSvc: svc, Logger: logger}
}

// HandleUpdate handles POST /bot/update.
func (h *BotHandler) HandleUpdate(c *gin.Context) {
	var update models.BotUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeBadRequest, "invalid update payload", err.Error())
		return
	}

	reply, err := h.BotSvc.HandleUpdate(c.Request.Context(), update)
	if err != nil {
		status, code, message := botErrorResponse(err)
		if status >= http.StatusInternalServerError {
			h.Logger.Error("HandleUpdate: failed", zap.String("code", code), zap.Error(err))
		}
		utils.JSONError(c, status, code, message, "")
		return
	}
	c.JSON(http.StatusOK, reply)
}

func botErrorResponse(err error) (int, string, string) {
	var be *bot.BotError
	if !errors.As(err, &be) {
		return http.StatusInternalServerError, utils.CodeInternal, "internal error"
	}
	switch {
	case errors.Is(err, bot.ErrInvalidIdentity):
		return http.StatusBadRequest, be.Code, be.Message
	default:
		return http.StatusInternalServerError, be.Code, be.Message
	}
}
