package handlers

import (
	"context"
	"net/http"

	"inkbook/services/backup"
	"inkbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Exporter produces the backup dump.
type Exporter interface {
	Export(ctx context.Context) (*backup.Dump, error)
}

// AdminHandler encapsulates admin-only operations that are not catalog writes.
type AdminHandler struct {
	Exporter Exporter
	Logger   *zap.Logger
}

func NewAdminHandler(exporter Exporter, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Exporter: exporter, Logger: logger}
}

// ExportBackup handles GET /backup/export.
func (ah *AdminHandler) ExportBackup(c *gin.Context) {
	dump, err := ah.Exporter.Export(c.Request.Context())
	if err != nil {
		ah.Logger.Error("ExportBackup: export failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, utils.CodeInternal, "failed to export backup", "")
		return
	}
	c.JSON(http.StatusOK, dump)
}
