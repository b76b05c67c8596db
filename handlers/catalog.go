package handlers

import (
	"net/http"

	"inkbook/models"
	"inkbook/services/catalog"
	"inkbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	CatalogSvc catalog.CatalogService
	Logger     *zap.Logger
}

func NewCatalogHandler(svc catalog.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{CatalogSvc: svc, Logger: logger}
}

// ListServices handles GET /services.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.CatalogSvc.ListServices(c.Request.Context())
	if err != nil {
		h.Logger.Error("ListServices: failed to fetch services", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, utils.CodeInternal, "failed to fetch services", "")
		return
	}
	c.JSON(http.StatusOK, services)
}

// ListPortfolio handles GET /portfolio.
func (h *CatalogHandler) ListPortfolio(c *gin.Context) {
	items, err := h.CatalogSvc.ListPortfolio(c.Request.Context())
	if err != nil {
		h.Logger.Error("ListPortfolio: failed to fetch portfolio", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, utils.CodeInternal, "failed to fetch portfolio", "")
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddService handles POST /admin/services.
func (h *CatalogHandler) AddService(c *gin.Context) {
	var body models.TattooService
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeBadRequest, "invalid service", err.Error())
		return
	}
	id, err := h.CatalogSvc.AddService(c.Request.Context(), body)
	if err != nil {
		h.Logger.Error("AddService: failed to create service", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, utils.CodeInternal, "failed to create service", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// AddPortfolioItem handles POST /admin/portfolio.
func (h *CatalogHandler) AddPortfolioItem(c *gin.Context) {
	var body models.PortfolioItem
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeBadRequest, "invalid portfolio item", err.Error())
		return
	}
	id, err := h.CatalogSvc.AddPortfolioItem(c.Request.Context(), body)
	if err != nil {
		h.Logger.Error("AddPortfolioItem: failed to create portfolio item", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, utils.CodeInternal, "failed to create portfolio item", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
