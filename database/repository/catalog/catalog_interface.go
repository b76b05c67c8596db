package catalogRepo

import (
	"context"

	"inkbook/models"
)

// CatalogRepository stores the studio's services and portfolio.
type CatalogRepository interface {
	ListServices(ctx context.Context, activeOnly bool) ([]models.TattooService, error)
	CreateService(ctx context.Context, svc *models.TattooService) (string, error)
	ListPortfolio(ctx context.Context) ([]models.PortfolioItem, error)
	CreatePortfolioItem(ctx context.Context, item *models.PortfolioItem) (string, error)
}
