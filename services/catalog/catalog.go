package catalog

import (
	"context"
	"fmt"

	catalogRepo "inkbook/database/repository/catalog"
	"inkbook/models"

	"go.uber.org/zap"
)

const (
	keyServices  = "services:active"
	keyPortfolio = "portfolio"
)

// CatalogService serves the public listings and the admin writes that change them.
type CatalogService interface {
	ListServices(ctx context.Context) ([]models.TattooService, error)
	ListPortfolio(ctx context.Context) ([]models.PortfolioItem, error)
	AddService(ctx context.Context, svc models.TattooService) (string, error)
	AddPortfolioItem(ctx context.Context, item models.PortfolioItem) (string, error)
}

// DefaultCatalogService reads through Cache when one is configured.
// Cache failures are logged and never fail a request.
type DefaultCatalogService struct {
	Repo   catalogRepo.CatalogRepository
	Cache  ListingCache
	Logger *zap.Logger
}

func NewCatalogService(repo catalogRepo.CatalogRepository, cache ListingCache, logger *zap.Logger) *DefaultCatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultCatalogService{Repo: repo, Cache: cache, Logger: logger}
}

// ListServices returns the services visible to clients.
func (s *DefaultCatalogService) ListServices(ctx context.Context) ([]models.TattooService, error) {
	var out []models.TattooService
	if s.fromCache(ctx, keyServices, &out) {
		return out, nil
	}
	out, err := s.Repo.ListServices(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	s.toCache(ctx, keyServices, out)
	return out, nil
}

func (s *DefaultCatalogService) ListPortfolio(ctx context.Context) ([]models.PortfolioItem, error) {
	var out []models.PortfolioItem
	if s.fromCache(ctx, keyPortfolio, &out) {
		return out, nil
	}
	out, err := s.Repo.ListPortfolio(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolio: %w", err)
	}
	s.toCache(ctx, keyPortfolio, out)
	return out, nil
}

func (s *DefaultCatalogService) AddService(ctx context.Context, svc models.TattooService) (string, error) {
	active := svc.Active()
	svc.IsActive = &active
	svc.ID = ""

	id, err := s.Repo.CreateService(ctx, &svc)
	if err != nil {
		return "", err
	}
	s.invalidate(ctx, keyServices)
	return id, nil
}

func (s *DefaultCatalogService) AddPortfolioItem(ctx context.Context, item models.PortfolioItem) (string, error) {
	item.ID = ""
	id, err := s.Repo.CreatePortfolioItem(ctx, &item)
	if err != nil {
		return "", err
	}
	s.invalidate(ctx, keyPortfolio)
	return id, nil
}

func (s *DefaultCatalogService) fromCache(ctx context.Context, key string, dst interface{}) bool {
	if s.Cache == nil {
		return false
	}
	hit, err := s.Cache.Get(ctx, key, dst)
	if err != nil {
		s.Logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *DefaultCatalogService) toCache(ctx context.Context, key string, value interface{}) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, key, value); err != nil {
		s.Logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *DefaultCatalogService) invalidate(ctx context.Context, key string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, key); err != nil {
		s.Logger.Warn("catalog cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
