package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"inkbook/database"
	"inkbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCatalogRepo struct {
	services  *mongo.Collection
	portfolio *mongo.Collection
}

func NewMongoCatalogRepo(db *mongo.Database) (CatalogRepository, error) {
	repo := &MongoCatalogRepo{
		services:  db.Collection(database.CollectionServices),
		portfolio: db.Collection(database.CollectionPortfolio),
	}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MongoCatalogRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := database.EnsureIndexes(ctx, r.services, []mongo.IndexModel{
		database.UniqueIDIndex(),
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
	}); err != nil {
		return err
	}
	return database.EnsureIndexes(ctx, r.portfolio, []mongo.IndexModel{
		database.UniqueIDIndex(),
	})
}

var byCreation = bson.D{{Key: "created_at", Value: 1}}

func (r *MongoCatalogRepo) ListServices(ctx context.Context, activeOnly bool) ([]models.TattooService, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}
	return database.FindAll[models.TattooService](ctx, r.services, filter, options.Find().SetSort(byCreation))
}

func (r *MongoCatalogRepo) CreateService(ctx context.Context, svc *models.TattooService) (string, error) {
	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	svc.CreatedAt = time.Now()
	if _, err := r.services.InsertOne(ctx, svc); err != nil {
		return "", fmt.Errorf("failed to create service: %w", err)
	}
	return svc.ID, nil
}

func (r *MongoCatalogRepo) ListPortfolio(ctx context.Context) ([]models.PortfolioItem, error) {
	return database.FindAll[models.PortfolioItem](ctx, r.portfolio, bson.M{}, options.Find().SetSort(byCreation))
}

func (r *MongoCatalogRepo) CreatePortfolioItem(ctx context.Context, item *models.PortfolioItem) (string, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CreatedAt = time.Now()
	if _, err := r.portfolio.InsertOne(ctx, item); err != nil {
		return "", fmt.Errorf("failed to create portfolio item: %w", err)
	}
	return item.ID, nil
}
