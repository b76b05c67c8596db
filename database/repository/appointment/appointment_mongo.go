package appointmentRepo

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

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo returns an AppointmentRepository backed by MongoDB.
func NewMongoAppointmentRepo(db *mongo.Database) (AppointmentRepository, error) {
	repo := &mongoAppointmentRepo{coll: db.Collection(database.CollectionAppointments)}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := database.EnsureIndexes(ctx, repo.coll, []mongo.IndexModel{
		database.UniqueIDIndex(),
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *mongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) (string, error) {
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	appt.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return "", fmt.Errorf("failed to create appointment: %w", err)
	}
	return appt.ID, nil
}

func (r *mongoAppointmentRepo) GetAll(ctx context.Context) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return database.FindAll[models.Appointment](ctx, r.coll, bson.M{}, opts)
}

func (r *mongoAppointmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete appointment %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("appointment %s not found", id)
	}
	return nil
}
