package sessionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inkbook/database"
	"inkbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo creates the repository and makes sure its indexes exist.
func NewMongoSessionRepo(db *mongo.Database) (SessionRepository, error) {
	repo := &MongoSessionRepo{coll: db.Collection(database.CollectionBotSessions)}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MongoSessionRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return database.EnsureIndexes(ctx, r.coll, []mongo.IndexModel{
		{Keys: bson.D{{Key: "telegram_user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		database.UniqueIDIndex(),
	})
}

// ResolveOrCreate upserts on telegram_user_id so racing first contacts from the same
// user still end up with a single session; only the inserting call sees created=true.
func (r *MongoSessionRepo) ResolveOrCreate(ctx context.Context, userID int64, username string) (*models.BotSession, bool, error) {
	filter := bson.M{"telegram_user_id": userID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"id":         uuid.New().String(),
			"state":      models.BotStateAskName,
			"data":       models.BotAnswers{},
			"created_at": time.Now(),
		},
	}
	if username != "" {
		update["$set"] = bson.M{"username": username}
	}

	res, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return nil, false, fmt.Errorf("failed to resolve session for user %d: %w", userID, err)
	}
	created := err == nil && res.UpsertedCount == 1

	var session models.BotSession
	if err := r.coll.FindOne(ctx, filter).Decode(&session); err != nil {
		return nil, false, fmt.Errorf("failed to load session for user %d: %w", userID, err)
	}
	return &session, created, nil
}

func (r *MongoSessionRepo) Get(ctx context.Context, userID int64) (*models.BotSession, error) {
	var session models.BotSession
	err := r.coll.FindOne(ctx, bson.M{"telegram_user_id": userID}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %d: %w", userID, ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session for user %d: %w", userID, err)
	}
	return &session, nil
}

// Advance sets state, answers and the update timestamp in one $set.
func (r *MongoSessionRepo) Advance(ctx context.Context, userID int64, state models.BotState, answers models.BotAnswers) error {
	filter := bson.M{"telegram_user_id": userID}
	update := bson.M{"$set": bson.M{
		"state":       state,
		"data":        answers,
		"last_update": time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to advance session for user %d: %w", userID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %d: %w", userID, ErrSessionNotFound)
	}
	return nil
}

func (r *MongoSessionRepo) GetAll(ctx context.Context) ([]models.BotSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return database.FindAll[models.BotSession](ctx, r.coll, bson.M{}, opts)
}
