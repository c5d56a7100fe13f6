package mongodb

import (
	"context"
	"time"

	"github.com/playtone/prizeplay-backend/internal/models"
	"github.com/playtone/prizeplay-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure OutcomeRepository implements the interface
var _ repositories.OutcomeRepository = (*OutcomeRepository)(nil)

// OutcomeRepository handles MongoDB operations for Outcome
type OutcomeRepository struct {
	collection *mongo.Collection
}

// NewOutcomeRepository creates a new OutcomeRepository
func NewOutcomeRepository(db *mongo.Database) *OutcomeRepository {
	return &OutcomeRepository{
		collection: db.Collection("outcomes"),
	}
}

// Create inserts a new outcome
func (r *OutcomeRepository) Create(ctx context.Context, outcome *models.Outcome) error {
	outcome.ID = primitive.NewObjectID()
	outcome.TimesWon = 0
	outcome.CreatedAt = time.Now()
	outcome.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, outcome)
	return err
}

// FindByID finds an outcome by ID
func (r *OutcomeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Outcome, error) {
	var outcome models.Outcome
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&outcome)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &outcome, nil
}

// FindByGameID returns a game's outcome pool in stable display order. The
// secondary sort on creation time keeps the walk order deterministic for
// outcomes sharing a display position.
func (r *OutcomeRepository) FindByGameID(ctx context.Context, gameID primitive.ObjectID) ([]*models.Outcome, error) {
	var outcomes []*models.Outcome
	filter := bson.M{"gameId": gameID}
	opts := options.Find().SetSort(bson.D{{Key: "displayOrder", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &outcomes); err != nil {
		return nil, err
	}
	if outcomes == nil {
		outcomes = []*models.Outcome{}
	}
	return outcomes, nil
}

// Update updates an existing outcome's configuration. TimesWon is excluded
// from the $set so an admin edit can never clobber a concurrent win count.
func (r *OutcomeRepository) Update(ctx context.Context, outcome *models.Outcome) error {
	outcome.UpdatedAt = time.Now()
	filter := bson.M{"_id": outcome.ID}
	update := bson.M{"$set": bson.M{
		"label":            outcome.Label,
		"rewardKind":       outcome.RewardKind,
		"cashAmount":       outcome.CashAmount,
		"pointsAmount":     outcome.PointsAmount,
		"prizeDescription": outcome.PrizeDescription,
		"weight":           outcome.Weight,
		"maxWins":          outcome.MaxWins,
		"isActive":         outcome.IsActive,
		"displayOrder":     outcome.DisplayOrder,
		"updatedAt":        outcome.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetActive soft-excludes (or re-includes) an outcome from its pool.
// Outcomes referenced by win records are never deleted.
func (r *OutcomeRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RecordWin increments timesWon iff the outcome is still eligible, in a
// single conditional update. The filter repeats the full eligibility check
// so two concurrent plays can never both pass a maxWins boundary that only
// one can satisfy.
func (r *OutcomeRepository) RecordWin(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{
		"_id":      id,
		"isActive": true,
		"weight":   bson.M{"$gt": 0},
		"$or": bson.A{
			bson.M{"maxWins": nil},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$timesWon", "$maxWins"}}},
		},
	}
	update := bson.M{
		"$inc": bson.M{"timesWon": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrWinCapReached
	}
	return nil
}

// ReleaseWin undoes a RecordWin that could not be committed downstream.
// The timesWon guard keeps a double release from driving the counter
// negative.
func (r *OutcomeRepository) ReleaseWin(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{
		"_id":      id,
		"timesWon": bson.M{"$gt": 0},
	}
	update := bson.M{
		"$inc": bson.M{"timesWon": -1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}
