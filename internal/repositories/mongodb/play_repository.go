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

// Compile-time check to ensure PlayRepository implements the interface
var _ repositories.PlayRepository = (*PlayRepository)(nil)

// PlayRepository handles MongoDB operations for Play
type PlayRepository struct {
	collection *mongo.Collection
}

// NewPlayRepository creates a new PlayRepository
func NewPlayRepository(db *mongo.Database) *PlayRepository {
	return &PlayRepository{
		collection: db.Collection("plays"),
	}
}

// Create inserts a new play. A preassigned ID is kept, since the win record
// written during resolution references the play before this insert runs.
func (r *PlayRepository) Create(ctx context.Context, play *models.Play) error {
	if play.ID.IsZero() {
		play.ID = primitive.NewObjectID()
	}
	play.CreatedAt = time.Now()
	play.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, play)
	return err
}

// FindByID finds a play by ID
func (r *PlayRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Play, error) {
	var play models.Play
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&play)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &play, nil
}

// FindByReference finds a play by its external reference
func (r *PlayRepository) FindByReference(ctx context.Context, reference string) (*models.Play, error) {
	var play models.Play
	filter := bson.M{"reference": reference}
	err := r.collection.FindOne(ctx, filter).Decode(&play)
	if err != nil {
		return nil, err
	}
	return &play, nil
}

// FindByUserID retrieves a user's plays, newest first, paginated
func (r *PlayRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Play, error) {
	var plays []*models.Play
	filter := bson.M{"userId": userID}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &plays); err != nil {
		return nil, err
	}
	if plays == nil {
		plays = []*models.Play{}
	}
	return plays, nil
}

// UpdateStatus transitions a play's lifecycle state
func (r *PlayRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PlayStatus) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
