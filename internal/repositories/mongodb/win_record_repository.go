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

// Compile-time check to ensure WinRecordRepository implements the interface
var _ repositories.WinRecordRepository = (*WinRecordRepository)(nil)

// WinRecordRepository handles MongoDB operations for the win audit trail.
// Records are append-only: there is no update beyond the claim status and
// no delete.
type WinRecordRepository struct {
	collection *mongo.Collection
}

// NewWinRecordRepository creates a new WinRecordRepository
func NewWinRecordRepository(db *mongo.Database) *WinRecordRepository {
	return &WinRecordRepository{
		collection: db.Collection("winrecords"),
	}
}

// Create appends a win record
func (r *WinRecordRepository) Create(ctx context.Context, record *models.WinRecord) error {
	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now()
	if record.WinDate.IsZero() {
		record.WinDate = record.CreatedAt
	}
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// FindByUserID retrieves a user's wins, newest first, paginated
func (r *WinRecordRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.WinRecord, error) {
	var records []*models.WinRecord
	filter := bson.M{"userId": userID}
	opts := options.Find().
		SetSort(bson.D{{Key: "winDate", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []*models.WinRecord{}
	}
	return records, nil
}

// FindByOutcomeID retrieves all wins of one outcome
func (r *WinRecordRepository) FindByOutcomeID(ctx context.Context, outcomeID primitive.ObjectID) ([]*models.WinRecord, error) {
	var records []*models.WinRecord
	filter := bson.M{"outcomeId": outcomeID}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []*models.WinRecord{}
	}
	return records, nil
}

// CountByOutcomeID counts wins of one outcome. This is the recovery path for
// recomputing an outcome's timesWon counter from the audit trail.
func (r *WinRecordRepository) CountByOutcomeID(ctx context.Context, outcomeID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"outcomeId": outcomeID})
}

// UpdateClaimStatus updates fulfilment state for a physical prize win
func (r *WinRecordRepository) UpdateClaimStatus(ctx context.Context, id primitive.ObjectID, status models.ClaimStatus) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"claimStatus": status}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
