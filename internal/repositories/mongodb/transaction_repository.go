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

// Compile-time check to ensure TransactionRepository implements the interface
var _ repositories.TransactionRepository = (*TransactionRepository)(nil)

// TransactionRepository handles MongoDB operations for the balance ledger
type TransactionRepository struct {
	collection *mongo.Collection
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{
		collection: db.Collection("transactions"),
	}
}

// Create appends a ledger entry
func (r *TransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	transaction.ID = primitive.NewObjectID()
	transaction.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, transaction)
	return err
}

// FindByUserID retrieves a user's ledger entries, newest first, paginated
func (r *TransactionRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Transaction, error) {
	var transactions []*models.Transaction
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

	if err = cursor.All(ctx, &transactions); err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []*models.Transaction{}
	}
	return transactions, nil
}

// FindByDateRange retrieves ledger entries in [start, end), paginated
func (r *TransactionRepository) FindByDateRange(ctx context.Context, start, end time.Time, page, limit int) ([]*models.Transaction, error) {
	var transactions []*models.Transaction
	filter := bson.M{"createdAt": bson.M{"$gte": start, "$lt": end}}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &transactions); err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []*models.Transaction{}
	}
	return transactions, nil
}
