package mongodb

import (
	"context"
	"strings"
	"time"

	"github.com/playtone/prizeplay-backend/internal/models"
	"github.com/playtone/prizeplay-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure DiscountRepository implements the interface
var _ repositories.DiscountRepository = (*DiscountRepository)(nil)

// DiscountRepository handles MongoDB operations for Discount
type DiscountRepository struct {
	collection *mongo.Collection
}

// NewDiscountRepository creates a new DiscountRepository
func NewDiscountRepository(db *mongo.Database) *DiscountRepository {
	return &DiscountRepository{
		collection: db.Collection("discounts"),
	}
}

// Create inserts a new discount. Codes are stored upper-cased so lookups are
// case-insensitive.
func (r *DiscountRepository) Create(ctx context.Context, discount *models.Discount) error {
	discount.ID = primitive.NewObjectID()
	discount.Code = strings.ToUpper(strings.TrimSpace(discount.Code))
	discount.CreatedAt = time.Now()
	discount.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, discount)
	return err
}

// FindByCode finds a discount by its code
func (r *DiscountRepository) FindByCode(ctx context.Context, code string) (*models.Discount, error) {
	var discount models.Discount
	filter := bson.M{"code": strings.ToUpper(strings.TrimSpace(code))}
	err := r.collection.FindOne(ctx, filter).Decode(&discount)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &discount, nil
}

// FindAll retrieves all discounts, newest first
func (r *DiscountRepository) FindAll(ctx context.Context) ([]*models.Discount, error) {
	var discounts []*models.Discount
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &discounts); err != nil {
		return nil, err
	}
	if discounts == nil {
		discounts = []*models.Discount{}
	}
	return discounts, nil
}

// Update updates an existing discount
func (r *DiscountRepository) Update(ctx context.Context, discount *models.Discount) error {
	discount.UpdatedAt = time.Now()
	filter := bson.M{"_id": discount.ID}
	update := bson.M{"$set": discount}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetActive enables or disables a discount code
func (r *DiscountRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
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
