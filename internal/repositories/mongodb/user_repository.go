package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/playtone/prizeplay-backend/internal/models"
	"github.com/playtone/prizeplay-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure UserRepository implements the interface
var _ repositories.UserRepository = (*UserRepository)(nil)

// UserRepository handles MongoDB operations for User
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	filter := bson.M{"email": email}
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &user, nil
}

// FindAll retrieves all users (consider pagination for production)
func (r *UserRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

// Update updates an existing user's profile fields. Balances are excluded:
// they only move through DebitBalances and CreditBalances.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	filter := bson.M{"_id": user.ID}
	update := bson.M{"$set": bson.M{
		"email":        user.Email,
		"name":         user.Name,
		"password":     user.Password,
		"role":         user.Role,
		"isActive":     user.IsActive,
		"lastActivity": user.LastActivity,
		"updatedAt":    user.UpdatedAt,
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

// DebitBalances debits wallet (pence) and points in one conditional update.
// The filter re-reads both balances at debit time, so a balance that was
// sufficient earlier in the request but has since been spent concurrently
// fails the guard instead of going negative.
func (r *UserRepository) DebitBalances(ctx context.Context, userID primitive.ObjectID, walletPence, points int64) error {
	if walletPence < 0 || points < 0 {
		return errors.New("debit amounts must not be negative")
	}
	if walletPence == 0 && points == 0 {
		return nil
	}
	filter := bson.M{
		"_id":           userID,
		"walletBalance": bson.M{"$gte": walletPence},
		"points":        bson.M{"$gte": points},
	}
	update := bson.M{
		"$inc": bson.M{"walletBalance": -walletPence, "points": -points},
		"$set": bson.M{"updatedAt": time.Now(), "lastActivity": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrInsufficientBalance
	}
	return nil
}

// CreditBalances atomically credits wallet (pence) and/or points.
func (r *UserRepository) CreditBalances(ctx context.Context, userID primitive.ObjectID, walletPence, points int64) error {
	if walletPence < 0 || points < 0 {
		return errors.New("credit amounts must not be negative")
	}
	if walletPence == 0 && points == 0 {
		return nil
	}
	filter := bson.M{"_id": userID}
	update := bson.M{
		"$inc": bson.M{"walletBalance": walletPence, "points": points},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
