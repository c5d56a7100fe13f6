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

// Compile-time check to ensure GameRepository implements the interface
var _ repositories.GameRepository = (*GameRepository)(nil)

// GameRepository handles MongoDB operations for Game
type GameRepository struct {
	collection *mongo.Collection
}

// NewGameRepository creates a new GameRepository
func NewGameRepository(db *mongo.Database) *GameRepository {
	return &GameRepository{
		collection: db.Collection("games"),
	}
}

// Create inserts a new game
func (r *GameRepository) Create(ctx context.Context, game *models.Game) error {
	game.ID = primitive.NewObjectID()
	game.CreatedAt = time.Now()
	game.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, game)
	return err
}

// FindByID finds a game by ID
func (r *GameRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Game, error) {
	var game models.Game
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&game)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &game, nil
}

// FindAll retrieves all games, newest first
func (r *GameRepository) FindAll(ctx context.Context) ([]*models.Game, error) {
	var games []*models.Game
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &games); err != nil {
		return nil, err
	}
	if games == nil {
		games = []*models.Game{}
	}
	return games, nil
}

// Update updates an existing game
func (r *GameRepository) Update(ctx context.Context, game *models.Game) error {
	game.UpdatedAt = time.Now()
	filter := bson.M{"_id": game.ID}
	update := bson.M{"$set": game}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
