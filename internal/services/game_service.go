package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/playtone/prizeplay-backend/internal/models"
	"github.com/playtone/prizeplay-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// GameService defines the interface for game and outcome-pool administration
type GameService interface {
	CreateGame(ctx context.Context, game *models.Game) error
	GetGameByID(ctx context.Context, id primitive.ObjectID) (*models.Game, error)
	GetGames(ctx context.Context) ([]*models.Game, error)
	UpdateGame(ctx context.Context, game *models.Game) error

	CreateOutcome(ctx context.Context, outcome *models.Outcome) error
	GetPool(ctx context.Context, gameID primitive.ObjectID) ([]*models.Outcome, error)
	UpdateOutcome(ctx context.Context, outcome *models.Outcome) error
	SetOutcomeActive(ctx context.Context, id primitive.ObjectID, active bool) error
}

// Compile-time check to ensure GameServiceImpl implements GameService
var _ GameService = (*GameServiceImpl)(nil)

// GameServiceImpl handles admin-managed game configuration
type GameServiceImpl struct {
	gameRepo    repositories.GameRepository
	outcomeRepo repositories.OutcomeRepository
}

// NewGameService creates a new GameServiceImpl
func NewGameService(gameRepo repositories.GameRepository, outcomeRepo repositories.OutcomeRepository) *GameServiceImpl {
	return &GameServiceImpl{
		gameRepo:    gameRepo,
		outcomeRepo: outcomeRepo,
	}
}

// CreateGame creates a new game configuration
func (s *GameServiceImpl) CreateGame(ctx context.Context, game *models.Game) error {
	if err := validateGame(game); err != nil {
		return err
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		slog.Error("Failed to create game", "error", err, "name", game.Name)
		return fmt.Errorf("failed to create game: %w", err)
	}
	slog.Info("Game created", "gameId", game.ID.Hex(), "name", game.Name, "type", game.Type)
	return nil
}

// GetGameByID retrieves a game by ID
func (s *GameServiceImpl) GetGameByID(ctx context.Context, id primitive.ObjectID) (*models.Game, error) {
	return s.gameRepo.FindByID(ctx, id)
}

// GetGames retrieves all games
func (s *GameServiceImpl) GetGames(ctx context.Context) ([]*models.Game, error) {
	return s.gameRepo.FindAll(ctx)
}

// UpdateGame updates a game configuration
func (s *GameServiceImpl) UpdateGame(ctx context.Context, game *models.Game) error {
	if err := validateGame(game); err != nil {
		return err
	}
	if err := s.gameRepo.Update(ctx, game); err != nil {
		slog.Error("Failed to update game", "error", err, "gameId", game.ID.Hex())
		return fmt.Errorf("failed to update game: %w", err)
	}
	slog.Info("Game updated", "gameId", game.ID.Hex(), "name", game.Name)
	return nil
}

// CreateOutcome adds an outcome to a game's pool
func (s *GameServiceImpl) CreateOutcome(ctx context.Context, outcome *models.Outcome) error {
	if err := validateOutcome(outcome); err != nil {
		return err
	}
	if _, err := s.gameRepo.FindByID(ctx, outcome.GameID); err != nil {
		return fmt.Errorf("game not found: %w", err)
	}
	if err := s.outcomeRepo.Create(ctx, outcome); err != nil {
		slog.Error("Failed to create outcome", "error", err, "gameId", outcome.GameID.Hex())
		return fmt.Errorf("failed to create outcome: %w", err)
	}
	slog.Info("Outcome created", "outcomeId", outcome.ID.Hex(), "gameId", outcome.GameID.Hex(),
		"label", outcome.Label, "weight", outcome.Weight)
	return nil
}

// GetPool retrieves a game's outcome pool in display order
func (s *GameServiceImpl) GetPool(ctx context.Context, gameID primitive.ObjectID) ([]*models.Outcome, error) {
	return s.outcomeRepo.FindByGameID(ctx, gameID)
}

// UpdateOutcome updates an outcome's configuration. The win counter is not
// writable through this path.
func (s *GameServiceImpl) UpdateOutcome(ctx context.Context, outcome *models.Outcome) error {
	if err := validateOutcome(outcome); err != nil {
		return err
	}
	if err := s.outcomeRepo.Update(ctx, outcome); err != nil {
		slog.Error("Failed to update outcome", "error", err, "outcomeId", outcome.ID.Hex())
		return fmt.Errorf("failed to update outcome: %w", err)
	}
	slog.Info("Outcome updated", "outcomeId", outcome.ID.Hex(), "label", outcome.Label)
	return nil
}

// SetOutcomeActive soft-excludes or re-includes an outcome. Outcomes are
// never deleted while win records reference them.
func (s *GameServiceImpl) SetOutcomeActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	if err := s.outcomeRepo.SetActive(ctx, id, active); err != nil {
		slog.Error("Failed to set outcome active flag", "error", err, "outcomeId", id.Hex())
		return fmt.Errorf("failed to set outcome active flag: %w", err)
	}
	slog.Info("Outcome active flag set", "outcomeId", id.Hex(), "active", active)
	return nil
}

func validateGame(game *models.Game) error {
	switch game.Type {
	case models.GameTypeSpinWheel, models.GameTypeScratchCard, models.GameTypeBalloonPop:
	default:
		return fmt.Errorf("unknown game type %q", game.Type)
	}
	if game.Name == "" {
		return errors.New("game name is required")
	}
	if game.EntryPrice < 0 {
		return errors.New("entry price must not be negative")
	}
	return nil
}

func validateOutcome(outcome *models.Outcome) error {
	if outcome.Label == "" {
		return errors.New("outcome label is required")
	}
	if outcome.Weight < 0 {
		return errors.New("outcome weight must not be negative")
	}
	if outcome.MaxWins != nil && *outcome.MaxWins < 0 {
		return errors.New("maxWins must not be negative")
	}
	switch outcome.RewardKind {
	case models.RewardCash:
		if outcome.CashAmount <= 0 {
			return errors.New("cash outcome requires a positive cash amount")
		}
	case models.RewardPoints:
		if outcome.PointsAmount <= 0 {
			return errors.New("points outcome requires a positive points amount")
		}
	case models.RewardPhysical:
		if outcome.PrizeDescription == "" {
			return errors.New("physical outcome requires a prize description")
		}
	case models.RewardTryAgain:
	default:
		return fmt.Errorf("unknown reward kind %q", outcome.RewardKind)
	}
	return nil
}
