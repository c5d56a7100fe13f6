package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/playtone/prizeplay-backend/internal/models"
	"github.com/playtone/prizeplay-backend/internal/repositories"
	"github.com/playtone/prizeplay-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// UserService defines the interface for user account operations
type UserService interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUsers(ctx context.Context) ([]*models.User, error)
	Topup(ctx context.Context, userID primitive.ObjectID, req *models.TopupRequest) (*models.User, error)
	GetWins(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.WinRecord, error)
	GetTransactions(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Transaction, error)
}

// Compile-time check to ensure UserServiceImpl implements UserService
var _ UserService = (*UserServiceImpl)(nil)

// UserServiceImpl handles user account and balance operations
type UserServiceImpl struct {
	userRepo        repositories.UserRepository
	winRecordRepo   repositories.WinRecordRepository
	transactionRepo repositories.TransactionRepository
}

// NewUserService creates a new UserServiceImpl
func NewUserService(
	userRepo repositories.UserRepository,
	winRecordRepo repositories.WinRecordRepository,
	transactionRepo repositories.TransactionRepository,
) *UserServiceImpl {
	return &UserServiceImpl{
		userRepo:        userRepo,
		winRecordRepo:   winRecordRepo,
		transactionRepo: transactionRepo,
	}
}

// GetUserByID retrieves a user by ID
func (s *UserServiceImpl) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user.Password = ""
	return user, nil
}

// GetUsers retrieves all users
func (s *UserServiceImpl) GetUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	for _, u := range users {
		u.Password = ""
	}
	return users, nil
}

// Topup credits the user's wallet and writes a ledger row
func (s *UserServiceImpl) Topup(ctx context.Context, userID primitive.ObjectID, req *models.TopupRequest) (*models.User, error) {
	amount, err := utils.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, errors.New("topup amount must be positive")
	}
	pence := utils.ToPence(amount)

	if err := s.userRepo.CreditBalances(ctx, userID, pence, 0); err != nil {
		slog.Error("Failed to credit topup", "error", err, "userId", userID.Hex(), "amount", req.Amount)
		return nil, fmt.Errorf("failed to credit topup: %w", err)
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Type:        models.TransactionTopup,
		WalletDelta: pence,
		Reference:   req.Reference,
		Note:        "wallet topup",
	}
	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		// The credit already landed; the ledger row is best-effort.
		slog.Error("Failed to record topup transaction", "error", err, "userId", userID.Hex())
	}

	slog.Info("Wallet topped up", "userId", userID.Hex(), "amount", utils.FormatPence(pence))
	return s.GetUserByID(ctx, userID)
}

// GetWins retrieves the user's win history
func (s *UserServiceImpl) GetWins(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.WinRecord, error) {
	return s.winRecordRepo.FindByUserID(ctx, userID, page, limit)
}

// GetTransactions retrieves the user's balance ledger
func (s *UserServiceImpl) GetTransactions(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Transaction, error) {
	return s.transactionRepo.FindByUserID(ctx, userID, page, limit)
}
