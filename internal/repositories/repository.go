package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/playtone/prizeplay-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conditional-update sentinels. The storage layer enforces the concurrency
// contract with single conditional updates; these errors report that the
// condition did not hold at write time.
var (
	// ErrWinCapReached is returned by RecordWin when the outcome was no
	// longer eligible at increment time (a concurrent play took the last
	// cap slot, or the outcome was deactivated).
	ErrWinCapReached = errors.New("outcome win cap reached or outcome no longer eligible")

	// ErrInsufficientBalance is returned by DebitBalances when the user's
	// balances could not cover the debit at debit time.
	ErrInsufficientBalance = errors.New("insufficient balance at debit time")
)

// OutcomeRepository defines the interface for outcome pool operations
type OutcomeRepository interface {
	Create(ctx context.Context, outcome *models.Outcome) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Outcome, error)
	// FindByGameID returns the game's pool in stable display order.
	FindByGameID(ctx context.Context, gameID primitive.ObjectID) ([]*models.Outcome, error)
	Update(ctx context.Context, outcome *models.Outcome) error
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	// RecordWin atomically re-checks eligibility and increments timesWon in
	// one conditional update. Returns ErrWinCapReached when the condition
	// fails, so the caller can fall through to another outcome.
	RecordWin(ctx context.Context, id primitive.ObjectID) error
	// ReleaseWin decrements timesWon to undo a RecordWin whose win record
	// could not be written. Guarded so the counter never goes negative.
	ReleaseWin(ctx context.Context, id primitive.ObjectID) error
}

// GameRepository defines the interface for game configuration operations
type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Game, error)
	FindAll(ctx context.Context) ([]*models.Game, error)
	Update(ctx context.Context, game *models.Game) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	// DebitBalances atomically debits wallet (pence) and points in a single
	// conditional update guarded by both balances being sufficient at debit
	// time. Returns ErrInsufficientBalance when the guard fails.
	DebitBalances(ctx context.Context, userID primitive.ObjectID, walletPence, points int64) error
	// CreditBalances atomically credits wallet (pence) and/or points.
	CreditBalances(ctx context.Context, userID primitive.ObjectID, walletPence, points int64) error
}

// PlayRepository defines the interface for play/order operations
type PlayRepository interface {
	Create(ctx context.Context, play *models.Play) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Play, error)
	FindByReference(ctx context.Context, reference string) (*models.Play, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Play, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PlayStatus) error
}

// WinRecordRepository defines the interface for the append-only win audit trail
type WinRecordRepository interface {
	Create(ctx context.Context, record *models.WinRecord) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.WinRecord, error)
	FindByOutcomeID(ctx context.Context, outcomeID primitive.ObjectID) ([]*models.WinRecord, error)
	CountByOutcomeID(ctx context.Context, outcomeID primitive.ObjectID) (int64, error)
	UpdateClaimStatus(ctx context.Context, id primitive.ObjectID, status models.ClaimStatus) error
}

// DiscountRepository defines the interface for discount code operations
type DiscountRepository interface {
	Create(ctx context.Context, discount *models.Discount) error
	FindByCode(ctx context.Context, code string) (*models.Discount, error)
	FindAll(ctx context.Context) ([]*models.Discount, error)
	Update(ctx context.Context, discount *models.Discount) error
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
}

// TransactionRepository defines the interface for the balance ledger
type TransactionRepository interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Transaction, error)
	FindByDateRange(ctx context.Context, start, end time.Time, page, limit int) ([]*models.Transaction, error)
}
