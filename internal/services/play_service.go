package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/playtone/prizeplay-backend/internal/models"
	"github.com/playtone/prizeplay-backend/internal/repositories"
	"github.com/playtone/prizeplay-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// PlayResult is what one play request resolves to. When TopupRequired is
// true nothing was committed: Allocation carries the exact shortfall and the
// caller must fund the wallet and re-invoke the whole request.
type PlayResult struct {
	Play          *models.Play      `json:"play,omitempty"`
	Outcome       *models.Outcome   `json:"outcome,omitempty"`
	WinRecord     *models.WinRecord `json:"winRecord,omitempty"`
	Allocation    *Allocation       `json:"allocation,omitempty"`
	TopupRequired bool              `json:"topupRequired"`
}

// PlayService orchestrates one play or purchase request end to end:
// apportion the charge, debit atomically, resolve the prize, persist the
// ledger. Each step is all-or-nothing; a failure after the debit refunds it.
type PlayService interface {
	Play(ctx context.Context, userID primitive.ObjectID, req *models.PlayRequest) (*PlayResult, error)
	Quote(ctx context.Context, userID primitive.ObjectID, req *models.PlayRequest) (*Allocation, error)
	GetPlayByID(ctx context.Context, id primitive.ObjectID) (*models.Play, error)
	GetPlaysByUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Play, error)
}

// Compile-time check to ensure PlayServiceImpl implements PlayService
var _ PlayService = (*PlayServiceImpl)(nil)

// PlayServiceImpl handles play orchestration
type PlayServiceImpl struct {
	gameRepo        repositories.GameRepository
	outcomeRepo     repositories.OutcomeRepository
	userRepo        repositories.UserRepository
	playRepo        repositories.PlayRepository
	discountRepo    repositories.DiscountRepository
	transactionRepo repositories.TransactionRepository
	payment         PaymentService
	resolver        PrizeResolver
}

// NewPlayService creates a new PlayServiceImpl
func NewPlayService(
	gameRepo repositories.GameRepository,
	outcomeRepo repositories.OutcomeRepository,
	userRepo repositories.UserRepository,
	playRepo repositories.PlayRepository,
	discountRepo repositories.DiscountRepository,
	transactionRepo repositories.TransactionRepository,
	payment PaymentService,
	resolver PrizeResolver,
) *PlayServiceImpl {
	return &PlayServiceImpl{
		gameRepo:        gameRepo,
		outcomeRepo:     outcomeRepo,
		userRepo:        userRepo,
		playRepo:        playRepo,
		discountRepo:    discountRepo,
		transactionRepo: transactionRepo,
		payment:         payment,
		resolver:        resolver,
	}
}

// Play executes one play request.
func (s *PlayServiceImpl) Play(ctx context.Context, userID primitive.ObjectID, req *models.PlayRequest) (*PlayResult, error) {
	game, pool, discount, err := s.loadPlayContext(ctx, req)
	if err != nil {
		return nil, err
	}

	play := &models.Play{
		ID:         primitive.NewObjectID(),
		Reference:  uuid.NewString(),
		UserID:     userID,
		GameID:     game.ID,
		Quantity:   1,
		OrderTotal: game.EntryPrice,
		Free:       game.FreeToPlay(),
		Status:     models.PlayStatusCompleted,
	}

	// 1. Charge. Free games skip apportionment entirely.
	var allocation *Allocation
	if !game.FreeToPlay() {
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}

		sources := FundingSources{UseWallet: req.UseWallet, UsePoints: req.UsePoints}
		allocation, err = s.payment.Apportion(utils.FromPence(game.EntryPrice), discount, user.WalletBalance, user.Points, sources, game.PointsAllowed)
		if err != nil {
			return nil, err
		}

		// Top-up required is a terminal state, not an error. No debit has
		// happened; the caller redirects to the funding flow.
		if allocation.TopupRequired() {
			slog.Info("Play blocked pending top-up", "userId", userID.Hex(),
				"gameId", game.ID.Hex(), "shortfall", allocation.RemainingAmount.StringFixed(2))
			return &PlayResult{Allocation: allocation, TopupRequired: true}, nil
		}

		// 2. Atomic debit, conditioned on balances at debit time.
		walletPence := utils.ToPence(allocation.WalletUsed)
		err = s.userRepo.DebitBalances(ctx, userID, walletPence, allocation.PointsUsed)
		if errors.Is(err, repositories.ErrInsufficientBalance) {
			return nil, ErrInsufficientFunds
		}
		if err != nil {
			return nil, fmt.Errorf("failed to debit balances: %w", err)
		}

		play.TotalAmount = utils.ToPence(allocation.DiscountedTotal)
		play.WalletAmount = walletPence
		play.PointsUsed = allocation.PointsUsed
		play.PointsCashValue = utils.ToPence(allocation.PointsCashValue)
		if discount != nil {
			play.DiscountCode = discount.Code
			play.DiscountType = discount.Type
			play.DiscountAmount = utils.ToPence(allocation.DiscountApplied)
		}
	}

	// 3. Resolve the prize. A failure here after a debit refunds the debit
	// so no partial charge is ever observable.
	outcome, record, err := s.resolver.ResolveAndRecord(ctx, userID, play.ID, game, pool)
	if err != nil {
		if !game.FreeToPlay() {
			s.refund(ctx, userID, play, allocation)
		}
		return nil, err
	}
	play.OutcomeID = outcome.ID

	if err := s.playRepo.Create(ctx, play); err != nil {
		slog.Error("Failed to persist play after resolution", "error", err, "reference", play.Reference)
		return nil, fmt.Errorf("failed to persist play: %w", err)
	}

	if !game.FreeToPlay() {
		s.appendLedger(ctx, &models.Transaction{
			UserID:      userID,
			PlayID:      play.ID,
			Type:        models.TransactionPlayDebit,
			WalletDelta: -play.WalletAmount,
			PointsDelta: -play.PointsUsed,
			Reference:   play.Reference,
		})
	}

	// 4. Credit the reward.
	if err := s.creditReward(ctx, userID, play, outcome); err != nil {
		slog.Error("Failed to credit reward", "error", err, "reference", play.Reference,
			"outcomeId", outcome.ID.Hex())
		return nil, fmt.Errorf("failed to credit reward: %w", err)
	}

	return &PlayResult{
		Play:       play,
		Outcome:    outcome,
		WinRecord:  record,
		Allocation: allocation,
	}, nil
}

// Quote runs the apportioner without committing anything: the funding-flow
// preview shown before a purchase.
func (s *PlayServiceImpl) Quote(ctx context.Context, userID primitive.ObjectID, req *models.PlayRequest) (*Allocation, error) {
	game, _, discount, err := s.loadPlayContext(ctx, req)
	if err != nil {
		return nil, err
	}
	if game.FreeToPlay() {
		return &Allocation{}, nil
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	sources := FundingSources{UseWallet: req.UseWallet, UsePoints: req.UsePoints}
	return s.payment.Apportion(utils.FromPence(game.EntryPrice), discount, user.WalletBalance, user.Points, sources, game.PointsAllowed)
}

// GetPlayByID retrieves a play by its ID
func (s *PlayServiceImpl) GetPlayByID(ctx context.Context, id primitive.ObjectID) (*models.Play, error) {
	return s.playRepo.FindByID(ctx, id)
}

// GetPlaysByUser retrieves a user's play history
func (s *PlayServiceImpl) GetPlaysByUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Play, error) {
	return s.playRepo.FindByUserID(ctx, userID, page, limit)
}

// loadPlayContext loads and validates the game, its pool and the optional
// discount for one play or quote request.
func (s *PlayServiceImpl) loadPlayContext(ctx context.Context, req *models.PlayRequest) (*models.Game, []*models.Outcome, *models.Discount, error) {
	gameID, err := primitive.ObjectIDFromHex(req.GameID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid game id %q: %w", req.GameID, err)
	}

	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("game not found: %w", err)
	}
	if !game.IsActive {
		return nil, nil, nil, ErrGameNotActive
	}

	pool, err := s.outcomeRepo.FindByGameID(ctx, gameID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load outcome pool: %w", err)
	}

	var discount *models.Discount
	if req.DiscountCode != "" {
		discount, err = s.discountRepo.FindByCode(ctx, req.DiscountCode)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, nil, nil, ErrDiscountNotUsable
			}
			return nil, nil, nil, fmt.Errorf("failed to look up discount: %w", err)
		}
		if !discount.Usable(time.Now()) {
			return nil, nil, nil, ErrDiscountNotUsable
		}
	}

	return game, pool, discount, nil
}

// refund reverses a committed debit after a failed resolution.
func (s *PlayServiceImpl) refund(ctx context.Context, userID primitive.ObjectID, play *models.Play, allocation *Allocation) {
	if allocation == nil {
		return
	}
	walletPence := utils.ToPence(allocation.WalletUsed)
	if err := s.userRepo.CreditBalances(ctx, userID, walletPence, allocation.PointsUsed); err != nil {
		slog.Error("CRITICAL: failed to refund debit after resolution failure",
			"error", err, "userId", userID.Hex(), "reference", play.Reference)
		return
	}
	s.appendLedger(ctx, &models.Transaction{
		UserID:      userID,
		Type:        models.TransactionPlayRefund,
		WalletDelta: walletPence,
		PointsDelta: allocation.PointsUsed,
		Reference:   play.Reference,
		Note:        "refund after failed resolution",
	})
	slog.Info("Refunded debit after failed resolution", "userId", userID.Hex(), "reference", play.Reference)
}

// creditReward applies the won reward to the user's balances and ledger.
// Physical and try-again outcomes carry no balance change.
func (s *PlayServiceImpl) creditReward(ctx context.Context, userID primitive.ObjectID, play *models.Play, outcome *models.Outcome) error {
	var walletDelta, pointsDelta int64
	var txType models.TransactionType
	switch outcome.RewardKind {
	case models.RewardCash:
		walletDelta = outcome.CashAmount
		txType = models.TransactionWinCredit
	case models.RewardPoints:
		pointsDelta = outcome.PointsAmount
		txType = models.TransactionPointsCredit
	default:
		return nil
	}
	if walletDelta == 0 && pointsDelta == 0 {
		return nil
	}

	if err := s.userRepo.CreditBalances(ctx, userID, walletDelta, pointsDelta); err != nil {
		return err
	}
	s.appendLedger(ctx, &models.Transaction{
		UserID:      userID,
		PlayID:      play.ID,
		Type:        txType,
		WalletDelta: walletDelta,
		PointsDelta: pointsDelta,
		Reference:   play.Reference,
	})
	return nil
}

// appendLedger writes a ledger row. Ledger failures are logged, not fatal:
// the balance mutation they describe has already committed.
func (s *PlayServiceImpl) appendLedger(ctx context.Context, tx *models.Transaction) {
	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		slog.Error("Failed to append ledger entry", "error", err, "type", tx.Type, "userId", tx.UserID.Hex())
	}
}
