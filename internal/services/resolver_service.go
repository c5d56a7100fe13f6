package services

import (
	"context"
	"fmt"
	"time"

	"github.com/playtone/prizeplay-backend/internal/models"
	"github.com/playtone/prizeplay-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// PrizeResolver selects exactly one outcome per play from a weighted pool
// and records the win atomically against the outcome's cap.
type PrizeResolver interface {
	// Draw performs pure weighted selection over the pool, skipping
	// excluded IDs. It never touches storage.
	Draw(pool []*models.Outcome, excluded map[primitive.ObjectID]bool) (*models.Outcome, error)

	// ResolveAndRecord draws, commits the win count via the storage CAS,
	// and appends the win record. When a concurrent play exhausts a cap
	// between draw and commit, the losing draw falls through to another
	// eligible outcome instead of exceeding the cap.
	ResolveAndRecord(ctx context.Context, userID, playID primitive.ObjectID, game *models.Game, pool []*models.Outcome) (*models.Outcome, *models.WinRecord, error)
}

// Compile-time check to ensure PrizeResolverImpl implements PrizeResolver
var _ PrizeResolver = (*PrizeResolverImpl)(nil)

// PrizeResolverImpl resolves plays with alias-free cumulative-weight
// sampling. O(n) per draw; pools are small (tens of outcomes at most).
type PrizeResolverImpl struct {
	outcomeRepo   repositories.OutcomeRepository
	winRecordRepo repositories.WinRecordRepository
	rng           RandomSource
}

// NewPrizeResolver creates a new PrizeResolverImpl
func NewPrizeResolver(outcomeRepo repositories.OutcomeRepository, winRecordRepo repositories.WinRecordRepository, rng RandomSource) *PrizeResolverImpl {
	return &PrizeResolverImpl{
		outcomeRepo:   outcomeRepo,
		winRecordRepo: winRecordRepo,
		rng:           rng,
	}
}

// Draw picks one outcome from the eligible subset of the pool, proportional
// to weight. The pool is walked in its given (display) order and is never
// re-sorted, so tie-break behaviour is reproducible. An empty eligible set
// fails with ErrNoEligibleOutcomes rather than defaulting to a loss.
func (r *PrizeResolverImpl) Draw(pool []*models.Outcome, excluded map[primitive.ObjectID]bool) (*models.Outcome, error) {
	var eligible []*models.Outcome
	var totalWeight int64
	for _, o := range pool {
		if excluded[o.ID] || !o.Eligible() {
			continue
		}
		eligible = append(eligible, o)
		totalWeight += o.Weight
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleOutcomes
	}
	// Eligibility already excludes zero weights; this guards against a
	// miscounted sum all the same.
	if totalWeight <= 0 {
		return nil, ErrNoEligibleOutcomes
	}

	roll, err := r.rng.Int64n(totalWeight)
	if err != nil {
		return nil, fmt.Errorf("failed to draw outcome: %w", err)
	}

	var cumulative int64
	for _, o := range eligible {
		cumulative += o.Weight
		if roll < cumulative {
			return o, nil
		}
	}
	// Unreachable when roll < totalWeight; kept as a defensive fallback.
	return eligible[len(eligible)-1], nil
}

// ResolveAndRecord resolves one play to a committed outcome and win record.
//
// The commit is a conditional increment at the storage layer. A cap race
// (two plays drawing the last slot of a capped outcome) surfaces as
// ErrWinCapReached; the losing play excludes that outcome and re-draws.
// Each attempt removes one outcome from contention, so attempts are bounded
// by the pool size.
func (r *PrizeResolverImpl) ResolveAndRecord(ctx context.Context, userID, playID primitive.ObjectID, game *models.Game, pool []*models.Outcome) (*models.Outcome, *models.WinRecord, error) {
	excluded := make(map[primitive.ObjectID]bool)
	for attempt := 0; attempt < len(pool); attempt++ {
		outcome, err := r.Draw(pool, excluded)
		if err != nil {
			return nil, nil, err
		}

		err = r.outcomeRepo.RecordWin(ctx, outcome.ID)
		if err == repositories.ErrWinCapReached {
			slog.Info("Outcome cap taken by concurrent play, re-drawing",
				"outcomeId", outcome.ID.Hex(), "gameId", game.ID.Hex())
			excluded[outcome.ID] = true
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to record win: %w", err)
		}

		record := &models.WinRecord{
			UserID:           userID,
			PlayID:           playID,
			GameID:           game.ID,
			OutcomeID:        outcome.ID,
			OutcomeLabel:     outcome.Label,
			RewardKind:       outcome.RewardKind,
			CashAmount:       outcome.CashAmount,
			PointsAmount:     outcome.PointsAmount,
			PrizeDescription: outcome.PrizeDescription,
			WinDate:          time.Now(),
		}
		if outcome.RewardKind == models.RewardPhysical {
			record.ClaimStatus = models.ClaimStatusPending
		}
		if err := r.winRecordRepo.Create(ctx, record); err != nil {
			// The counter moved but the audit row failed: give the cap
			// slot back before surfacing the fault, so the boundary can
			// treat the resolution as not-happened.
			slog.Error("Failed to append win record after counter increment",
				"error", err, "outcomeId", outcome.ID.Hex())
			if relErr := r.outcomeRepo.ReleaseWin(ctx, outcome.ID); relErr != nil {
				slog.Error("Failed to release win counter", "error", relErr,
					"outcomeId", outcome.ID.Hex())
			}
			return nil, nil, fmt.Errorf("failed to append win record: %w", err)
		}

		outcome.TimesWon++
		slog.Info("Play resolved", "gameId", game.ID.Hex(), "outcomeId", outcome.ID.Hex(),
			"rewardKind", outcome.RewardKind, "timesWon", outcome.TimesWon)
		return outcome, record, nil
	}
	return nil, nil, ErrNoEligibleOutcomes
}
