package services

import (
	"context"
	"fmt"

	"github.com/playtone/prizeplay-backend/internal/models"
	"github.com/playtone/prizeplay-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// WinService defines the interface for win record administration, mainly
// physical prize claim fulfilment.
type WinService interface {
	GetWinsByOutcome(ctx context.Context, outcomeID primitive.ObjectID) ([]*models.WinRecord, error)
	UpdateClaimStatus(ctx context.Context, id primitive.ObjectID, status models.ClaimStatus) error
}

// Compile-time check to ensure WinServiceImpl implements WinService
var _ WinService = (*WinServiceImpl)(nil)

// WinServiceImpl handles win record administration
type WinServiceImpl struct {
	winRecordRepo repositories.WinRecordRepository
}

// NewWinService creates a new WinServiceImpl
func NewWinService(winRecordRepo repositories.WinRecordRepository) *WinServiceImpl {
	return &WinServiceImpl{winRecordRepo: winRecordRepo}
}

// GetWinsByOutcome retrieves all win records for an outcome
func (s *WinServiceImpl) GetWinsByOutcome(ctx context.Context, outcomeID primitive.ObjectID) ([]*models.WinRecord, error) {
	return s.winRecordRepo.FindByOutcomeID(ctx, outcomeID)
}

// UpdateClaimStatus moves a win record through the claim lifecycle
func (s *WinServiceImpl) UpdateClaimStatus(ctx context.Context, id primitive.ObjectID, status models.ClaimStatus) error {
	switch status {
	case models.ClaimStatusPending, models.ClaimStatusClaimed, models.ClaimStatusForfeited:
	default:
		return fmt.Errorf("unknown claim status %q", status)
	}
	if err := s.winRecordRepo.UpdateClaimStatus(ctx, id, status); err != nil {
		slog.Error("Failed to update claim status", "error", err, "winRecordId", id.Hex())
		return fmt.Errorf("failed to update claim status: %w", err)
	}
	slog.Info("Claim status updated", "winRecordId", id.Hex(), "status", status)
	return nil
}
