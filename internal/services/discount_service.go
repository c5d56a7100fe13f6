package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/playtone/prizeplay-backend/internal/models"
	"github.com/playtone/prizeplay-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// DiscountService defines the interface for discount code administration
type DiscountService interface {
	CreateDiscount(ctx context.Context, discount *models.Discount) error
	GetDiscountByCode(ctx context.Context, code string) (*models.Discount, error)
	GetDiscounts(ctx context.Context) ([]*models.Discount, error)
	UpdateDiscount(ctx context.Context, discount *models.Discount) error
	SetDiscountActive(ctx context.Context, id primitive.ObjectID, active bool) error
}

// Compile-time check to ensure DiscountServiceImpl implements DiscountService
var _ DiscountService = (*DiscountServiceImpl)(nil)

// DiscountServiceImpl handles discount code management
type DiscountServiceImpl struct {
	discountRepo repositories.DiscountRepository
}

// NewDiscountService creates a new DiscountServiceImpl
func NewDiscountService(discountRepo repositories.DiscountRepository) *DiscountServiceImpl {
	return &DiscountServiceImpl{discountRepo: discountRepo}
}

// CreateDiscount creates a new discount code
func (s *DiscountServiceImpl) CreateDiscount(ctx context.Context, discount *models.Discount) error {
	if err := validateDiscount(discount); err != nil {
		return err
	}
	discount.Code = strings.ToUpper(strings.TrimSpace(discount.Code))
	if err := s.discountRepo.Create(ctx, discount); err != nil {
		slog.Error("Failed to create discount", "error", err, "code", discount.Code)
		return fmt.Errorf("failed to create discount: %w", err)
	}
	slog.Info("Discount created", "code", discount.Code, "type", discount.Type, "amount", discount.Amount)
	return nil
}

// GetDiscountByCode retrieves a discount by code
func (s *DiscountServiceImpl) GetDiscountByCode(ctx context.Context, code string) (*models.Discount, error) {
	return s.discountRepo.FindByCode(ctx, code)
}

// GetDiscounts retrieves all discounts
func (s *DiscountServiceImpl) GetDiscounts(ctx context.Context) ([]*models.Discount, error) {
	return s.discountRepo.FindAll(ctx)
}

// UpdateDiscount updates a discount code
func (s *DiscountServiceImpl) UpdateDiscount(ctx context.Context, discount *models.Discount) error {
	if err := validateDiscount(discount); err != nil {
		return err
	}
	if err := s.discountRepo.Update(ctx, discount); err != nil {
		slog.Error("Failed to update discount", "error", err, "discountId", discount.ID.Hex())
		return fmt.Errorf("failed to update discount: %w", err)
	}
	return nil
}

// SetDiscountActive enables or disables a discount code
func (s *DiscountServiceImpl) SetDiscountActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	if err := s.discountRepo.SetActive(ctx, id, active); err != nil {
		slog.Error("Failed to set discount active flag", "error", err, "discountId", id.Hex())
		return fmt.Errorf("failed to set discount active flag: %w", err)
	}
	return nil
}

func validateDiscount(discount *models.Discount) error {
	if strings.TrimSpace(discount.Code) == "" {
		return errors.New("discount code is required")
	}
	switch discount.Type {
	case models.DiscountCash, models.DiscountPoints:
	default:
		return fmt.Errorf("unknown discount type %q", discount.Type)
	}
	if discount.Amount <= 0 {
		return errors.New("discount amount must be positive")
	}
	return nil
}
