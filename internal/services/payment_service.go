package services

import (
	"github.com/playtone/prizeplay-backend/internal/models"
	"github.com/playtone/prizeplay-backend/internal/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slog"
)

// FundingSources carries which payment sources the player selected.
type FundingSources struct {
	UseWallet bool
	UsePoints bool
}

// Allocation is the result of apportioning a charge across funding sources.
// All cash values are major-unit decimals with two places. Invariant:
// WalletUsed + PointsCashValue + RemainingAmount == DiscountedTotal, exactly.
//
// RemainingAmount > 0 is the top-up-required terminal state: available funds
// do not cover the charge and nothing may be committed. It is not an error.
type Allocation struct {
	OrderTotal      decimal.Decimal `json:"orderTotal"`
	DiscountApplied decimal.Decimal `json:"discountApplied"`
	DiscountedTotal decimal.Decimal `json:"discountedTotal"`
	WalletUsed      decimal.Decimal `json:"walletUsed"`
	PointsUsed      int64           `json:"pointsUsed"`
	PointsCashValue decimal.Decimal `json:"pointsCashValue"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
}

// TopupRequired reports whether the selected sources left a shortfall.
func (a *Allocation) TopupRequired() bool {
	return a.RemainingAmount.IsPositive()
}

// PaymentService apportions an order total across wallet balance and loyalty
// points in a fixed precedence: discount first, then wallet, then points. Any
// uncovered remainder is surfaced, never silently charged elsewhere.
type PaymentService interface {
	Apportion(orderTotal decimal.Decimal, discount *models.Discount, walletPence, points int64, sources FundingSources, pointsAllowed bool) (*Allocation, error)
}

// Compile-time check to ensure PaymentServiceImpl implements PaymentService
var _ PaymentService = (*PaymentServiceImpl)(nil)

// PaymentServiceImpl is the production apportioner. All arithmetic is
// decimal; no binary floats touch a money value.
type PaymentServiceImpl struct {
	pointsRate decimal.Decimal // points per major currency unit (100 points = 1.00)
}

// NewPaymentService creates a new PaymentServiceImpl. pointsPerUnit is the
// number of points equal to one major currency unit.
func NewPaymentService(pointsPerUnit int64) *PaymentServiceImpl {
	return &PaymentServiceImpl{pointsRate: decimal.NewFromInt(pointsPerUnit)}
}

// Apportion computes the charge split for one order.
//
// The caller passes live balances; the returned Allocation is advisory until
// the atomic debit commits it. Precedence and rounding follow the platform
// rules: discount clamps at zero, wallet is drawn before points, and the
// points count is rounded up so fractional-penny conversions never
// short-change the platform.
func (s *PaymentServiceImpl) Apportion(orderTotal decimal.Decimal, discount *models.Discount, walletPence, points int64, sources FundingSources, pointsAllowed bool) (*Allocation, error) {
	if !sources.UseWallet && !sources.UsePoints {
		return nil, ErrInvalidSelection
	}
	if sources.UsePoints && !pointsAllowed {
		slog.Warn("Points funding requested for a points-ineligible game")
		return nil, ErrInvalidSelection
	}

	// 1. Apply discount, clamped so the total never goes negative.
	discountApplied := decimal.Zero
	if discount != nil {
		discountApplied = s.discountCashValue(discount)
		if discountApplied.GreaterThan(orderTotal) {
			discountApplied = orderTotal
		}
	}
	discountedTotal := orderTotal.Sub(discountApplied)

	// 2. Wallet first.
	walletUsed := decimal.Zero
	if sources.UseWallet {
		walletUsed = decimal.Min(utils.FromPence(walletPence), discountedTotal)
	}
	remainingAfterWallet := discountedTotal.Sub(walletUsed)

	// 3. Points cover what the wallet left, capped by the balance's cash
	// value. The cash value rounds down; the points count needed for a
	// given cash value rounds up.
	pointsCashValue := decimal.Zero
	pointsUsed := int64(0)
	if sources.UsePoints && remainingAfterWallet.IsPositive() {
		balanceCash := decimal.NewFromInt(points).Div(s.pointsRate).RoundDown(2)
		pointsCashValue = decimal.Min(balanceCash, remainingAfterWallet)
		pointsUsed = pointsCashValue.Mul(s.pointsRate).RoundCeil(0).IntPart()
	}

	remaining := remainingAfterWallet.Sub(pointsCashValue)

	return &Allocation{
		OrderTotal:      orderTotal,
		DiscountApplied: discountApplied,
		DiscountedTotal: discountedTotal,
		WalletUsed:      walletUsed,
		PointsUsed:      pointsUsed,
		PointsCashValue: pointsCashValue,
		RemainingAmount: remaining,
	}, nil
}

// discountCashValue converts a discount to its cash value in major units.
func (s *PaymentServiceImpl) discountCashValue(discount *models.Discount) decimal.Decimal {
	switch discount.Type {
	case models.DiscountPoints:
		return decimal.NewFromInt(discount.Amount).Div(s.pointsRate).RoundDown(2)
	default:
		return utils.FromPence(discount.Amount)
	}
}
