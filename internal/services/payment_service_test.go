package services

import (
	"testing"

	"github.com/playtone/prizeplay-backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestApportionWalletOnly(t *testing.T) {
	svc := NewPaymentService(100)

	alloc, err := svc.Apportion(money("10.00"), nil, 1500, 0, FundingSources{UseWallet: true}, true)
	require.NoError(t, err)

	assert.True(t, alloc.WalletUsed.Equal(money("10.00")))
	assert.EqualValues(t, 0, alloc.PointsUsed)
	assert.True(t, alloc.RemainingAmount.IsZero())
	assert.False(t, alloc.TopupRequired())
}

func TestApportionDiscountThenWalletThenPoints(t *testing.T) {
	svc := NewPaymentService(100)
	discount := &models.Discount{Type: models.DiscountCash, Amount: 300, IsActive: true}

	// 10.00 order, 3.00 discount, 4.00 wallet, 250 points: the wallet and
	// points together leave a 0.50 shortfall.
	alloc, err := svc.Apportion(money("10.00"), discount, 400, 250, FundingSources{UseWallet: true, UsePoints: true}, true)
	require.NoError(t, err)

	assert.True(t, alloc.DiscountApplied.Equal(money("3.00")))
	assert.True(t, alloc.DiscountedTotal.Equal(money("7.00")))
	assert.True(t, alloc.WalletUsed.Equal(money("4.00")))
	assert.EqualValues(t, 250, alloc.PointsUsed)
	assert.True(t, alloc.PointsCashValue.Equal(money("2.50")))
	assert.True(t, alloc.RemainingAmount.Equal(money("0.50")))
	assert.True(t, alloc.TopupRequired())
}

func TestApportionWalletCoversAfterDiscount(t *testing.T) {
	svc := NewPaymentService(100)
	discount := &models.Discount{Type: models.DiscountCash, Amount: 300, IsActive: true}

	// Same order with an 8.00 wallet: only 7.00 is drawn and points are
	// untouched even though the player offered them.
	alloc, err := svc.Apportion(money("10.00"), discount, 800, 250, FundingSources{UseWallet: true, UsePoints: true}, true)
	require.NoError(t, err)

	assert.True(t, alloc.WalletUsed.Equal(money("7.00")))
	assert.EqualValues(t, 0, alloc.PointsUsed)
	assert.True(t, alloc.PointsCashValue.IsZero())
	assert.True(t, alloc.RemainingAmount.IsZero())
	assert.False(t, alloc.TopupRequired())
}

func TestApportionDiscountClampsAtZero(t *testing.T) {
	svc := NewPaymentService(100)
	discount := &models.Discount{Type: models.DiscountCash, Amount: 1500, IsActive: true}

	alloc, err := svc.Apportion(money("10.00"), discount, 0, 0, FundingSources{UseWallet: true}, true)
	require.NoError(t, err)

	assert.True(t, alloc.DiscountApplied.Equal(money("10.00")))
	assert.True(t, alloc.DiscountedTotal.IsZero())
	assert.True(t, alloc.WalletUsed.IsZero())
	assert.True(t, alloc.RemainingAmount.IsZero())
	assert.False(t, alloc.TopupRequired())
}

func TestApportionPointsDiscountConvertsAtRate(t *testing.T) {
	svc := NewPaymentService(100)
	discount := &models.Discount{Type: models.DiscountPoints, Amount: 500, IsActive: true}

	alloc, err := svc.Apportion(money("10.00"), discount, 1000, 0, FundingSources{UseWallet: true}, true)
	require.NoError(t, err)

	assert.True(t, alloc.DiscountApplied.Equal(money("5.00")))
	assert.True(t, alloc.WalletUsed.Equal(money("5.00")))
	assert.True(t, alloc.RemainingAmount.IsZero())
}

func TestApportionPointsCountRoundsUp(t *testing.T) {
	// At 3 points per unit, a 10-point balance is worth 3.33 after rounding
	// down. Spending all 3.33 must cost the full 10 points, never 9.
	svc := NewPaymentService(3)

	alloc, err := svc.Apportion(money("5.00"), nil, 0, 10, FundingSources{UsePoints: true}, true)
	require.NoError(t, err)

	assert.True(t, alloc.PointsCashValue.Equal(money("3.33")))
	assert.EqualValues(t, 10, alloc.PointsUsed)
	assert.True(t, alloc.RemainingAmount.Equal(money("1.67")))
}

func TestApportionNoSourcesRejected(t *testing.T) {
	svc := NewPaymentService(100)

	_, err := svc.Apportion(money("10.00"), nil, 1000, 1000, FundingSources{}, true)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestApportionPointsOnIneligibleGameRejected(t *testing.T) {
	svc := NewPaymentService(100)

	_, err := svc.Apportion(money("10.00"), nil, 1000, 1000, FundingSources{UsePoints: true}, false)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestApportionConservation(t *testing.T) {
	svc := NewPaymentService(100)
	discount := &models.Discount{Type: models.DiscountCash, Amount: 137, IsActive: true}

	cases := []struct {
		name    string
		wallet  int64
		points  int64
		sources FundingSources
	}{
		{"wallet only", 423, 0, FundingSources{UseWallet: true}},
		{"points only", 0, 617, FundingSources{UsePoints: true}},
		{"both, short", 101, 53, FundingSources{UseWallet: true, UsePoints: true}},
		{"both, covered", 5000, 5000, FundingSources{UseWallet: true, UsePoints: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			alloc, err := svc.Apportion(money("9.99"), discount, tc.wallet, tc.points, tc.sources, true)
			require.NoError(t, err)

			sum := alloc.WalletUsed.Add(alloc.PointsCashValue).Add(alloc.RemainingAmount)
			assert.True(t, sum.Equal(alloc.DiscountedTotal),
				"wallet %s + points value %s + remaining %s != discounted total %s",
				alloc.WalletUsed, alloc.PointsCashValue, alloc.RemainingAmount, alloc.DiscountedTotal)
			assert.False(t, alloc.RemainingAmount.IsNegative())
			assert.False(t, alloc.WalletUsed.IsNegative())
			assert.True(t, alloc.PointsUsed >= 0)
		})
	}
}
