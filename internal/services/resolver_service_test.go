package services

import (
	"context"
	"sync"
	"testing"

	"github.com/playtone/prizeplay-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func maxWins(n int64) *int64 { return &n }

func testOutcome(label string, weight int64, order int) *models.Outcome {
	return &models.Outcome{
		ID:           primitive.NewObjectID(),
		Label:        label,
		RewardKind:   models.RewardTryAgain,
		Weight:       weight,
		IsActive:     true,
		DisplayOrder: order,
	}
}

func TestDrawMapsRollsInDisplayOrder(t *testing.T) {
	// Weights 2, 3, 5 partition [0, 10) into [0,2), [2,5) and [5,10).
	a := testOutcome("a", 2, 1)
	b := testOutcome("b", 3, 2)
	c := testOutcome("c", 5, 3)
	pool := []*models.Outcome{a, b, c}

	cases := []struct {
		roll int64
		want string
	}{
		{0, "a"}, {1, "a"},
		{2, "b"}, {4, "b"},
		{5, "c"}, {9, "c"},
	}
	for _, tc := range cases {
		r := NewPrizeResolver(nil, nil, &scriptedSource{rolls: []int64{tc.roll}})
		got, err := r.Draw(pool, nil)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got.Label, "roll %d", tc.roll)
	}
}

func TestDrawSkipsIneligibleWithoutShiftingOthers(t *testing.T) {
	a := testOutcome("a", 2, 1)
	a.IsActive = false
	zero := testOutcome("zero", 0, 2)
	capped := testOutcome("capped", 4, 3)
	capped.MaxWins = maxWins(1)
	capped.TimesWon = 1
	b := testOutcome("b", 3, 4)

	r := NewPrizeResolver(nil, nil, &scriptedSource{rolls: []int64{0}})
	got, err := r.Draw([]*models.Outcome{a, zero, capped, b}, nil)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Label)
}

func TestDrawExcludedSet(t *testing.T) {
	a := testOutcome("a", 5, 1)
	b := testOutcome("b", 5, 2)

	r := NewPrizeResolver(nil, nil, &scriptedSource{rolls: []int64{0}})
	got, err := r.Draw([]*models.Outcome{a, b}, map[primitive.ObjectID]bool{a.ID: true})
	require.NoError(t, err)
	assert.Equal(t, "b", got.Label)
}

func TestDrawEmptyPoolFails(t *testing.T) {
	r := NewPrizeResolver(nil, nil, newSeededSource(1))

	_, err := r.Draw(nil, nil)
	assert.ErrorIs(t, err, ErrNoEligibleOutcomes)

	inactive := testOutcome("x", 5, 1)
	inactive.IsActive = false
	_, err = r.Draw([]*models.Outcome{inactive}, nil)
	assert.ErrorIs(t, err, ErrNoEligibleOutcomes)
}

func TestDrawFrequenciesFollowWeights(t *testing.T) {
	a := testOutcome("a", 1, 1)
	b := testOutcome("b", 2, 2)
	c := testOutcome("c", 7, 3)
	pool := []*models.Outcome{a, b, c}

	r := NewPrizeResolver(nil, nil, newSeededSource(42))
	counts := map[string]int{}
	const draws = 10000
	for i := 0; i < draws; i++ {
		got, err := r.Draw(pool, nil)
		require.NoError(t, err)
		counts[got.Label]++
	}

	// Expected proportions 10%, 20%, 70% with a generous tolerance.
	assert.InDelta(t, 0.10, float64(counts["a"])/draws, 0.02)
	assert.InDelta(t, 0.20, float64(counts["b"])/draws, 0.02)
	assert.InDelta(t, 0.70, float64(counts["c"])/draws, 0.02)
}

func TestResolveAndRecordCommitsWinRecord(t *testing.T) {
	ctx := context.Background()
	prize := testOutcome("tv", 5, 1)
	prize.RewardKind = models.RewardPhysical
	prize.PrizeDescription = "55in TV"
	repo := newFakeOutcomeRepo(prize)
	wins := &fakeWinRecordRepo{}
	game := &models.Game{ID: primitive.NewObjectID(), IsActive: true}
	userID := primitive.NewObjectID()
	playID := primitive.NewObjectID()

	r := NewPrizeResolver(repo, wins, newSeededSource(1))
	outcome, record, err := r.ResolveAndRecord(ctx, userID, playID, game, []*models.Outcome{prize})
	require.NoError(t, err)

	assert.Equal(t, prize.ID, outcome.ID)
	assert.EqualValues(t, 1, outcome.TimesWon)
	require.Len(t, wins.records, 1)
	assert.Equal(t, playID, record.PlayID)
	assert.Equal(t, models.ClaimStatusPending, record.ClaimStatus)
	assert.Equal(t, "55in TV", record.PrizeDescription)
}

func TestResolveAndRecordReleasesCapSlotWhenRecordFails(t *testing.T) {
	ctx := context.Background()
	// One outcome with a single cap slot. If the win record cannot be
	// written, the counter increment must be undone so the slot stays
	// winnable for the next play.
	prize := testOutcome("last-ticket", 5, 1)
	prize.MaxWins = maxWins(1)
	repo := newFakeOutcomeRepo(prize)
	wins := &fakeWinRecordRepo{failing: true}
	game := &models.Game{ID: primitive.NewObjectID(), IsActive: true}

	r := NewPrizeResolver(repo, wins, newSeededSource(1))
	_, _, err := r.ResolveAndRecord(ctx, primitive.NewObjectID(), primitive.NewObjectID(), game, []*models.Outcome{prize})
	require.Error(t, err)

	assert.Empty(t, wins.records)
	assert.EqualValues(t, 0, repo.outcomes[prize.ID].TimesWon)

	// A later play can still take the slot once the store recovers.
	wins.failing = false
	outcome, _, err := r.ResolveAndRecord(ctx, primitive.NewObjectID(), primitive.NewObjectID(), game, []*models.Outcome{prize})
	require.NoError(t, err)
	assert.Equal(t, prize.ID, outcome.ID)
	assert.EqualValues(t, 1, repo.outcomes[prize.ID].TimesWon)
}

func TestResolveAndRecordFallsThroughWhenCapTaken(t *testing.T) {
	ctx := context.Background()
	// The scripted source always lands on the first segment, but its cap is
	// already exhausted at commit time; resolution must fall through.
	capped := testOutcome("capped", 9, 1)
	capped.MaxWins = maxWins(1)
	fallback := testOutcome("fallback", 1, 2)
	repo := newFakeOutcomeRepo(capped, fallback)
	repo.outcomes[capped.ID].TimesWon = 1

	// Copies in the pool snapshot still look eligible, as a stale in-memory
	// pool would mid-race.
	poolCapped := *capped
	poolCapped.TimesWon = 0
	game := &models.Game{ID: primitive.NewObjectID(), IsActive: true}

	r := NewPrizeResolver(repo, &fakeWinRecordRepo{}, &scriptedSource{rolls: []int64{0}})
	outcome, _, err := r.ResolveAndRecord(ctx, primitive.NewObjectID(), primitive.NewObjectID(), game, []*models.Outcome{&poolCapped, fallback})
	require.NoError(t, err)
	assert.Equal(t, "fallback", outcome.Label)
}

func TestResolveAndRecordConcurrentPlaysNeverExceedCap(t *testing.T) {
	ctx := context.Background()
	const players = 20

	jackpot := testOutcome("jackpot", 8, 1)
	jackpot.MaxWins = maxWins(3)
	consolation := testOutcome("consolation", 2, 2)
	repo := newFakeOutcomeRepo(jackpot, consolation)
	wins := &fakeWinRecordRepo{}
	game := &models.Game{ID: primitive.NewObjectID(), IsActive: true}

	r := NewPrizeResolver(repo, wins, newSeededSource(7))

	var wg sync.WaitGroup
	errs := make(chan error, players)
	for i := 0; i < players; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Each play sees its own pool snapshot, as separate requests do.
			j := *jackpot
			c := *consolation
			_, _, err := r.ResolveAndRecord(ctx, primitive.NewObjectID(), primitive.NewObjectID(), game, []*models.Outcome{&j, &c})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	jackpotWins, err := wins.CountByOutcomeID(ctx, jackpot.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, jackpotWins, "cap of 3 must never be exceeded")
	assert.EqualValues(t, 3, repo.outcomes[jackpot.ID].TimesWon)

	total := int64(len(wins.records))
	assert.EqualValues(t, players, total, "every play resolves exactly one outcome")
}

func TestResolveAndRecordAllCapsExhausted(t *testing.T) {
	ctx := context.Background()
	only := testOutcome("only", 5, 1)
	only.MaxWins = maxWins(1)
	repo := newFakeOutcomeRepo(only)
	repo.outcomes[only.ID].TimesWon = 1

	stale := *only
	stale.TimesWon = 0 // snapshot taken before the last slot went
	game := &models.Game{ID: primitive.NewObjectID(), IsActive: true}

	r := NewPrizeResolver(repo, &fakeWinRecordRepo{}, &scriptedSource{rolls: []int64{0}})
	_, _, err := r.ResolveAndRecord(ctx, primitive.NewObjectID(), primitive.NewObjectID(), game, []*models.Outcome{&stale})
	assert.ErrorIs(t, err, ErrNoEligibleOutcomes)
}
