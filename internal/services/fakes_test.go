package services

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/playtone/prizeplay-backend/internal/models"
	"github.com/playtone/prizeplay-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// seededSource adapts math/rand so test draws are reproducible.
type seededSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newSeededSource(seed int64) *seededSource {
	return &seededSource{r: rand.New(rand.NewSource(seed))}
}

func (s *seededSource) Int64n(n int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Int63n(n), nil
}

// scriptedSource replays a fixed sequence of rolls.
type scriptedSource struct {
	mu    sync.Mutex
	rolls []int64
	i     int
}

func (s *scriptedSource) Int64n(n int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	roll := s.rolls[s.i%len(s.rolls)]
	s.i++
	return roll % n, nil
}

// fakeOutcomeRepo is an in-memory OutcomeRepository whose RecordWin applies
// the same conditional check as the storage layer, under a lock.
type fakeOutcomeRepo struct {
	mu       sync.Mutex
	outcomes map[primitive.ObjectID]*models.Outcome
}

var _ repositories.OutcomeRepository = (*fakeOutcomeRepo)(nil)

func newFakeOutcomeRepo(outcomes ...*models.Outcome) *fakeOutcomeRepo {
	repo := &fakeOutcomeRepo{outcomes: make(map[primitive.ObjectID]*models.Outcome)}
	for _, o := range outcomes {
		if o.ID.IsZero() {
			o.ID = primitive.NewObjectID()
		}
		// Store snapshots, as real storage would; pool copies handed to
		// callers must not alias the stored documents.
		copied := *o
		repo.outcomes[o.ID] = &copied
	}
	return repo
}

func (r *fakeOutcomeRepo) Create(ctx context.Context, outcome *models.Outcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if outcome.ID.IsZero() {
		outcome.ID = primitive.NewObjectID()
	}
	copied := *outcome
	r.outcomes[outcome.ID] = &copied
	return nil
}

func (r *fakeOutcomeRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.outcomes[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOutcomeRepo) FindByGameID(ctx context.Context, gameID primitive.ObjectID) ([]*models.Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pool []*models.Outcome
	for _, o := range r.outcomes {
		if o.GameID == gameID {
			copied := *o
			pool = append(pool, &copied)
		}
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].DisplayOrder < pool[j].DisplayOrder })
	return pool, nil
}

func (r *fakeOutcomeRepo) Update(ctx context.Context, outcome *models.Outcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *outcome
	r.outcomes[outcome.ID] = &copied
	return nil
}

func (r *fakeOutcomeRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.outcomes[id]; ok {
		o.IsActive = active
	}
	return nil
}

func (r *fakeOutcomeRepo) RecordWin(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.outcomes[id]
	if !ok || !o.Eligible() {
		return repositories.ErrWinCapReached
	}
	o.TimesWon++
	return nil
}

func (r *fakeOutcomeRepo) ReleaseWin(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.outcomes[id]
	if ok && o.TimesWon > 0 {
		o.TimesWon--
	}
	return nil
}

// fakeWinRecordRepo is an in-memory append-only WinRecordRepository.
type fakeWinRecordRepo struct {
	mu      sync.Mutex
	records []*models.WinRecord
	failing bool
}

var _ repositories.WinRecordRepository = (*fakeWinRecordRepo)(nil)

func (r *fakeWinRecordRepo) Create(ctx context.Context, record *models.WinRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return mongo.ErrClientDisconnected
	}
	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now()
	r.records = append(r.records, record)
	return nil
}

func (r *fakeWinRecordRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.WinRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.WinRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeWinRecordRepo) FindByOutcomeID(ctx context.Context, outcomeID primitive.ObjectID) ([]*models.WinRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.WinRecord
	for _, rec := range r.records {
		if rec.OutcomeID == outcomeID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeWinRecordRepo) CountByOutcomeID(ctx context.Context, outcomeID primitive.ObjectID) (int64, error) {
	records, _ := r.FindByOutcomeID(ctx, outcomeID)
	return int64(len(records)), nil
}

func (r *fakeWinRecordRepo) UpdateClaimStatus(ctx context.Context, id primitive.ObjectID, status models.ClaimStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == id {
			rec.ClaimStatus = status
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

// fakeUserRepo is an in-memory UserRepository whose DebitBalances applies
// the same balance guard as the storage layer, under a lock.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

var _ repositories.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	// Store a snapshot, as real storage would; later mutation of the
	// caller's struct must not rewrite the stored document.
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) DebitBalances(ctx context.Context, userID primitive.ObjectID, walletPence, points int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if u.WalletBalance < walletPence || u.Points < points {
		return repositories.ErrInsufficientBalance
	}
	u.WalletBalance -= walletPence
	u.Points -= points
	return nil
}

func (r *fakeUserRepo) CreditBalances(ctx context.Context, userID primitive.ObjectID, walletPence, points int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.WalletBalance += walletPence
	u.Points += points
	return nil
}

// fakeGameRepo is an in-memory GameRepository.
type fakeGameRepo struct {
	mu    sync.Mutex
	games map[primitive.ObjectID]*models.Game
}

var _ repositories.GameRepository = (*fakeGameRepo)(nil)

func newFakeGameRepo(games ...*models.Game) *fakeGameRepo {
	repo := &fakeGameRepo{games: make(map[primitive.ObjectID]*models.Game)}
	for _, g := range games {
		if g.ID.IsZero() {
			g.ID = primitive.NewObjectID()
		}
		repo.games[g.ID] = g
	}
	return repo
}

func (r *fakeGameRepo) Create(ctx context.Context, game *models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if game.ID.IsZero() {
		game.ID = primitive.NewObjectID()
	}
	r.games[game.ID] = game
	return nil
}

func (r *fakeGameRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return g, nil
}

func (r *fakeGameRepo) FindAll(ctx context.Context) ([]*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Game
	for _, g := range r.games {
		out = append(out, g)
	}
	return out, nil
}

func (r *fakeGameRepo) Update(ctx context.Context, game *models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[game.ID] = game
	return nil
}

// fakePlayRepo is an in-memory PlayRepository.
type fakePlayRepo struct {
	mu    sync.Mutex
	plays map[primitive.ObjectID]*models.Play
}

var _ repositories.PlayRepository = (*fakePlayRepo)(nil)

func newFakePlayRepo() *fakePlayRepo {
	return &fakePlayRepo{plays: make(map[primitive.ObjectID]*models.Play)}
}

func (r *fakePlayRepo) Create(ctx context.Context, play *models.Play) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if play.ID.IsZero() {
		play.ID = primitive.NewObjectID()
	}
	play.CreatedAt = time.Now()
	r.plays[play.ID] = play
	return nil
}

func (r *fakePlayRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Play, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plays[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return p, nil
}

func (r *fakePlayRepo) FindByReference(ctx context.Context, reference string) (*models.Play, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plays {
		if p.Reference == reference {
			return p, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakePlayRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Play, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Play
	for _, p := range r.plays {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePlayRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PlayStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plays[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Status = status
	return nil
}

// fakeDiscountRepo is an in-memory DiscountRepository keyed by code.
type fakeDiscountRepo struct {
	mu        sync.Mutex
	discounts map[string]*models.Discount
}

var _ repositories.DiscountRepository = (*fakeDiscountRepo)(nil)

func newFakeDiscountRepo(discounts ...*models.Discount) *fakeDiscountRepo {
	repo := &fakeDiscountRepo{discounts: make(map[string]*models.Discount)}
	for _, d := range discounts {
		if d.ID.IsZero() {
			d.ID = primitive.NewObjectID()
		}
		repo.discounts[d.Code] = d
	}
	return repo
}

func (r *fakeDiscountRepo) Create(ctx context.Context, discount *models.Discount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if discount.ID.IsZero() {
		discount.ID = primitive.NewObjectID()
	}
	r.discounts[discount.Code] = discount
	return nil
}

func (r *fakeDiscountRepo) FindByCode(ctx context.Context, code string) (*models.Discount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.discounts[code]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return d, nil
}

func (r *fakeDiscountRepo) FindAll(ctx context.Context) ([]*models.Discount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Discount
	for _, d := range r.discounts {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDiscountRepo) Update(ctx context.Context, discount *models.Discount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discounts[discount.Code] = discount
	return nil
}

func (r *fakeDiscountRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.discounts {
		if d.ID == id {
			d.IsActive = active
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

// fakeTransactionRepo is an in-memory append-only TransactionRepository.
type fakeTransactionRepo struct {
	mu           sync.Mutex
	transactions []*models.Transaction
}

var _ repositories.TransactionRepository = (*fakeTransactionRepo)(nil)

func (r *fakeTransactionRepo) Create(ctx context.Context, transaction *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction.ID = primitive.NewObjectID()
	transaction.CreatedAt = time.Now()
	r.transactions = append(r.transactions, transaction)
	return nil
}

func (r *fakeTransactionRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Transaction
	for _, tx := range r.transactions {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) FindByDateRange(ctx context.Context, start, end time.Time, page, limit int) ([]*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Transaction
	for _, tx := range r.transactions {
		if !tx.CreatedAt.Before(start) && tx.CreatedAt.Before(end) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) byType(txType models.TransactionType) []*models.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Transaction
	for _, tx := range r.transactions {
		if tx.Type == txType {
			out = append(out, tx)
		}
	}
	return out
}
