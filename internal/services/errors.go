package services

import "errors"

// Failure modes of the play/payment core. These are returned as values, not
// panics: the boundary maps each to a distinct HTTP response. Top-up required
// is deliberately absent — it is a normal terminal state carried on the
// Allocation, not an error.
var (
	// ErrNoEligibleOutcomes means the pool had no selectable outcome. This
	// is a configuration error, fatal for the request; it is never masked
	// as a losing outcome since that would silently change configured odds.
	ErrNoEligibleOutcomes = errors.New("no eligible outcomes in pool")

	// ErrInvalidSelection means the funding-source selection was rejected
	// before any balance was touched: no source chosen, or points requested
	// for a game that disallows them.
	ErrInvalidSelection = errors.New("invalid funding source selection")

	// ErrInsufficientFunds means a balance that looked sufficient at
	// apportionment time could not cover the debit at debit time
	// (a concurrent spend won the race). The whole request is retryable.
	ErrInsufficientFunds = errors.New("insufficient funds at debit time")

	// ErrGameNotActive means plays were requested against a disabled game.
	ErrGameNotActive = errors.New("game is not active")

	// ErrDiscountNotUsable means the supplied discount code is unknown,
	// inactive or expired.
	ErrDiscountNotUsable = errors.New("discount code is not usable")
)
