package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RewardKind identifies what an outcome pays out.
type RewardKind string

const (
	RewardCash     RewardKind = "CASH"
	RewardPoints   RewardKind = "POINTS"
	RewardPhysical RewardKind = "PHYSICAL"
	RewardTryAgain RewardKind = "TRY_AGAIN"
)

// Outcome is one possible result of a weighted draw for a game: a wheel
// segment, a scratch-card image or a balloon. Reward payload is a tagged
// variant keyed on RewardKind: CashAmount holds minor units (pence) for CASH,
// PointsAmount the points count for POINTS, PrizeDescription free text for
// PHYSICAL. TRY_AGAIN carries no payload.
type Outcome struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GameID           primitive.ObjectID `bson:"gameId" json:"gameId"`
	Label            string             `bson:"label" json:"label"`
	RewardKind       RewardKind         `bson:"rewardKind" json:"rewardKind"`
	CashAmount       int64              `bson:"cashAmount,omitempty" json:"cashAmount,omitempty"`
	PointsAmount     int64              `bson:"pointsAmount,omitempty" json:"pointsAmount,omitempty"`
	PrizeDescription string             `bson:"prizeDescription,omitempty" json:"prizeDescription,omitempty"`
	Weight           int64              `bson:"weight" json:"weight"`
	MaxWins          *int64             `bson:"maxWins,omitempty" json:"maxWins,omitempty"`
	TimesWon         int64              `bson:"timesWon" json:"timesWon"`
	IsActive         bool               `bson:"isActive" json:"isActive"`
	DisplayOrder     int                `bson:"displayOrder" json:"displayOrder"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Eligible reports whether the outcome may be selected by a draw: it must be
// active, carry positive weight and not have exhausted its win cap.
func (o *Outcome) Eligible() bool {
	if !o.IsActive || o.Weight <= 0 {
		return false
	}
	if o.MaxWins != nil && o.TimesWon >= *o.MaxWins {
		return false
	}
	return true
}
