package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClaimStatus tracks fulfilment of physical prizes.
type ClaimStatus string

const (
	ClaimStatusPending   ClaimStatus = "PENDING"
	ClaimStatusClaimed   ClaimStatus = "CLAIMED"
	ClaimStatusForfeited ClaimStatus = "FORFEITED"
)

// WinRecord is the immutable, append-only audit entry written once per
// resolved play. It is both the audit trail and the source for recomputing
// per-outcome win counts.
type WinRecord struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	PlayID           primitive.ObjectID `bson:"playId" json:"playId"`
	GameID           primitive.ObjectID `bson:"gameId" json:"gameId"`
	OutcomeID        primitive.ObjectID `bson:"outcomeId" json:"outcomeId"`
	OutcomeLabel     string             `bson:"outcomeLabel" json:"outcomeLabel"`
	RewardKind       RewardKind         `bson:"rewardKind" json:"rewardKind"`
	CashAmount       int64              `bson:"cashAmount,omitempty" json:"cashAmount,omitempty"`
	PointsAmount     int64              `bson:"pointsAmount,omitempty" json:"pointsAmount,omitempty"`
	PrizeDescription string             `bson:"prizeDescription,omitempty" json:"prizeDescription,omitempty"`
	ClaimStatus      ClaimStatus        `bson:"claimStatus,omitempty" json:"claimStatus,omitempty"` // physical prizes only
	WinDate          time.Time          `bson:"winDate" json:"winDate"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}
