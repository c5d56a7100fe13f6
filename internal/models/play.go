package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlayStatus represents the lifecycle state of a play
type PlayStatus string

const (
	PlayStatusCompleted PlayStatus = "COMPLETED"
	PlayStatusRefunded  PlayStatus = "REFUNDED"
)

// Play represents one purchased or free attempt at a game. All cash fields
// are minor units (pence). Invariant, verified at write time:
// WalletAmount + PointsCashValue == TotalAmount for a committed paid play.
type Play struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Reference       string             `bson:"reference" json:"reference"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	GameID          primitive.ObjectID `bson:"gameId" json:"gameId"`
	OutcomeID       primitive.ObjectID `bson:"outcomeId,omitempty" json:"outcomeId,omitempty"`
	Quantity        int                `bson:"quantity" json:"quantity"`
	OrderTotal      int64              `bson:"orderTotal" json:"orderTotal"`           // pre-discount price
	TotalAmount     int64              `bson:"totalAmount" json:"totalAmount"`         // authoritative post-discount charge
	WalletAmount    int64              `bson:"walletAmount" json:"walletAmount"`       // drawn from wallet
	PointsUsed      int64              `bson:"pointsUsed" json:"pointsUsed"`           // points debited
	PointsCashValue int64              `bson:"pointsCashValue" json:"pointsCashValue"` // cash value of PointsUsed
	DiscountCode    string             `bson:"discountCode,omitempty" json:"discountCode,omitempty"`
	DiscountType    DiscountType       `bson:"discountType,omitempty" json:"discountType,omitempty"`
	DiscountAmount  int64              `bson:"discountAmount,omitempty" json:"discountAmount,omitempty"` // cash value applied
	Free            bool               `bson:"free" json:"free"`
	Status          PlayStatus         `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
