package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GameType represents the kind of instant-win game
type GameType string

const (
	GameTypeSpinWheel   GameType = "SPIN_WHEEL"
	GameTypeScratchCard GameType = "SCRATCH_CARD"
	GameTypeBalloonPop  GameType = "BALLOON_POP"
)

// Game is one admin-managed game configuration. Its outcome pool is the set
// of Outcomes referencing it, ordered by DisplayOrder.
//
// PointsAllowed is the capability flag for games whose plays may not be paid
// with loyalty points (instant-type purchases). The apportioner rejects a
// points funding request against a game where this is false.
type Game struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Type          GameType           `bson:"type" json:"type"`
	EntryPrice    int64              `bson:"entryPrice" json:"entryPrice"` // minor units (pence); 0 = free play
	PointsAllowed bool               `bson:"pointsAllowed" json:"pointsAllowed"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FreeToPlay reports whether plays of this game skip payment entirely.
func (g *Game) FreeToPlay() bool {
	return g.EntryPrice <= 0
}
