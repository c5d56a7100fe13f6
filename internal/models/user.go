package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role values carried in the JWT and checked by the admin route group.
const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

// User represents a player (or administrator) in the system. WalletBalance is
// held in minor units (pence) and Points is the loyalty points balance; both
// are mutated only through the atomic repository operations so that no two
// concurrent spends can overdraw them.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email         string             `bson:"email" json:"email"`
	Name          string             `bson:"name" json:"name"`
	Password      string             `bson:"password" json:"-"` // bcrypt hash
	Role          string             `bson:"role" json:"role"`
	WalletBalance int64              `bson:"walletBalance" json:"walletBalance"`
	Points        int64              `bson:"points" json:"points"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	LastActivity  time.Time          `bson:"lastActivity,omitempty" json:"lastActivity,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
