package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DiscountType says what unit a discount's Amount is expressed in.
type DiscountType string

const (
	DiscountCash   DiscountType = "CASH"   // Amount is minor units (pence)
	DiscountPoints DiscountType = "POINTS" // Amount is a points count, converted at the configured rate
)

// Discount is an admin-managed discount code applied before apportionment.
type Discount struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code      string             `bson:"code" json:"code"`
	Type      DiscountType       `bson:"type" json:"type"`
	Amount    int64              `bson:"amount" json:"amount"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	ExpiresAt *time.Time         `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Usable reports whether the discount may be applied at the given time.
func (d *Discount) Usable(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.ExpiresAt != nil && now.After(*d.ExpiresAt) {
		return false
	}
	return true
}
