package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionType classifies a balance ledger entry.
type TransactionType string

const (
	TransactionPlayDebit    TransactionType = "PLAY_DEBIT"
	TransactionPlayRefund   TransactionType = "PLAY_REFUND"
	TransactionWinCredit    TransactionType = "WIN_CREDIT"
	TransactionPointsCredit TransactionType = "POINTS_CREDIT"
	TransactionTopup        TransactionType = "TOPUP"
)

// Transaction records one applied balance mutation: the wallet and points
// deltas that were committed, signed (debits negative). One row is written
// per committed mutation so the balance history can be audited end to end.
type Transaction struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	PlayID      primitive.ObjectID `bson:"playId,omitempty" json:"playId,omitempty"`
	Type        TransactionType    `bson:"type" json:"type"`
	WalletDelta int64              `bson:"walletDelta" json:"walletDelta"` // minor units (pence)
	PointsDelta int64              `bson:"pointsDelta" json:"pointsDelta"`
	Reference   string             `bson:"reference,omitempty" json:"reference,omitempty"`
	Note        string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
