package models

// PlayRequest is the body for POST /plays and POST /plays/quote.
type PlayRequest struct {
	GameID       string `json:"gameId" binding:"required"`
	UseWallet    bool   `json:"useWallet"`
	UsePoints    bool   `json:"usePoints"`
	DiscountCode string `json:"discountCode,omitempty"`
}

// TopupRequest is the body for POST /users/topup. Amount is a decimal
// string in major units, e.g. "10.00".
type TopupRequest struct {
	Amount    string `json:"amount" binding:"required"`
	Reference string `json:"reference,omitempty"`
}
