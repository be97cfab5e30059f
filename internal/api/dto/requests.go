package dto

// CalculateRequest is the body of POST /api/calculate.
type CalculateRequest struct {
	// Query is free text naming a merchant or category ("starbucks",
	// "supermarket"). May be empty; base rules still apply.
	Query string `json:"query"`

	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`

	// CardIDs restricts the evaluated pool to the user's wallet.
	CardIDs []string `json:"cardIds,omitempty"`

	IsForeignCurrency bool `json:"isForeignCurrency,omitempty"`
	IsOnline          bool `json:"isOnline,omitempty"`
}
