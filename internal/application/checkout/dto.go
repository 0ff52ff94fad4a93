package checkout

import "github.com/shopspring/decimal"

// CheckoutResponse carries the order message and the deep link it was
// handed off with
type CheckoutResponse struct {
	SessionID           string          `json:"session_id"`
	Message             string          `json:"message"`
	Link                string          `json:"link"`
	TotalItems          int             `json:"total_items"`
	TotalPrice          decimal.Decimal `json:"total_price"`
	TotalPriceFormatted string          `json:"total_price_formatted"`
}

// ContactRequest is the contact page form
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email,max=200"`
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required,max=2000"`
}

// ContactResponse carries the contact message and its deep link
type ContactResponse struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}
