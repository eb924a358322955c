package httpx

import "github.com/shopspring/decimal"

type LineItemDTO struct {
	Category  string          `json:"category"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type QuoteRequest struct {
	Items []LineItemDTO `json:"items"`
}

type ChargeResponse struct {
	Rule   string          `json:"rule"`
	Amount decimal.Decimal `json:"amount"`
}

type QuoteResponse struct {
	Items   []LineItemDTO    `json:"items"`
	Charges []ChargeResponse `json:"charges"`
	Total   decimal.Decimal  `json:"total"`
}

type CartResponse struct {
	ID string `json:"id"`
	QuoteResponse
}

type CreateCartResponse struct {
	ID string `json:"id"`
}

// PurchaseRequest leaves Items nil when the field is null or missing, which
// is a request with no order at all.
type PurchaseRequest struct {
	Items []PurchaseItemDTO `json:"items"`
}

type PurchaseItemDTO struct {
	ISBN     string `json:"isbn"`
	Quantity int    `json:"quantity"`
}

type PurchaseResponse struct {
	Total       decimal.Decimal     `json:"total"`
	Unavailable []ShortfallResponse `json:"unavailable"`
}

type ShortfallResponse struct {
	ISBN    string `json:"isbn"`
	Missing int    `json:"missing"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
