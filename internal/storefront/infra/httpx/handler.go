package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	fdomain "github.com/jcmexdev/storefront-pricing/internal/fulfillment/domain"
	"github.com/jcmexdev/storefront-pricing/internal/pkg/reqctx"
	"github.com/jcmexdev/storefront-pricing/internal/pricing"
	"github.com/jcmexdev/storefront-pricing/internal/pricing/cart"
	"github.com/jcmexdev/storefront-pricing/internal/pricing/domain"
)

// CartStore creates and looks up persisted carts.
type CartStore interface {
	CreateCart(ctx context.Context) (string, error)
	FindCart(ctx context.Context, id string) (domain.Cart, error)
}

// Fulfiller prices a book order against stock.
type Fulfiller interface {
	PriceForCart(ctx context.Context, order *fdomain.Order) (*fdomain.PurchaseSummary, error)
}

// Handler serves the storefront's pricing and purchase endpoints.
type Handler struct {
	carts     CartStore
	rules     []domain.PriceRule
	fulfiller Fulfiller
}

func NewHandler(carts CartStore, rules []domain.PriceRule, fulfiller Fulfiller) *Handler {
	return &Handler{
		carts:     carts,
		rules:     append([]domain.PriceRule(nil), rules...),
		fulfiller: fulfiller,
	}
}

// Quote prices an ad-hoc list of items without storing anything.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	items, err := mapLineItems(req.Items)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_item", err.Error())
		return
	}

	engine := pricing.NewEngine(cart.NewMemory(), h.rules)
	for _, it := range items {
		if err := engine.AddToCart(r.Context(), it); err != nil {
			writeError(w, http.StatusInternalServerError, "cart_error", err.Error())
			return
		}
	}

	resp, err := h.price(r.Context(), engine, items)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "pricing_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateCart(w http.ResponseWriter, r *http.Request) {
	id, err := h.carts.CreateCart(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cart_error", err.Error())
		return
	}

	slog.InfoContext(r.Context(), "cart created", "cart_id", id)
	writeJSON(w, http.StatusCreated, CreateCartResponse{ID: id})
}

// AddCartItem appends one line item to a stored cart and returns the new price.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.findCart(w, r)
	if !ok {
		return
	}

	var dto LineItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	item, err := mapLineItem(dto)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_item", err.Error())
		return
	}

	engine := pricing.NewEngine(c, h.rules)
	if err := engine.AddToCart(r.Context(), item); err != nil {
		writeError(w, http.StatusInternalServerError, "cart_error", err.Error())
		return
	}

	h.writeCart(w, r, http.StatusCreated, chi.URLParam(r, "id"), c)
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, ok := h.findCart(w, r)
	if !ok {
		return
	}
	h.writeCart(w, r, http.StatusOK, chi.URLParam(r, "id"), c)
}

// Purchase fulfils a book order. A request without items is answered with
// 204 and touches neither the catalog nor the purchase ledger.
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	order, err := mapOrder(req.Items)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_order", err.Error())
		return
	}

	slog.InfoContext(r.Context(), "processing purchase",
		"idempotency_key", reqctx.IdempotencyKey(r.Context()),
		"lines", len(req.Items),
	)

	summary, err := h.fulfiller.PriceForCart(r.Context(), order)
	if errors.Is(err, fdomain.ErrBookNotFound) {
		writeError(w, http.StatusNotFound, "book_not_found", err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "fulfillment_error", err.Error())
		return
	}
	if summary == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, mapSummaryToResponse(summary))
}

func (h *Handler) findCart(w http.ResponseWriter, r *http.Request) (domain.Cart, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "cart_id_required", "")
		return nil, false
	}

	c, err := h.carts.FindCart(r.Context(), id)
	if errors.Is(err, domain.ErrCartNotFound) {
		writeError(w, http.StatusNotFound, "cart_not_found", err.Error())
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cart_error", err.Error())
		return nil, false
	}
	return c, true
}

func (h *Handler) writeCart(w http.ResponseWriter, r *http.Request, status int, id string, c domain.Cart) {
	items, err := c.Items(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cart_error", err.Error())
		return
	}

	resp, err := h.price(r.Context(), pricing.NewEngine(c, h.rules), items)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "pricing_error", err.Error())
		return
	}
	writeJSON(w, status, CartResponse{ID: id, QuoteResponse: resp})
}

func (h *Handler) price(ctx context.Context, engine *pricing.Engine, items []domain.LineItem) (QuoteResponse, error) {
	charges, err := engine.Breakdown(ctx)
	if err != nil {
		return QuoteResponse{}, err
	}

	resp := QuoteResponse{
		Items:   mapItemsToDTO(items),
		Charges: make([]ChargeResponse, len(charges)),
	}
	for i, c := range charges {
		resp.Charges[i] = ChargeResponse{Rule: c.Rule, Amount: c.Amount}
		resp.Total = resp.Total.Add(c.Amount)
	}
	return resp, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
