package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/storefront-pricing/internal/storefront/infra/httpx/middlewares"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachRequestMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/quotes", handler.Quote)
	r.Post("/carts", handler.CreateCart)
	r.Get("/carts/{id}", handler.GetCart)
	r.Post("/carts/{id}/items", handler.AddCartItem)
	r.Post("/purchases", handler.Purchase)
	return r
}
