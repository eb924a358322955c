package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/storefront-pricing/internal/pkg/reqctx"
)

// AttachRequestMetadata copies chi's request id and the client's idempotency
// key into the context, where the logger and the purchase ledger read them.
func AttachRequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := reqctx.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
		ctx = reqctx.WithIdempotencyKey(ctx, r.Header.Get(reqctx.HeaderXIdempotencyKey))

		w.Header().Set(reqctx.HeaderXRequestID, reqctx.RequestID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
