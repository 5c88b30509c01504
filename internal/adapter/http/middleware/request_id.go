package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/transpo-mobility/fare-engine/internal/domain/types"
	wrap "github.com/transpo-mobility/fare-engine/pkg/logger/wrapper"
)

const requestIDHeader = "X-Request-Id"

// RequestID assigns every request an ID, honoring one supplied by an upstream
// proxy, and echoes it back in the response header.
func (h *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := wrap.WithRequestID(r.Context(), id)
		ctx = types.WithRequestIDContext(ctx, id)

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
