package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Temutjin2k/mileage-report/internal/domain/types"
	wrap "github.com/Temutjin2k/mileage-report/pkg/logger/wrapper"
)

const requestIDHeader = "X-Request-ID"

// RequestID takes the caller's X-Request-ID or generates one, and puts it into
// the context for logs and outgoing events.
func (m *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		ctx := wrap.WithRequestID(r.Context(), id)
		ctx = types.WithRequestIDContext(ctx, id)

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
