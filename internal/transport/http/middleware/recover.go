package middleware

import (
	"log"
	"net/http"

	"holerite/internal/transport/http/api"
)

// Recoverer converts a panic anywhere below it into a generic 500 envelope.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic recovered: %v", rec)
				api.Fail(w, http.StatusInternalServerError, "internal_error",
					"unexpected error during calculation", GetRequestID(r.Context()))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
