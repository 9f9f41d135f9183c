package util

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
)

// WithRecover converts handler panics into a JSON 500 response. The panic
// value only appears in the body when development is true.
func WithRecover(development bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			LoggerFromContext(r.Context()).Error(
				"panic recovered",
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()),
				"path", r.URL.Path,
			)
			msg := "Internal server error"
			if development {
				msg = fmt.Sprint(rec)
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
		}()
		next.ServeHTTP(w, r)
	})
}
