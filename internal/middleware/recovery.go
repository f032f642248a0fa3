package middleware

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/poofware/property-records-service/internal/utils"
)

// Recovery turns a handler panic into a 500 with the standard error body.
func Recovery() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					utils.Logger.WithFields(logrus.Fields{
						"request_id": RequestIDFromContext(r.Context()),
						"path":       r.URL.Path,
					}).Errorf("panic recovered: %v", rec)
					utils.RespondErrorWithCode(
						w,
						http.StatusInternalServerError,
						utils.ErrCodeInternal,
						"Internal server error",
						nil,
						fmt.Errorf("panic: %v", rec),
					)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
