package httpapi

import (
	"context"
	"net/http"
	"strings"

	"microblog/internal/common"
)

type contextKey int

const viewerKey contextKey = iota

// requireAuth verifies the bearer token and stores the viewer id in the
// request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondJSON(w, http.StatusUnauthorized, map[string]any{
				"result":        false,
				"error_message": "missing bearer token",
			})
			return
		}
		claims, err := common.ValidToken(token)
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, map[string]any{
				"result":        false,
				"error_message": "invalid or expired token",
			})
			return
		}
		ctx := context.WithValue(r.Context(), viewerKey, claims.UserID)
		next(w, r.WithContext(ctx))
	}
}

// viewerID returns the authenticated user id placed by requireAuth.
func viewerID(ctx context.Context) int64 {
	id, _ := ctx.Value(viewerKey).(int64)
	return id
}
