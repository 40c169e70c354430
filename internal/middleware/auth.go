package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/devconnect/backend/internal/models"
	"github.com/devconnect/backend/internal/services"
)

type contextKey string

const UserIDKey contextKey = "userID"

// Authenticated guards private routes. The bearer token is verified and the
// resolved user id is placed on the request context.
func Authenticated(tokens *services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSON(w, http.StatusUnauthorized, models.NewMessageResponse("No token, authorization denied"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeJSON(w, http.StatusUnauthorized, models.NewMessageResponse("Token is not valid"))
				return
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, models.NewMessageResponse("Token is not valid"))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user id from context
func GetUserID(ctx context.Context) string {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
