package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/ucampus/campus-events-api/internal/models"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// AuthMiddleware resolves credentials before the per-operation checks
// run: API key header first (service integrations), then the JWT
// session cookie with a sliding refresh once the token is past half its
// lifetime. Requests without credentials pass through anonymously so
// public routes keep working; operations enforce auth via Authorize.
func (h *AuthHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get("X-API-KEY")
		if apiKey != "" {
			var keyModel models.APIKey
			if err := h.db.Where("key = ?", apiKey).First(&keyModel).Error; err != nil {
				http.Error(w, "Unauthorized: unknown API key", http.StatusUnauthorized)
				return
			}
			if keyModel.ExpiresAt != nil && time.Now().After(*keyModel.ExpiresAt) {
				http.Error(w, "Unauthorized: API key expired", http.StatusUnauthorized)
				return
			}

			h.db.Model(&keyModel).Update("last_used_at", time.Now())

			ctx := context.WithValue(r.Context(), UserIDKey, keyModel.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		cookie, err := r.Cookie("auth_token")
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		userID, expiry, err := h.parseToken(cookie.Value)
		if err != nil {
			http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
			return
		}

		// Sliding session: refresh once past the halfway point.
		if !expiry.IsZero() && time.Until(expiry) < TokenDuration/2 {
			if newToken, err := h.GenerateToken(userID); err == nil {
				h.setSessionCookie(w, newToken)
			}
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
