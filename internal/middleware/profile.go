package middleware

import (
	"context"
	"net/http"

	"neighbrewhood-backend/internal/models"
	"neighbrewhood-backend/internal/services"

	"github.com/rs/zerolog/log"
)

const brewerKey contextKey = "brewer"

// ProfileRequired gates core operations behind an existing brewer profile.
// The profile is looked up explicitly and stashed in the request context so
// handlers can reuse its registered location.
func ProfileRequired(brewerService *services.BrewerService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())
			brewer, err := brewerService.GetProfile(r.Context(), userID)
			if err != nil {
				log.Error().Err(err).Str("user_id", userID).Msg("Failed to look up brewer profile")
				respondError(w, "Failed to look up brewer profile", http.StatusInternalServerError)
				return
			}
			if brewer == nil {
				respondError(w, "You must create a profile", http.StatusNotFound)
				return
			}

			ctx := context.WithValue(r.Context(), brewerKey, brewer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetBrewer extracts the viewer's brewer profile from context
func GetBrewer(ctx context.Context) *models.Brewer {
	brewer, ok := ctx.Value(brewerKey).(*models.Brewer)
	if !ok {
		return nil
	}
	return brewer
}
