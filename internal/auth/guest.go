package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	authmw "github.com/mind-engage/mindengage-diagnostic/internal/auth/middleware"
	"github.com/mind-engage/mindengage-diagnostic/internal/rbac"
)

const (
	guestCookie = "me_guest"
	guestPrefix = "guest|"
	guestTTL    = 30 * 24 * time.Hour
)

// GuestLoginHandler issues a respondent token to an anonymous browser. The
// guest identity is kept in a signed cookie so the same browser keeps
// seeing its own assessments.
func GuestLoginHandler(a *authmw.AuthService, secureCookie bool) http.HandlerFunc {
	type out struct {
		AccessToken string `json:"access_token"`
		Username    string `json:"username"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		userID := ""
		if c, err := r.Cookie(guestCookie); err == nil && c.Value != "" {
			if claims, err := a.Parse(c.Value); err == nil &&
				claims.Role == rbac.RoleRespondent && strings.HasPrefix(claims.Sub, guestPrefix) {
				userID = claims.Sub
			}
		}
		if userID == "" {
			userID = guestPrefix + uuid.NewString()
		}

		cookieTok, err := a.IssueLongLived(userID, rbac.RoleRespondent, guestTTL)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		tok, err := a.IssueJWT(userID, rbac.RoleRespondent)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		sameSite := http.SameSiteLaxMode
		if secureCookie {
			sameSite = http.SameSiteNoneMode
		}
		http.SetCookie(w, &http.Cookie{
			Name:     guestCookie,
			Value:    cookieTok,
			Path:     "/",
			HttpOnly: true,
			Secure:   secureCookie,
			SameSite: sameSite,
			Expires:  time.Now().Add(guestTTL),
		})
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out{AccessToken: tok, Username: "guest-" + userID[len(userID)-6:]})
	}
}
