package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/service"
)

// SessionSeeder persists a new session. Only wired in development.
type SessionSeeder interface {
	Seed(ctx context.Context, sess domainauth.Session) (domainauth.Session, error)
}

// SessionDropper releases per-session state held by the console.
type SessionDropper interface {
	Drop(sessionID string) int
}

// AuthHandlers serves session endpoints.
type AuthHandlers struct {
	Sessions     SessionReader // Required
	Screens      SessionDropper
	Guard        service.RouteGuard
	CookieName   string
	CookieDomain string
	// Dev, when set, backs GET /dev/login with this session template.
	Dev    *domainauth.Session
	Seeder SessionSeeder
	Logger *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Logout drops the console's screens, removes the stored session, clears
// the cookie and sends the user to the login page.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(cookieName(h.CookieName)); err == nil && c.Value != "" {
		if h.Screens != nil {
			h.Screens.Drop(c.Value)
		}
		if err := h.Sessions.Logout(r.Context(), c.Value); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}
	h.clearCookie(w, r)

	loginURL := h.Guard.Check(nil, "/").RedirectTo
	if wantsJSON(r) {
		WriteJSON(w, http.StatusOK, map[string]string{
			"status":      "success",
			"redirect_to": loginURL,
		})
		return
	}
	http.Redirect(w, r, loginURL, http.StatusSeeOther)
}

// Session describes the signed-in tenant and role.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"company_id":    sess.CompanyID,
		"role":          sess.Role,
		"privileged":    sess.Role.Privileged(),
	})
}

// DevLogin seeds a session from the development template, sets the cookie
// and redirects to ?next=.
func (h *AuthHandlers) DevLogin(w http.ResponseWriter, r *http.Request) {
	if h.Dev == nil || h.Seeder == nil {
		http.NotFound(w, r)
		return
	}
	sess, err := h.Seeder.Seed(r.Context(), *h.Dev)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "seed dev session", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "session_seed_failed", Err: err})
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(h.CookieName),
		Value:    sess.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, service.SafeNext(r.URL.Query().Get(service.NextParam)), http.StatusSeeOther)
}

func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(h.CookieName),
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func isSecure(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
}
