package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/ports"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/service"
)

// SessionReader resolves and clears the sessions written at login.
type SessionReader interface {
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionConfig names the cookie and guard used by RequireSession.
type SessionConfig struct {
	Reader     SessionReader // Required
	Guard      service.RouteGuard
	CookieName string
	Logger     *slog.Logger
}

// RequireSession admits requests whose session passes the route guard.
// API requests are refused with 401 and the login location; page requests
// are redirected there with the requested location preserved.
func RequireSession(cfg SessionConfig) func(http.Handler) http.Handler {
	if cfg.Reader == nil {
		panic("session reader is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessionFromRequest(r, cfg)
			decision := cfg.Guard.Check(sess, requestedLocation(r))
			if !decision.Allow {
				if isAPIRequest(r) {
					WriteJSON(w, http.StatusUnauthorized, map[string]string{
						"error":       "authentication_required",
						"message":     "authentication required",
						"redirect_to": decision.RedirectTo,
					})
					return
				}
				http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), sess)))
		})
	}
}

func sessionFromRequest(r *http.Request, cfg SessionConfig) *domainauth.Session {
	c, err := r.Cookie(cookieName(cfg.CookieName))
	if err != nil || c.Value == "" {
		return nil
	}
	sess, err := cfg.Reader.GetSession(r.Context(), c.Value)
	if err != nil {
		if !errors.Is(err, ports.ErrSessionNotFound) {
			cfg.Logger.Warn("session lookup failed",
				slog.String("path", r.URL.Path),
				slog.Any("error", err))
		}
		return nil
	}
	return sess
}

// requestedLocation is where the user returns after login. API calls
// return to the referring page when it is same-origin.
func requestedLocation(r *http.Request) string {
	if isAPIRequest(r) {
		if ref := r.Header.Get("Referer"); ref != "" {
			if u, err := r.URL.Parse(ref); err == nil && (u.Host == "" || u.Host == r.Host) {
				return u.RequestURI()
			}
		}
		return "/"
	}
	return r.URL.RequestURI()
}

func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

func cookieName(name string) string {
	if name == "" {
		return "session_id"
	}
	return name
}
