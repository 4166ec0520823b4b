package service

import (
	"net/url"
	"strings"

	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
)

// NextParam carries the originally requested location through the login redirect.
const NextParam = "next"

// GuardDecision is the outcome of a route guard check.
type GuardDecision struct {
	Allow      bool
	RedirectTo string
}

// RouteGuard decides whether a protected page may be shown for a session.
// It performs no I/O.
type RouteGuard struct {
	LoginPath string
}

// Check allows the request when the session has a token and, unless the role
// is SUPERADMIN, a company id. Otherwise it redirects to the login path and
// preserves requested for the post-login return.
func (g RouteGuard) Check(sess *domainauth.Session, requested string) GuardDecision {
	if sess != nil && sess.HasToken() && (sess.IsSuperAdmin() || sess.HasCompany()) {
		return GuardDecision{Allow: true}
	}
	return GuardDecision{RedirectTo: g.loginURL(requested)}
}

func (g RouteGuard) loginURL(requested string) string {
	login := g.LoginPath
	if login == "" {
		login = "/login"
	}
	q := url.Values{}
	q.Set(NextParam, SafeNext(requested))
	return login + "?" + q.Encode()
}

// SafeNext restricts a return location to same-origin absolute paths.
func SafeNext(requested string) string {
	requested = strings.TrimSpace(requested)
	if !strings.HasPrefix(requested, "/") || strings.HasPrefix(requested, "//") || strings.HasPrefix(requested, "/\\") {
		return "/"
	}
	return requested
}
