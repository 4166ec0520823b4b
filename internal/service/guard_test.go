package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
)

func TestRouteGuard_Check(t *testing.T) {
	guard := RouteGuard{LoginPath: "/login"}

	tests := []struct {
		name     string
		sess     *domainauth.Session
		allow    bool
		redirect string
	}{
		{name: "no session", sess: nil, redirect: "/login?next=%2Fservices"},
		{name: "no token", sess: &domainauth.Session{CompanyID: "1", Role: domainauth.RoleUser}, redirect: "/login?next=%2Fservices"},
		{name: "user without company", sess: &domainauth.Session{AuthToken: "t", CompanyID: "null", Role: domainauth.RoleUser}, redirect: "/login?next=%2Fservices"},
		{name: "company role without company", sess: &domainauth.Session{AuthToken: "t", Role: domainauth.RoleCompany}, redirect: "/login?next=%2Fservices"},
		{name: "superadmin without company", sess: &domainauth.Session{AuthToken: "t", Role: domainauth.RoleSuperAdmin}, allow: true},
		{name: "user with company", sess: &domainauth.Session{AuthToken: "t", CompanyID: "3", Role: domainauth.RoleUser}, allow: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := guard.Check(tt.sess, "/services")
			assert.Equal(t, tt.allow, got.Allow)
			assert.Equal(t, tt.redirect, got.RedirectTo)
		})
	}
}

func TestRouteGuard_DefaultLoginPath(t *testing.T) {
	got := RouteGuard{}.Check(nil, "/payroll?tab=2")
	assert.Equal(t, "/login?next=%2Fpayroll%3Ftab%3D2", got.RedirectTo)
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/vouchers", SafeNext(" /vouchers "))
	assert.Equal(t, "/", SafeNext("https://evil.example"))
	assert.Equal(t, "/", SafeNext("//evil.example"))
	assert.Equal(t, "/", SafeNext(`/\evil.example`))
	assert.Equal(t, "/", SafeNext(""))
}
