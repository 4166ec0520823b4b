package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/adapters/memory"
	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/mocks"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/ports"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/screens"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/service"
)

const testSessionID = "sess-1"

// fakeServices is an in-memory services backend for the router tests.
type fakeServices struct {
	mu    sync.Mutex
	items []map[string]any
	calls []string
}

func (f *fakeServices) do(_ context.Context, req ports.BackendRequest) (ports.BackendResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req.Method+" "+req.Path)

	switch req.Method {
	case http.MethodGet:
		raw, _ := json.Marshal(f.items)
		return ports.BackendResponse{Status: http.StatusOK, Data: raw}, nil
	case http.MethodPost:
		body, _ := req.Body.(map[string]any)
		body["id"] = len(f.items) + 1
		f.items = append(f.items, body)
		raw, _ := json.Marshal(body)
		return ports.BackendResponse{Status: http.StatusCreated, Data: raw}, nil
	default:
		return ports.BackendResponse{Status: http.StatusOK}, nil
	}
}

type routerEnv struct {
	handler  http.Handler
	store    *memory.SessionStore
	registry *screens.Registry
	backend  *fakeServices
}

func newRouterEnv(t *testing.T, perms ...domainauth.ModulePermission) *routerEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	fake := &fakeServices{items: []map[string]any{
		{"id": 1, "service_name": "Bookkeeping", "price": "100.00"},
	}}
	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(fake.do).AnyTimes()

	resolver := service.NewPermissionResolver(service.PermissionResolverOptions{})
	registry, err := screens.NewRegistry(screens.RegistryOptions{
		Deps: screens.Deps{Backend: backend, Resolver: resolver},
	})
	require.NoError(t, err)
	t.Cleanup(registry.Close)

	store := memory.NewSessionStore()
	raw, _ := json.Marshal(perms)
	require.NoError(t, store.Save(context.Background(), domainauth.Session{
		ID:              testSessionID,
		AuthToken:       "tok",
		CompanyID:       "7",
		Role:            domainauth.RoleUser,
		UserPermissions: string(raw),
	}, 0))

	handler := NewRouter(RouterServices{
		Sessions: service.NewSessionService(service.SessionServiceOptions{Sessions: store}),
		Screens:  registry,
		Resolver: resolver,
		Guard:    service.RouteGuard{LoginPath: "/login"},
	})
	return &routerEnv{handler: handler, store: store, registry: registry, backend: fake}
}

func (e *routerEnv) do(t *testing.T, method, target string, body url.Values) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(body.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.AddCookie(&http.Cookie{Name: "session_id", Value: testSessionID})
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func modalState(t *testing.T, state map[string]any, name string) string {
	t.Helper()
	modals, ok := state["modals"].([]any)
	require.True(t, ok, "state has no modals")
	for _, m := range modals {
		mv := m.(map[string]any)
		if mv["name"] == name {
			return mv["state"].(string)
		}
	}
	t.Fatalf("modal %q not found", name)
	return ""
}

func toastMessages(state map[string]any) []string {
	var out []string
	toasts, _ := state["toasts"].([]any)
	for _, tt := range toasts {
		out = append(out, tt.(map[string]any)["message"].(string))
	}
	return out
}

func TestHealthz(t *testing.T) {
	env := newRouterEnv(t)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAPI_RequiresSession(t *testing.T) {
	env := newRouterEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/api/screens", nil)
	req.Header.Set("Referer", "http://example.com/services?q=tax")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "authentication_required", body["error"])
	assert.Equal(t, "/login?next=%2Fservices%3Fq%3Dtax", body["redirect_to"])
}

func TestScreens_ListFiltersByViewPermission(t *testing.T) {
	env := newRouterEnv(t,
		domainauth.ModulePermission{ModuleName: screens.ModuleServices, CanView: true, CanCreate: true},
		domainauth.ModulePermission{ModuleName: screens.ModuleVouchers, CanCreate: true},
	)
	rec, body := env.do(t, http.MethodGet, "/api/screens", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	list := body["screens"].([]any)
	require.Len(t, list, 1)
	entry := list[0].(map[string]any)
	assert.Equal(t, "services", entry["slug"])
	assert.Equal(t, map[string]any{"create": true, "view": true, "edit": false, "delete": false}, entry["actions"])
}

func TestScreens_CreateFlow(t *testing.T) {
	env := newRouterEnv(t,
		domainauth.ModulePermission{ModuleName: screens.ModuleServices, CanView: true, CanCreate: true},
	)

	rec, state := env.do(t, http.MethodGet, "/api/screens/services", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), state["list"].(map[string]any)["count"])

	rec, state = env.do(t, http.MethodPost, "/api/screens/services/create", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "visible", modalState(t, state, "form"))

	rec, _ = env.do(t, http.MethodPatch, "/api/screens/services/draft",
		url.Values{"service_name": {"Payroll run"}, "price": {"45.50"}})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, state = env.do(t, http.MethodPost, "/api/screens/services/submit", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "closing", modalState(t, state, "form"))
	assert.Contains(t, toastMessages(state), "Created successfully.")
	assert.Equal(t, float64(2), state["list"].(map[string]any)["count"])

	rec, state = env.do(t, http.MethodPost, "/api/screens/services/modals/form/exited", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "closed", modalState(t, state, "form"))

	assert.Equal(t, []string{
		"GET services/company/7",
		"POST services",
		"GET services/company/7",
	}, env.backend.calls)
}

func TestScreens_InvalidDraftIsUnprocessable(t *testing.T) {
	env := newRouterEnv(t,
		domainauth.ModulePermission{ModuleName: screens.ModuleServices, CanView: true, CanCreate: true},
	)
	env.do(t, http.MethodPost, "/api/screens/services/create", nil)

	rec, body := env.do(t, http.MethodPost, "/api/screens/services/submit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation", body["error"])
	form := body["state"].(map[string]any)["form"].(map[string]any)
	assert.Contains(t, form["errors"], "service_name")
	assert.Equal(t, []string{"GET services/company/7"}, env.backend.calls)
}

func TestScreens_DeniedActionIsForbidden(t *testing.T) {
	env := newRouterEnv(t,
		domainauth.ModulePermission{ModuleName: screens.ModuleServices, CanView: true},
	)
	rec, body := env.do(t, http.MethodPost, "/api/screens/services/items/1/delete", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "permission", body["error"])
	assert.Contains(t, toastMessages(body["state"].(map[string]any)), "You do not have permission to perform this action.")
}

func TestScreens_NotViewable(t *testing.T) {
	env := newRouterEnv(t)
	rec, body := env.do(t, http.MethodGet, "/api/screens/services", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, body["state"])
}

func TestScreens_Unknown(t *testing.T) {
	env := newRouterEnv(t)
	rec, body := env.do(t, http.MethodGet, "/api/screens/ledger", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "screen_not_found", body["error"])
}

func TestScreens_SecondCloseIsHarmless(t *testing.T) {
	env := newRouterEnv(t,
		domainauth.ModulePermission{ModuleName: screens.ModuleServices, CanView: true, CanCreate: true},
	)
	env.do(t, http.MethodPost, "/api/screens/services/create", nil)

	_, first := env.do(t, http.MethodPost, "/api/screens/services/modals/form/close", nil)
	_, second := env.do(t, http.MethodPost, "/api/screens/services/modals/form/close", nil)
	assert.Equal(t, "closing", modalState(t, second, "form"))
	assert.Equal(t, first["modals"], second["modals"])

	rec, _ := env.do(t, http.MethodPatch, "/api/screens/services/draft",
		url.Values{"service_name": {"Late edit"}})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = env.do(t, http.MethodPost, "/api/screens/services/modals/missing/close", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogout(t *testing.T) {
	env := newRouterEnv(t,
		domainauth.ModulePermission{ModuleName: screens.ModuleServices, CanView: true},
	)
	env.do(t, http.MethodGet, "/api/screens/services", nil)
	require.Equal(t, []string{"services"}, env.registry.OpenSlugs(testSessionID))

	rec, _ := env.do(t, http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2F", rec.Header().Get("Location"))
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "session_id=;")

	assert.Empty(t, env.registry.OpenSlugs(testSessionID))
	_, err := env.store.Get(context.Background(), testSessionID)
	assert.ErrorIs(t, err, memory.ErrNotFound)
}
