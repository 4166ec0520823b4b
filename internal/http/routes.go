package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/screens"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions     *service.SessionService // Required
	Screens      *screens.Registry       // Required
	Resolver     *service.PermissionResolver
	Guard        service.RouteGuard
	CookieName   string
	CookieDomain string
	// DevSession enables GET /dev/login. Leave nil outside development.
	DevSession *domainauth.Session
	Logger     *slog.Logger
}

// NewRouter creates the console's HTTP handler.
func NewRouter(services RouterServices) http.Handler {
	if services.Sessions == nil || services.Screens == nil {
		panic("router requires sessions and screens")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	resolver := services.Resolver
	if resolver == nil {
		resolver = service.NewPermissionResolver(service.PermissionResolverOptions{Logger: logger})
	}

	auth := &AuthHandlers{
		Sessions:     services.Sessions,
		Screens:      services.Screens,
		Guard:        services.Guard,
		CookieName:   services.CookieName,
		CookieDomain: services.CookieDomain,
		Dev:          services.DevSession,
		Seeder:       services.Sessions,
		Logger:       logger,
	}
	sh := &ScreenHandlers{Registry: services.Screens, Resolver: resolver, Logger: logger}
	protect := RequireSession(SessionConfig{
		Reader:     services.Sessions,
		Guard:      services.Guard,
		CookieName: services.CookieName,
		Logger:     logger,
	})

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	registerAuthRoutes(mux, auth, protect)
	registerScreenRoutes(mux, sh, protect)

	return Recover(logger)(Logging(logger)(mux))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, protect func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /logout", h.Logout)
	mux.Handle("GET /api/session", protect(http.HandlerFunc(h.Session)))
	if h.Dev != nil {
		mux.HandleFunc("GET /dev/login", h.DevLogin)
	}
}

func registerScreenRoutes(mux *http.ServeMux, h *ScreenHandlers, protect func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"GET /api/screens":                                 h.List,
		"GET /api/screens/{screen}":                        h.Show,
		"POST /api/screens/{screen}/refresh":               h.Refresh,
		"POST /api/screens/{screen}/filter":                h.Filter,
		"POST /api/screens/{screen}/create":                h.OpenCreate,
		"GET /api/screens/{screen}/items/{id}":             h.OpenView,
		"POST /api/screens/{screen}/items/{id}/edit":       h.OpenEdit,
		"POST /api/screens/{screen}/items/{id}/delete":     h.ConfirmDelete,
		"POST /api/screens/{screen}/delete":                h.Delete,
		"PATCH /api/screens/{screen}/draft":                h.Draft,
		"POST /api/screens/{screen}/submit":                h.Submit,
		"POST /api/screens/{screen}/modals/{modal}/close":  h.CloseModal,
		"POST /api/screens/{screen}/modals/{modal}/exited": h.ModalExited,
	}
	for pattern, fn := range routes {
		mux.Handle(pattern, protect(fn))
	}
}
