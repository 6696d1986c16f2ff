package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/openclave/realmadmin/internal/admin/keycloak"
	"github.com/openclave/realmadmin/internal/admin/service"
	"github.com/openclave/realmadmin/internal/admin/store"
	"github.com/openclave/realmadmin/pkg/httpx"
	"github.com/openclave/realmadmin/pkg/jwtx"
	"github.com/openclave/realmadmin/pkg/slogx"

	_ "github.com/openclave/realmadmin/api/console" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store
	kc    *keycloak.Client

	UserService     *service.UserService
	PasswordService *service.PasswordService
	MFAService      *service.MFAService
	AuditService    *service.AuditService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	kc *keycloak.Client,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		kc:           kc,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerPublic()
	r.registerProtected()
	r.registerUsers()
	r.registerPassword()
	r.registerMFA()
	r.registerAudit()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Realm Administration Console API
//	@version		0.1.0
//	@description	Backend for a small identity administration console. Proxies the
//	@description	identity provider's admin REST API behind bearer-token auth so the
//	@description	provider's service credentials never reach the browser.
//
//	@host						localhost:3000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token issued by the identity provider. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerPublic() {
	// GET / - public welcome, lenient rate limit by IP
	r.Mux.Handle("GET /{$}",
		httpx.Chain(http.HandlerFunc(HandleWelcome),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerProtected() {
	// GET /api/protected - any authenticated user, lenient rate limit
	r.Mux.Handle("GET /api/protected",
		httpx.Chain(http.HandlerFunc(HandleProtected),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// GET /api/users - any authenticated user, lenient rate limit
	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	// POST /api/users - admin only, moderate rate limit
	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyRole("admin"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	// DELETE /api/users/{id} - admin or manager, moderate rate limit
	securedDelete := httpx.Chain(http.HandlerFunc(h.HandleDelete),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyRole("admin", "manager"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /api/users", securedList)
	r.Mux.Handle("POST /api/users", securedCreate)
	r.Mux.Handle("DELETE /api/users/{id}", securedDelete)
}

func (r *Router) registerPassword() {
	h := &PasswordHandler{PasswordService: r.PasswordService}

	// PUT /api/update-password - self service, strict rate limit
	// (carries the caller's current password, so treat like a login attempt)
	securedUpdate := httpx.Chain(http.HandlerFunc(h.HandleUpdateOwn),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.StrictLimit),
	)

	// PUT /api/users/{id}/reset-password - admin only, moderate rate limit
	securedReset := httpx.Chain(http.HandlerFunc(h.HandleTriggerReset),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyRole("admin"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("PUT /api/update-password", securedUpdate)
	r.Mux.Handle("PUT /api/users/{id}/reset-password", securedReset)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	// GET /api/users/me/mfa-status - self service read, lenient rate limit
	securedStatus := httpx.Chain(http.HandlerFunc(h.HandleStatus),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	// PUT /api/users/me/mfa-status - self service toggle, moderate rate limit
	securedToggle := httpx.Chain(http.HandlerFunc(h.HandleToggle),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /api/users/me/mfa-status", securedStatus)
	r.Mux.Handle("PUT /api/users/me/mfa-status", securedToggle)
}

func (r *Router) registerAudit() {
	h := &AuditHandler{AuditService: r.AuditService}

	// GET /api/audit - admin only, moderate rate limit
	secured := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyRole("admin"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /api/audit", secured)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.kc),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
