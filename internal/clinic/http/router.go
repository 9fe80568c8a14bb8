package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/carebridgehq/clinicd/internal/clinic/metrics"
	"github.com/carebridgehq/clinicd/internal/clinic/service"
	"github.com/carebridgehq/clinicd/internal/clinic/store"
	"github.com/carebridgehq/clinicd/pkg/httpx"
	"github.com/carebridgehq/clinicd/pkg/jwtx"
	"github.com/carebridgehq/clinicd/pkg/slogx"

	_ "github.com/carebridgehq/clinicd/api/clinicd" // Swagger docs
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

	store    store.Store
	gatherer prometheus.Gatherer

	AuthService       *service.AuthService
	ClinicService     *service.ClinicService
	InviteService     *service.InviteService
	StaffService      *service.StaffService
	OnboardingService *service.OnboardingService

	// EchoInviteLink forwards to InvitesHandler.EchoLink; on everywhere
	// except production.
	EchoInviteLink bool
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		gatherer:     gatherer,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerClinics()
	r.registerInvites()
	r.registerStaff()
	r.registerOnboarding()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			CareBridge Clinic Staff Service API
//	@version		0.1.0
//	@description	Clinic registration, staff invitations and the invitee onboarding flow. Management endpoints authenticate with short-lived EdDSA-signed bearer tokens; onboarding endpoints authenticate with the invite token in the path.
//
//	@contact.name	CareBridge Platform Team
//	@contact.url	https://github.com/carebridgehq/clinicd
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /auth/login - strict rate limit by IP (authentication attempts)
	h := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerClinics() {
	// POST /clinics - strict rate limit by IP (public signup endpoint)
	h := &RegisterClinicHandler{ClinicService: r.ClinicService}
	r.Mux.Handle("POST /v1/clinics",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerInvites() {
	h := &InvitesHandler{
		InviteService: r.InviteService,
		EchoLink:      r.EchoInviteLink,
	}

	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedRevoke := httpx.Chain(http.HandlerFunc(h.HandleRevoke),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/invites", securedCreate)
	r.Mux.Handle("GET /v1/invites", securedList)
	r.Mux.Handle("DELETE /v1/invites/{id}", securedRevoke)
}

func (r *Router) registerStaff() {
	h := &StaffHandler{StaffService: r.StaffService}

	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedStatus := httpx.Chain(http.HandlerFunc(h.HandleSetStatus),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedRemove := httpx.Chain(http.HandlerFunc(h.HandleRemove),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /v1/clinics/{id}/staff", securedList)
	r.Mux.Handle("PATCH /v1/clinics/{id}/staff/{userID}", securedStatus)
	r.Mux.Handle("DELETE /v1/clinics/{id}/staff/{userID}", securedRemove)
}

func (r *Router) registerOnboarding() {
	h := &OnboardingHandler{Onboarding: r.OnboardingService}

	// The invite token in the path is the credential for this whole group,
	// so everything is limited by IP. Credential and code submission get the
	// strict profile to slow down guessing.
	lenient := httpx.RateLimitByIP(httpx.LenientLimit)
	strict := httpx.RateLimitByIP(httpx.StrictLimit)

	r.Mux.Handle("GET /v1/onboarding/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleShow), lenient))
	r.Mux.Handle("POST /v1/onboarding/{token}/declare",
		httpx.Chain(http.HandlerFunc(h.HandleDeclare), lenient))
	r.Mux.Handle("POST /v1/onboarding/{token}/signin",
		httpx.Chain(http.HandlerFunc(h.HandleSignIn), strict))
	r.Mux.Handle("POST /v1/onboarding/{token}/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignUp), strict))
	r.Mux.Handle("POST /v1/onboarding/{token}/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify), strict))
	r.Mux.Handle("POST /v1/onboarding/{token}/resend",
		httpx.Chain(http.HandlerFunc(h.HandleResend), strict))
	r.Mux.Handle("POST /v1/onboarding/{token}/profile",
		httpx.Chain(http.HandlerFunc(h.HandleProfile), lenient))
	r.Mux.Handle("POST /v1/onboarding/{token}/accept",
		httpx.Chain(http.HandlerFunc(h.HandleAccept), strict))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /metrics",
		httpx.Chain(metrics.Handler(r.gatherer),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
