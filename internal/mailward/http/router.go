package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/veridianlabs/mailward/internal/mailward/mail"
	"github.com/veridianlabs/mailward/internal/mailward/service"
	"github.com/veridianlabs/mailward/internal/mailward/store"
	"github.com/veridianlabs/mailward/pkg/httpx"
	"github.com/veridianlabs/mailward/pkg/jwtx"
	"github.com/veridianlabs/mailward/pkg/slogx"

	_ "github.com/veridianlabs/mailward/api/mailward" // Swagger docs
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
	validate     *validator.Validate

	store        store.Store
	TokenService *service.TokenService

	// Signer and Sender are probed by the readiness endpoint only; the
	// token flows reach them through TokenService and the mailer.
	Signer jwtx.Signer
	Sender mail.Sender
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		validate:     validator.New(),
		store:        st,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerTokens()
	r.registerActions()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Mailward Action Token Service API
//	@version		0.1.0
//	@description	Headless service owning the token leg of email-driven account actions: email confirmation, password reset, invitation acceptance and magic-link sign-in.
//	@description
//	@description				Issuance is service-to-service (bearer JWT); verify and complete are public and driven by the links mailward embeds in its emails. Verify never consumes a token; complete consumes exactly once.
//
//	@contact.name				Veridian Labs Platform Team
//	@contact.url				https://github.com/veridianlabs/mailward
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
//	@description				Service JWT. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerTokens() {
	issueHandler := &IssueHandler{
		TokenService: r.TokenService,
		Validate:     r.validate,
	}

	// POST /v1/tokens - moderate rate limit by caller (service-to-service)
	securedIssue := httpx.Chain(issueHandler,
		httpx.AuthnMiddleware(r.verifier),     // verify JWT (iss/exp)
		httpx.RequireAnyScope("tokens:issue"), // enforce issue scope
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	r.Mux.Handle("POST /v1/tokens", securedIssue)

	// DELETE /v1/tokens - cancellation is a write operation
	cancelHandler := &CancelHandler{TokenService: r.TokenService}
	securedCancel := httpx.Chain(cancelHandler,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("tokens:write"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	r.Mux.Handle("DELETE /v1/tokens", securedCancel)

	// GET /v1/tokens/{email} - read-only slot listing
	listHandler := &ListHandler{TokenService: r.TokenService}
	securedList := httpx.Chain(listHandler,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("tokens:read"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	r.Mux.Handle("GET /v1/tokens/{email}", securedList)
}

func (r *Router) registerActions() {
	verifyHandler := &VerifyHandler{TokenService: r.TokenService}

	// GET /auth/callback - the exact link shape embedded in emails.
	// Non-consuming, so a moderate IP limit is enough; prefetchers and
	// duplicate clicks are expected here.
	verifyChain := httpx.Chain(verifyHandler,
		httpx.RateLimitByIP(httpx.ModerateLimit),
	)
	r.Mux.Handle("GET /auth/callback", verifyChain)

	// GET /v1/verify - same handler under the API-style path
	r.Mux.Handle("GET /v1/verify", verifyChain)

	// POST /v1/complete - strict rate limit by IP (credential guessing)
	completeHandler := &CompleteHandler{
		TokenService: r.TokenService,
		Validate:     r.validate,
	}
	r.Mux.Handle("POST /v1/complete",
		httpx.Chain(completeHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.Signer, r.Sender),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
