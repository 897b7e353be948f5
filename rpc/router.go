package rpc

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RouterConfig tunes the HTTP surface NewRouter builds.
type RouterConfig struct {
	// RateLimitPerSecond and RateLimitBurst bound how many mutating
	// requests (fund/delegate/deactivate/withdraw/redeem, voter
	// registration and crediting, epoch advance, archive flush) a single
	// caller may issue; zero disables the limiter.
	RateLimitPerSecond float64
	RateLimitBurst     int

	// Auth gates every mutating route behind a bearer JWT; the zero value
	// (Auth.Enabled == false) leaves them open, matching the teacher's
	// Authenticator default for deployments that terminate auth upstream.
	Auth AuthConfig
}

// NewRouter builds the chi router exposing s's account operations, history
// queries, and the event websocket stream over HTTP, in the shape of the
// teacher's gateway/routes router: request-ID and otelhttp middleware first
// (they wrap every route), then the health check, then the routed surface.
func NewRouter(s *Service, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(otelhttp.NewMiddleware("stakeengine"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/stream", s.handleEventStream)

	mutating := chi.Middlewares{}
	if cfg.Auth.Enabled {
		auth := newAuthenticator(cfg.Auth)
		mutating = append(mutating, auth.Middleware)
	}
	if cfg.RateLimitPerSecond > 0 {
		limiter := newRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
		mutating = append(mutating, limiter.Middleware)
	}

	r.Route("/accounts/{key}", func(ar chi.Router) {
		ar.Get("/", s.handleGetAccount)
		ar.With(mutating...).Post("/fund", s.handleFund)
		ar.With(mutating...).Post("/delegate", s.handleDelegate)
		ar.With(mutating...).Post("/deactivate", s.handleDeactivate)
		ar.With(mutating...).Post("/withdraw", s.handleWithdraw)
		ar.With(mutating...).Post("/redeem", s.handleRedeem)
	})

	r.Route("/voters", func(vr chi.Router) {
		vr.With(mutating...).Post("/", s.handleRegisterVoter)
		vr.With(mutating...).Post("/{pubkey}/credit", s.handleCreditVote)
	})

	r.Route("/epoch", func(er chi.Router) {
		er.With(mutating...).Post("/advance", s.handleAdvanceEpoch)
		er.Get("/{epoch}", s.handleGetHistory)
	})

	r.With(mutating...).Post("/archive/flush", s.handleFlushArchive)

	return r
}
