package http

import (
	"net/http"
	"time"

	"github.com/veridianlabs/mailward/internal/mailward/mail"
	"github.com/veridianlabs/mailward/internal/mailward/store"
	"github.com/veridianlabs/mailward/pkg/httpx"
	"github.com/veridianlabs/mailward/pkg/jwtx"
	"github.com/veridianlabs/mailward/pkg/mailwardsdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and status of the store, session signer and mail backend
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	mailwardsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	mailwardsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	signer jwtx.Signer,
	sender mail.Sender,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &mailwardsdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
			Mailer:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// Check store connectivity
		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// Check the session signer is configured (magic_link needs it)
		if signer == nil {
			checks.Signer = "error: not configured"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		} else if err := signer.Validate(); err != nil {
			checks.Signer = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// Check a mail backend is configured
		if sender == nil {
			checks.Mailer = "error: not configured"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := mailwardsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
