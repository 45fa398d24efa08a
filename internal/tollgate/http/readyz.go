package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/store"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/tollgatesdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and status of the database and the key authority
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	tollgatesdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	tollgatesdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	authority *cryptox.KeyAuthority,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &tollgatesdk.HealthChecks{
			Database:     "ok",
			KeyAuthority: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if authority == nil || authority.Bits() < cryptox.MinRSABits {
			checks.KeyAuthority = "error: no key loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := tollgatesdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
