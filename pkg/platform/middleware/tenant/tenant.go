// Package tenant scopes every analytics request to the owning user account.
package tenant

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"qara/pkg/platform/middleware/request"
	"qara/pkg/requestcontext"
)

// Header carries the owning user account id. An upstream gateway authenticates
// the caller and sets it; this service only trusts and scopes by it.
const Header = "X-Tenant-ID"

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireTenant rejects requests without a positive tenant id and injects it into the context.
func RequireTenant(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			raw := strings.TrimSpace(r.Header.Get(Header))
			if raw == "" {
				logger.WarnContext(ctx, "unauthorized access - missing tenant",
					"request_id", request.GetRequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing X-Tenant-ID header")
				return
			}

			tenantID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || tenantID <= 0 {
				logger.WarnContext(ctx, "unauthorized access - invalid tenant",
					"tenant", raw,
					"request_id", request.GetRequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "X-Tenant-ID must be a positive integer")
				return
			}

			ctx = requestcontext.WithTenantID(ctx, tenantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
