package testutil

import (
	"net/http"
	"strconv"

	"qara/pkg/platform/middleware/tenant"
)

// TenantHeader is the header the tenant middleware reads the owning user id from.
const TenantHeader = tenant.Header

// WithTenant sets the tenant header on the request, as the upstream gateway would.
func WithTenant(req *http.Request, tenantID int64) *http.Request {
	req.Header.Set(TenantHeader, strconv.FormatInt(tenantID, 10))
	return req
}
