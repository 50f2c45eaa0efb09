package handler

//go:generate mockgen -source=handler.go -destination=mocks/analytics-mocks.go -package=mocks Service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"qara/internal/compliance/handler/mocks"
	"qara/internal/compliance/models"
	dErrors "qara/pkg/domain-errors"
	"qara/pkg/platform/sentinel"
	"qara/pkg/testutil"
)

// =============================================================================
// Analytics Handler Test Suite
// =============================================================================
// Justification for unit tests: the handler owns query parsing, tenant
// extraction and the mapping of coded errors to HTTP statuses. The service is
// mocked so each test pins exactly what reaches it.

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)), nil).Register(s.router)
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) get(path string, tenantID int64) *http.Request {
	req := testutil.NewRequest(s.T(), http.MethodGet, path)
	if tenantID != 0 {
		testutil.WithTenant(req, tenantID)
	}
	return req
}

// =============================================================================
// Tenant Tests
// =============================================================================

func (s *HandlerSuite) TestRequiresTenant() {
	s.Run("missing header", func() {
		rr := testutil.DoRequest(s.router, s.get("/analytics/summary", 0))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("non numeric header", func() {
		req := s.get("/analytics/summary", 0)
		req.Header.Set(testutil.TenantHeader, "acme")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	})
}

// =============================================================================
// Query Parsing Tests
// =============================================================================

func (s *HandlerSuite) TestCriteriaParsing() {
	s.Run("every filter reaches the service", func() {
		s.service.EXPECT().Summary(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c models.FilterCriteria) (models.Summary, error) {
				s.Equal(int64(9), c.TenantID)
				s.Require().NotNil(c.SiteID)
				s.Equal(int64(4), *c.SiteID)
				s.Equal("closed", c.AuditStatus)
				s.Equal("high", c.Criticality)
				s.Equal("importer", c.EconomicRole)
				s.Equal([]int64{1, 3}, c.ReferentialIDs)
				s.Require().NotNil(c.Period)
				s.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), c.Period.Start)
				s.Equal(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), c.Period.End)
				return models.Summary{}, nil
			})

		path := "/analytics/summary?siteId=4&auditStatus=closed&criticality=high&economicRole=importer" +
			"&referentialIds=1,%203,&start=2025-01-01&end=2025-06-30"
		rr := testutil.DoRequest(s.router, s.get(path, 9))
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("siteId=all means no site filter", func() {
		s.service.EXPECT().Radar(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c models.FilterCriteria) (models.Radar, error) {
				s.Nil(c.SiteID)
				s.Nil(c.Period)
				return models.Radar{}, nil
			})
		rr := testutil.DoRequest(s.router, s.get("/analytics/radar?siteId=all", 1))
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("malformed values are bad requests", func() {
		for _, path := range []string{
			"/analytics/funnel?siteId=abc",
			"/analytics/funnel?start=01/02/2025",
			"/analytics/funnel?referentialIds=1,x",
			"/analytics/drilldown/findings?page=two",
			"/analytics/drilldown/findings?processId=p1",
		} {
			rr := testutil.DoRequest(s.router, s.get(path, 1))
			testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
		}
	})

	s.Run("timeseries granularity", func() {
		s.service.EXPECT().Timeseries(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req models.TimeseriesRequest) (models.Timeseries, error) {
				s.Equal(models.Granularity("week"), req.Granularity)
				return models.Timeseries{Granularity: models.GranularityWeek}, nil
			})
		rr := testutil.DoRequest(s.router, s.get("/analytics/timeseries?granularity=week", 1))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "granularity", "week")
	})

	s.Run("drilldown kind and paging", func() {
		s.service.EXPECT().Drilldown(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req models.DrilldownRequest) (*models.DrilldownResult, error) {
				s.Equal(models.DrilldownActions, req.Kind)
				s.Equal(2, req.Page)
				s.Equal(10, req.PageSize)
				s.Equal("dueDate", req.SortBy)
				s.Equal("desc", req.SortDir)
				s.Equal("high", req.Priority)
				return &models.DrilldownResult{Kind: req.Kind, Page: models.Page[any]{Data: []any{}, Page: 2, PageSize: 10}}, nil
			})
		rr := testutil.DoRequest(s.router,
			s.get("/analytics/drilldown/actions?page=2&pageSize=10&sortBy=dueDate&sortDir=desc&priority=high", 1))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "kind", "actions")
	})
}

// =============================================================================
// Error Mapping Tests
// =============================================================================

func (s *HandlerSuite) TestErrorMapping() {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", dErrors.New(dErrors.CodeValidation, "invalid criticality"), http.StatusBadRequest, "validation_error"},
		{"unavailable", dErrors.Wrap(fmt.Errorf("list audits: %w", sentinel.ErrUnavailable), dErrors.CodeUnavailable, "analytics store unavailable"),
			http.StatusServiceUnavailable, "unavailable"},
		{"internal", dErrors.Wrap(errors.New("boom"), dErrors.CodeInternal, "failed to load audits"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.service.EXPECT().Scores(gomock.Any(), gomock.Any()).Return(nil, tt.err)
			rr := testutil.DoRequest(s.router, s.get("/analytics/scores", 1))
			testutil.AssertStatusAndError(s.T(), rr, tt.status, tt.code)
		})
	}
}
