package routes

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"event-rental/internal/authz"
	"event-rental/internal/controllers"
	"event-rental/internal/dto"
	"event-rental/internal/entities"
	"event-rental/internal/graph"
	"event-rental/internal/services"
	apperrors "event-rental/pkg/errors"
	"event-rental/pkg/metrics"
	"event-rental/pkg/service"
	"event-rental/pkg/types"
)

type stubPrincipals map[uint64]*authz.Principal

func (s stubPrincipals) Load(ctx context.Context, employeeID uint64) (*authz.Principal, error) {
	p, ok := s[employeeID]
	if !ok || !p.IsActive {
		return nil, apperrors.ErrUnauthorized
	}
	return p, nil
}

func (s stubPrincipals) Invalidate(ctx context.Context, employeeID uint64) {}

type stubVenues struct {
	services.VenueServiceInterface
	created int
}

func (s *stubVenues) GetVenues(ctx context.Context, filter types.Filter) (*dto.PaginatedResponse[dto.VenueDTO], error) {
	return &dto.PaginatedResponse[dto.VenueDTO]{List: []dto.VenueDTO{{ID: 1, Name: "Hall"}}, Total: 1}, nil
}

func (s *stubVenues) CreateVenue(ctx context.Context, payload []byte) (*dto.VenueDTO, error) {
	s.created++
	return &dto.VenueDTO{ID: 2, Name: "Barn"}, nil
}

func (s *stubVenues) UpdateVenue(ctx context.Context, id uint64, payload []byte, mode graph.Mode) (*dto.VenueDTO, error) {
	return nil, apperrors.ErrNotFound
}

type RouterTestSuite struct {
	suite.Suite
	e      *echo.Echo
	jwt    service.JWTService
	venues *stubVenues
	redis  error
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	s.jwt = service.NewJWTService("router-secret", time.Hour, time.Hour, zap.NewNop())
	s.venues = &stubVenues{}
	s.redis = nil

	m, err := metrics.NewMetrics()
	s.Require().NoError(err)

	svc := &Services{
		Principals: stubPrincipals{
			1: {EmployeeID: 1, Username: "seller", Role: entities.RoleSales, IsActive: true},
			2: {EmployeeID: 2, Username: "techie", Role: entities.RoleTech, IsActive: true},
		},
		Venues: s.venues,
	}
	health := map[string]controllers.Pinger{
		"postgres": controllers.PingFunc(func(ctx context.Context) error { return nil }),
		"redis":    controllers.PingFunc(func(ctx context.Context) error { return s.redis }),
	}

	s.e = echo.New()
	InitRouter(s.e, svc, s.jwt, m, health, "", zap.NewNop())
}

func (s *RouterTestSuite) token(id uint64, username string, role entities.Role) string {
	access, _, err := s.jwt.GenerateTokens(id, username, string(role))
	require.NoError(s.T(), err)
	return "Bearer " + access
}

func (s *RouterTestSuite) do(method, path, auth string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) TestUnauthenticatedRequestsAreRejected() {
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/venue/", "", nil).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/user/me/", "", nil).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/inventory/equipment/export/", "", nil).Code)
}

func (s *RouterTestSuite) TestBothSlashFormsAreRouted() {
	auth := s.token(2, "techie", entities.RoleTech)

	for _, path := range []string{"/api/venue", "/api/venue/"} {
		rec := s.do(http.MethodGet, path, auth, nil)
		s.Equal(http.StatusOK, rec.Code, path)
		s.Contains(rec.Body.String(), `"Hall"`)
	}
}

func (s *RouterTestSuite) TestWriteNeedsRole() {
	rec := s.do(http.MethodPost, "/api/venue/", s.token(2, "techie", entities.RoleTech), strings.NewReader(`{"name":"Barn"}`))
	s.Equal(http.StatusForbidden, rec.Code)
	s.Zero(s.venues.created)

	rec = s.do(http.MethodPost, "/api/venue/", s.token(1, "seller", entities.RoleSales), strings.NewReader(`{"name":"Barn"}`))
	s.Equal(http.StatusCreated, rec.Code)
	s.Equal(1, s.venues.created)
}

func (s *RouterTestSuite) TestDetailRoutesReachHandlers() {
	auth := s.token(1, "seller", entities.RoleSales)

	s.Equal(http.StatusNotFound, s.do(http.MethodPatch, "/api/venue/7/", auth, strings.NewReader(`{}`)).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodPut, "/api/venue/7", auth, strings.NewReader(`{}`)).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/venue/abc/", auth, nil).Code)
}

func (s *RouterTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/api/health", "", nil)
	s.Equal(http.StatusOK, rec.Code)

	s.redis = errors.New("connection refused")
	rec = s.do(http.MethodGet, "/api/health", "", nil)
	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.Contains(rec.Body.String(), `"redis":"down"`)
	s.Contains(rec.Body.String(), `"postgres":"up"`)
}

func (s *RouterTestSuite) TestUnknownRouteUsesEnvelope() {
	rec := s.do(http.MethodGet, "/nowhere", "", nil)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), `"status":false`)
}

func (s *RouterTestSuite) TestMetricsEndpointIsPublic() {
	rec := s.do(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "go_goroutines")
}
