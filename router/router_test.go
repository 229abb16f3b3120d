package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/reviewboard/accesscontrol"
	"github.com/l3montree-dev/reviewboard/controllers"
	"github.com/l3montree-dev/reviewboard/internal/testutils"
	"github.com/l3montree-dev/reviewboard/middlewares"
	"github.com/l3montree-dev/reviewboard/mocks"
	"github.com/l3montree-dev/reviewboard/services"
	"github.com/l3montree-dev/reviewboard/statemachine"
	"github.com/labstack/echo/v4"
	client "github.com/ory/client-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, identityID string) *echo.Echo {
	store := testutils.NewStore(t)
	enforcer, err := accesscontrol.NewCasbinEnforcer()
	require.NoError(t, err)
	guard := accesscontrol.NewRoleAccessGuard(enforcer)
	stateMachine := statemachine.NewApplicationStateMachine(store.Applications, guard)
	applicationService := services.NewApplicationService(store.Applications, stateMachine, guard)
	userService := services.NewUserService(store.Users, guard)
	statisticsService := services.NewStatisticsService(store.Applications, store.Users, guard)

	adminClient := mocks.NewAdminClient(t)
	adminClient.On("GetIdentityFromCookie", mock.Anything, mock.Anything).Return(client.Identity{
		Id:     identityID,
		Traits: map[string]any{"email": "ada@example.com", "name": map[string]any{"first": "Ada", "last": "Lovelace"}},
	}, nil).Maybe()

	e := middlewares.Server()
	apiV1 := NewAPIV1Router(e, store.DB, nil)
	session := NewSessionRouter(apiV1, adminClient, userService)
	NewApplicationRouter(session, enforcer,
		controllers.NewApplicationController(applicationService),
		controllers.NewReviewController(services.NewReviewService(store.Reviews, store.Applications, stateMachine, guard)),
		controllers.NewFeedController(services.NewFeedService(store.Applications, guard)),
		controllers.NewStatisticsController(statisticsService),
		controllers.NewFileController(nil),
	)
	NewUserRouter(session, enforcer,
		controllers.NewUserController(userService, statisticsService),
		controllers.NewExportController(services.NewExportService(store.Applications, store.Users)),
	)
	return e
}

func do(e *echo.Echo, method, path, body string, withCookie bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if withCookie {
		req.AddCookie(&http.Cookie{Name: "ory_kratos_session", Value: "cookie"})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const applicationBody = `{
	"personalInfo": {"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com"},
	"projectDetails": {"title": "Engine", "description": "difference engine"}
}`

func TestRoutes(t *testing.T) {
	e := newTestServer(t, uuid.NewString())

	t.Run("health works with and without trailing slash", func(t *testing.T) {
		assert.Equal(t, 200, do(e, http.MethodGet, "/api/v1/health/", "", false).Code)
		assert.Equal(t, 200, do(e, http.MethodGet, "/api/v1/health", "", false).Code)
	})

	t.Run("metrics are exposed", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/api/v1/metrics/", "", false)
		assert.Equal(t, 200, rec.Code)
		assert.Contains(t, rec.Body.String(), "go_goroutines")
	})

	t.Run("session routes need a session", func(t *testing.T) {
		assert.Equal(t, 401, do(e, http.MethodGet, "/api/v1/applications/", "", false).Code)
	})

	t.Run("users without profile can not submit", func(t *testing.T) {
		assert.Equal(t, 403, do(e, http.MethodPost, "/api/v1/applications/", applicationBody, true).Code)
		assert.Equal(t, 404, do(e, http.MethodGet, "/api/v1/users/me/", "", true).Code)
	})

	t.Run("first login creates an applicant profile", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/v1/users/me/", `{}`, true)
		require.Equal(t, 200, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"applicant"`)
		assert.Contains(t, rec.Body.String(), `"name":"Ada Lovelace"`)
	})

	t.Run("applicants can submit and list their applications", func(t *testing.T) {
		assert.Equal(t, 201, do(e, http.MethodPost, "/api/v1/applications/", applicationBody, true).Code)

		rec := do(e, http.MethodGet, "/api/v1/applications/", "", true)
		require.Equal(t, 200, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"pending"`)

		rec = do(e, http.MethodGet, "/api/v1/statistics/", "", true)
		require.Equal(t, 200, rec.Code)
		assert.Contains(t, rec.Body.String(), `"pendingApplications":1`)
	})

	t.Run("applicants can not use admin routes", func(t *testing.T) {
		assert.Equal(t, 403, do(e, http.MethodGet, "/api/v1/users/", "", true).Code)
		assert.Equal(t, 403, do(e, http.MethodGet, "/api/v1/export/", "", true).Code)
		assert.Equal(t, 403, do(e, http.MethodPut, "/api/v1/users/"+uuid.NewString()+"/role/", `{"role":"admin"}`, true).Code)
	})
}
