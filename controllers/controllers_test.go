package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/l3montree-dev/reviewboard/accesscontrol"
	"github.com/l3montree-dev/reviewboard/dtos"
	"github.com/l3montree-dev/reviewboard/internal/testutils"
	"github.com/l3montree-dev/reviewboard/services"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/l3montree-dev/reviewboard/statemachine"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	store        testutils.Store
	applications *ApplicationController
	reviews      *ReviewController
	users        *UserController
	feed         *FeedController
	export       *ExportController
}

func newTestAPI(t *testing.T) testAPI {
	store := testutils.NewStore(t)
	enforcer, err := accesscontrol.NewCasbinEnforcer()
	require.NoError(t, err)
	guard := accesscontrol.NewRoleAccessGuard(enforcer)
	stateMachine := statemachine.NewApplicationStateMachine(store.Applications, guard)
	applicationService := services.NewApplicationService(store.Applications, stateMachine, guard)

	return testAPI{
		store:        store,
		applications: NewApplicationController(applicationService),
		reviews:      NewReviewController(services.NewReviewService(store.Reviews, store.Applications, stateMachine, guard)),
		users:        NewUserController(services.NewUserService(store.Users, guard), services.NewStatisticsService(store.Applications, store.Users, guard)),
		feed:         NewFeedController(services.NewFeedService(store.Applications, guard)),
		export:       NewExportController(services.NewExportService(store.Applications, store.Users)),
	}
}

func newViewer(role dtos.Role) shared.Viewer {
	return shared.Viewer{UserID: uuid.New(), Role: role, Name: "Test " + string(role)}
}

func newContext(method string, body string, viewer shared.Viewer) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	shared.SetViewer(ctx, viewer)
	return ctx, rec
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

const applicationBody = `{
	"personalInfo": {"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com"},
	"projectDetails": {"title": "Engine", "description": "difference engine", "budget": 500, "objectives": ["compute"]}
}`

func createApplication(t *testing.T, api testAPI, applicant shared.Viewer) dtos.ApplicationDTO {
	t.Helper()
	ctx, rec := newContext(http.MethodPost, applicationBody, applicant)
	require.NoError(t, api.applications.Create(ctx))
	require.Equal(t, 201, rec.Code)

	var application dtos.ApplicationDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &application))
	return application
}

func TestApplicationController(t *testing.T) {
	api := newTestAPI(t)
	applicant := newViewer(dtos.RoleApplicant)
	reviewer := newViewer(dtos.RoleReviewer)
	admin := newViewer(dtos.RoleAdmin)

	application := createApplication(t, api, applicant)
	assert.Equal(t, dtos.StatusPending, application.Status)
	assert.Equal(t, []string{}, application.FileURLs)

	t.Run("should reject invalid applications", func(t *testing.T) {
		ctx, _ := newContext(http.MethodPost, `{"personalInfo": {"email": "not-an-email"}}`, applicant)
		assert.Equal(t, 400, httpCode(t, api.applications.Create(ctx)))
	})

	t.Run("should reject an unknown status filter", func(t *testing.T) {
		ctx, _ := newContext(http.MethodGet, "", admin)
		ctx.QueryParams().Set("status", "archived")
		assert.Equal(t, 400, httpCode(t, api.applications.List(ctx)))
	})

	t.Run("should reject a score of 0 with 400", func(t *testing.T) {
		ctx, _ := newContext(http.MethodPost, `{"score": 0}`, reviewer)
		ctx.SetParamNames("applicationID")
		ctx.SetParamValues(application.ID.String())
		assert.Equal(t, 400, httpCode(t, api.reviews.Create(ctx)))
	})

	t.Run("should answer 404 for reviews of an unknown application", func(t *testing.T) {
		ctx, _ := newContext(http.MethodPost, `{"score": 5}`, reviewer)
		ctx.SetParamNames("applicationID")
		ctx.SetParamValues(uuid.NewString())
		assert.Equal(t, 404, httpCode(t, api.reviews.Create(ctx)))

		ctx, _ = newContext(http.MethodGet, "", reviewer)
		ctx.SetParamNames("applicationID")
		ctx.SetParamValues(uuid.NewString())
		assert.Equal(t, 404, httpCode(t, api.reviews.List(ctx)))
	})

	t.Run("should store a review and move the application into review", func(t *testing.T) {
		ctx, rec := newContext(http.MethodPost, `{"score": 9, "comments": "great", "privateNotes": "fund it"}`, reviewer)
		ctx.SetParamNames("applicationID")
		ctx.SetParamValues(application.ID.String())
		require.NoError(t, api.reviews.Create(ctx))
		assert.Equal(t, 201, rec.Code)

		ctx, rec = newContext(http.MethodGet, "", reviewer)
		ctx.SetParamNames("applicationID")
		ctx.SetParamValues(application.ID.String())
		require.NoError(t, api.applications.Read(ctx))
		var stored dtos.ApplicationDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
		assert.Equal(t, dtos.StatusInReview, stored.Status)

		ctx, rec = newContext(http.MethodGet, "", admin)
		ctx.SetParamNames("applicationID")
		ctx.SetParamValues(application.ID.String())
		require.NoError(t, api.reviews.List(ctx))
		var reviews []dtos.ReviewDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
		require.Len(t, reviews, 1)
		assert.Equal(t, reviewer.Name, reviews[0].ReviewerName)
		assert.Equal(t, reviewer.UserID, reviews[0].ReviewerID)
	})

	t.Run("should map the workflow errors on status changes", func(t *testing.T) {
		change := func(viewer shared.Viewer, status string) error {
			ctx, _ := newContext(http.MethodPut, `{"status": "`+status+`"}`, viewer)
			ctx.SetParamNames("applicationID")
			ctx.SetParamValues(application.ID.String())
			return api.applications.UpdateStatus(ctx)
		}

		assert.Equal(t, 403, httpCode(t, change(applicant, "accepted")))
		assert.Equal(t, 400, httpCode(t, change(admin, "pending")))
		assert.Equal(t, 400, httpCode(t, change(admin, "archived")))
		assert.NoError(t, change(admin, "accepted"))
		assert.Equal(t, 400, httpCode(t, change(admin, "rejected")))
		// decided applications leave the review queue
		assert.Equal(t, 404, httpCode(t, change(reviewer, "rejected")))
	})

	t.Run("should hide applications of others from applicants", func(t *testing.T) {
		ctx, _ := newContext(http.MethodGet, "", newViewer(dtos.RoleApplicant))
		ctx.SetParamNames("applicationID")
		ctx.SetParamValues(application.ID.String())
		assert.Equal(t, 404, httpCode(t, api.applications.Read(ctx)))
	})
}

func TestUserController(t *testing.T) {
	api := newTestAPI(t)
	me := newViewer("")

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	shared.SetViewer(ctx, me)
	shared.SetSession(ctx, accesscontrol.NewSession(me.UserID.String(), "me@example.com", "Me Myself"))

	require.NoError(t, api.users.CreateMe(ctx))
	var profile dtos.UserDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, dtos.RoleApplicant, profile.Role)
	assert.Equal(t, "Me Myself", profile.DisplayName)
	assert.Equal(t, "me@example.com", profile.Email)

	t.Run("only admins may change roles", func(t *testing.T) {
		ctx, _ := newContext(http.MethodPut, `{"role": "admin"}`, newViewer(dtos.RoleReviewer))
		ctx.SetParamNames("userID")
		ctx.SetParamValues(me.UserID.String())
		assert.Equal(t, 403, httpCode(t, api.users.UpdateRole(ctx)))

		ctx, rec := newContext(http.MethodPut, `{"role": "reviewer"}`, newViewer(dtos.RoleAdmin))
		ctx.SetParamNames("userID")
		ctx.SetParamValues(me.UserID.String())
		require.NoError(t, api.users.UpdateRole(ctx))
		var updated dtos.UserDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, dtos.RoleReviewer, updated.Role)
	})

	t.Run("should return 404 for unknown users", func(t *testing.T) {
		ctx, _ := newContext(http.MethodPut, `{"role": "reviewer"}`, newViewer(dtos.RoleAdmin))
		ctx.SetParamNames("userID")
		ctx.SetParamValues(uuid.NewString())
		assert.Equal(t, 404, httpCode(t, api.users.UpdateRole(ctx)))
	})

	t.Run("should count users per role", func(t *testing.T) {
		ctx, rec := newContext(http.MethodGet, "", newViewer(dtos.RoleAdmin))
		require.NoError(t, api.users.Stats(ctx))
		var stats dtos.UserStats
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
		assert.Equal(t, dtos.UserStats{TotalUsers: 1, Reviewers: 1}, stats)
	})
}

func TestExportController(t *testing.T) {
	api := newTestAPI(t)
	createApplication(t, api, newViewer(dtos.RoleApplicant))

	ctx, rec := newContext(http.MethodGet, "", newViewer(dtos.RoleAdmin))
	require.NoError(t, api.export.Export(ctx))

	assert.Regexp(t, `^attachment; filename="application-data-\d{4}-\d{2}-\d{2}\.json"$`, rec.Header().Get("Content-Disposition"))
	var document dtos.ExportDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &document))
	assert.Len(t, document.Applications, 1)
	assert.Equal(t, 1, document.Stats.Pending)
}

func dialFeed(t *testing.T, api testAPI, viewer shared.Viewer) *websocket.Conn {
	e := echo.New()
	e.GET("/feed/", func(ctx echo.Context) error {
		shared.SetViewer(ctx, viewer)
		return api.feed.Stream(ctx)
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/feed/", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readSnapshot(t *testing.T, conn *websocket.Conn) dtos.FeedSnapshotDTO {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var snapshot dtos.FeedSnapshotDTO
	require.NoError(t, conn.ReadJSON(&snapshot))
	return snapshot
}

func TestFeedController(t *testing.T) {
	api := newTestAPI(t)
	conn := dialFeed(t, api, newViewer(dtos.RoleAdmin))
	read := func() dtos.FeedSnapshotDTO { return readSnapshot(t, conn) }

	initial := read()
	assert.Empty(t, initial.Applications)
	assert.Empty(t, initial.Error)

	created := createApplication(t, api, newViewer(dtos.RoleApplicant))

	snapshot := read()
	for len(snapshot.Applications) == 0 {
		snapshot = read()
	}
	require.Len(t, snapshot.Applications, 1)
	assert.Equal(t, created.ID, snapshot.Applications[0].ID)
	assert.Equal(t, 1, snapshot.Stats.TotalApplications)
}

func TestFeedControllerUpstreamEnded(t *testing.T) {
	t.Run("should send a final snapshot and close with 1011 when the store stops notifying", func(t *testing.T) {
		api := newTestAPI(t)
		conn := dialFeed(t, api, newViewer(dtos.RoleAdmin))

		initial := readSnapshot(t, conn)
		assert.Empty(t, initial.Error)

		require.NoError(t, api.store.Broker.Close())

		snapshot := readSnapshot(t, conn)
		for !snapshot.Final {
			snapshot = readSnapshot(t, conn)
		}
		assert.NotEmpty(t, snapshot.Error)
		assert.Empty(t, snapshot.Applications)

		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		_, _, err := conn.ReadMessage()
		assert.True(t, websocket.IsCloseError(err, websocket.CloseInternalServerErr))
	})
}

func TestFeedControllerRejectsUnknownRoles(t *testing.T) {
	api := newTestAPI(t)
	ctx, _ := newContext(http.MethodGet, "", newViewer("guest"))
	assert.Equal(t, 403, httpCode(t, api.feed.Stream(ctx)))
}
