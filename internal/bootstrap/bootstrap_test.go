package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursewindow/internal/app/models/dto"
	"github.com/yigit/coursewindow/internal/config"
	pkgAuth "github.com/yigit/coursewindow/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

// Monday 2025-01-06, inside and outside the 07:00 batch in UTC
var (
	openAt   = time.Date(2025, time.January, 6, 7, 10, 0, 0, time.UTC)
	closedAt = time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)
)

type envelope struct {
	Success    bool                `json:"success"`
	Data       json.RawMessage     `json:"data"`
	Pagination *dto.PaginationInfo `json:"pagination"`
	Error      *dto.ErrorDetail    `json:"error"`
}

type apiClient struct {
	t       *testing.T
	handler http.Handler
	token   string
	now     time.Time
}

func (c *apiClient) do(method, target string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "" && bytes.HasPrefix(w.Body.Bytes(), []byte("{")) {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "development"
	cfg.Server.AllowedOrigins = []string{"*"}
	cfg.Database.Driver = config.DriverMemory
	cfg.JWT.Secret = "bootstrap-test-secret"
	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.Issuer = "coursewindow-test"
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "s3cret-pass"
	cfg.Schedule.DefaultTimezone = "UTC"
	return cfg
}

func newTestAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	lgr := zerolog.Nop()
	api := &apiClient{t: t, now: closedAt}

	repos, database, err := SetupRepositories(context.Background(), cfg, lgr)
	require.NoError(t, err)
	assert.Nil(t, database)

	deps, err := BuildDependencies(cfg, repos, lgr)
	require.NoError(t, err)
	assert.Nil(t, deps.Monitor)
	deps.Clock = func() time.Time { return api.now }

	api.handler, err = SetupRouter(cfg, deps, lgr)
	require.NoError(t, err)
	return api
}

func (c *apiClient) login() {
	c.t.Helper()
	w, env := c.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "admin", Password: "s3cret-pass"})
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())

	var tok dto.TokenResponse
	require.NoError(c.t, json.Unmarshal(env.Data, &tok))
	require.NotEmpty(c.t, tok.AccessToken)
	c.token = tok.AccessToken
}

func (c *apiClient) createCourse() string {
	c.t.Helper()
	req := dto.CourseRequest{
		Title:     "Morning Energizing Flow",
		VideoID:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Duration:  60,
		Languages: []string{"hindi", "en"},
		TimeSlots: []dto.BatchRequest{
			{BatchName: "Morning", Time: "07:00", Days: []string{"Monday", "Wednesday"}},
			{BatchName: "Evening", Time: "18:00", Days: []string{"friday"}},
		},
	}
	w, env := c.do(http.MethodPost, "/api/v1/admin/courses", req)
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID      string `json:"id"`
		VideoID string `json:"videoId"`
		Status  string `json:"status"`
	}
	require.NoError(c.t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(c.t, created.ID)
	assert.Equal(c.t, "dQw4w9WgXcQ", created.VideoID)
	assert.Equal(c.t, "active", created.Status)
	return created.ID
}

func TestAPI_Health(t *testing.T) {
	api := newTestAPI(t)
	w, env := api.do(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, env = api.do(http.MethodGet, "/api/v1/languages", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "hindi")
}

func TestAPI_AdminRequiresToken(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(http.MethodGet, "/api/v1/admin/courses", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrorCodeUnauthorized, env.Error.Code)

	w, env = api.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrorCodeInvalidCredentials, env.Error.Code)
}

func TestAPI_CourseLifecycle(t *testing.T) {
	api := newTestAPI(t)
	api.login()
	id := api.createCourse()

	t.Run("open batch exposes the video", func(t *testing.T) {
		api.now = openAt
		w, env := api.do(http.MethodGet, "/api/v1/courses/"+id+"?tz=UTC", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var detail dto.CourseDetailResponse
		require.NoError(t, json.Unmarshal(env.Data, &detail))
		assert.False(t, detail.Locked)
		assert.Equal(t, "dQw4w9WgXcQ", detail.VideoID)
		assert.Equal(t, "Morning", detail.SelectedBatch)
		assert.Equal(t, "UTC", detail.Timezone)
	})

	t.Run("closed batch hides the video", func(t *testing.T) {
		api.now = closedAt
		w, env := api.do(http.MethodGet, "/api/v1/courses/"+id+"?tz=UTC", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var detail dto.CourseDetailResponse
		require.NoError(t, json.Unmarshal(env.Data, &detail))
		assert.True(t, detail.Locked)
		assert.Empty(t, detail.VideoID)
		assert.NotEmpty(t, detail.NextSchedule)
	})

	t.Run("viewer timezone shifts the window", func(t *testing.T) {
		// 01:40 UTC is 07:10 in Kolkata
		api.now = time.Date(2025, time.January, 6, 1, 40, 0, 0, time.UTC)
		w, env := api.do(http.MethodGet, "/api/v1/courses/"+id+"/availability?tz=Asia/Kolkata", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var avail dto.AvailabilityResponse
		require.NoError(t, json.Unmarshal(env.Data, &avail))
		assert.True(t, avail.Accessible)
		assert.Equal(t, "Asia/Kolkata", avail.Timezone)
	})

	t.Run("list filters by language", func(t *testing.T) {
		api.now = openAt
		w, env := api.do(http.MethodGet, "/api/v1/courses?language=hi", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var list dto.CourseListResponse
		require.NoError(t, json.Unmarshal(env.Data, &list))
		require.Len(t, list.Courses, 1)
		assert.Equal(t, []string{"Morning"}, list.Courses[0].AccessibleBatches)
		require.NotNil(t, env.Pagination)
		assert.EqualValues(t, 1, env.Pagination.TotalItems)

		w, env = api.do(http.MethodGet, "/api/v1/courses?language=klingon", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
	})

	t.Run("views are counted only while open", func(t *testing.T) {
		api.now = closedAt
		w, env := api.do(http.MethodPost, "/api/v1/courses/"+id+"/views?tz=UTC", dto.RecordViewRequest{BatchName: "Morning"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrorCodeCourseLocked, env.Error.Code)

		api.now = openAt
		w, env = api.do(http.MethodPost, "/api/v1/courses/"+id+"/views?tz=UTC", dto.RecordViewRequest{BatchName: "Morning"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var view dto.RecordViewResponse
		require.NoError(t, json.Unmarshal(env.Data, &view))
		assert.EqualValues(t, 1, view.Views)

		w, env = api.do(http.MethodGet, "/api/v1/admin/courses/"+id+"/stats", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var stats dto.CourseStatsResponse
		require.NoError(t, json.Unmarshal(env.Data, &stats))
		assert.EqualValues(t, 1, stats.TotalViews)
	})

	t.Run("calendar feed", func(t *testing.T) {
		w, _ := api.do(http.MethodGet, "/api/v1/courses/"+id+"/calendar.ics", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/calendar; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "RRULE:FREQ=WEEKLY;BYDAY=MO,WE")
	})

	t.Run("inactive courses are hidden from viewers", func(t *testing.T) {
		w, _ := api.do(http.MethodPatch, "/api/v1/admin/courses/"+id+"/status", dto.UpdateStatusRequest{Status: "inactive"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w, _ = api.do(http.MethodGet, "/api/v1/courses/"+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w, env := api.do(http.MethodGet, "/api/v1/admin/courses", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list dto.CourseListResponse
		require.NoError(t, json.Unmarshal(env.Data, &list))
		assert.Len(t, list.Courses, 1)
	})

	t.Run("delete", func(t *testing.T) {
		w, _ := api.do(http.MethodDelete, "/api/v1/admin/courses/"+id, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, _ = api.do(http.MethodGet, "/api/v1/admin/courses/"+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAPI_PublicRoutesRejectClockOverride(t *testing.T) {
	api := newTestAPI(t)
	api.login()
	id := api.createCourse()
	admin := api.token
	api.token = ""
	api.now = closedAt

	const forged = "?tz=UTC&at=2025-01-06T07:10:00Z"
	targets := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodGet, "/api/v1/courses" + forged, nil},
		{http.MethodGet, "/api/v1/courses/" + id + forged, nil},
		{http.MethodGet, "/api/v1/courses/" + id + "/availability" + forged, nil},
		{http.MethodPost, "/api/v1/courses/" + id + "/views" + forged, dto.RecordViewRequest{BatchName: "Morning"}},
	}
	for _, tt := range targets {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w, env := api.do(tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, "at", env.Error.Field)
			assert.NotContains(t, w.Body.String(), "dQw4w9WgXcQ")
		})
	}

	api.token = admin
	w, env := api.do(http.MethodGet, "/api/v1/admin/courses/"+id+"/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats dto.CourseStatsResponse
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Zero(t, stats.TotalViews)
}

func TestAPI_AdminPreview(t *testing.T) {
	api := newTestAPI(t)
	api.login()
	id := api.createCourse()
	api.now = closedAt

	w, env := api.do(http.MethodGet, "/api/v1/admin/courses/"+id+"/preview?tz=UTC&at=2025-01-06T07:10:00Z", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var detail dto.CourseDetailResponse
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.False(t, detail.Locked)
	assert.Equal(t, "dQw4w9WgXcQ", detail.VideoID)

	w, env = api.do(http.MethodGet, "/api/v1/admin/courses?tz=UTC&at=2025-01-06T07:10:00Z", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.CourseListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Courses, 1)
	assert.True(t, list.Courses[0].Accessible)

	w, _ = api.do(http.MethodGet, "/api/v1/admin/courses/"+id+"/preview?at=soon", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	api.token = ""
	w, _ = api.do(http.MethodGet, "/api/v1/admin/courses/"+id+"/preview?at=2025-01-06T07:10:00Z", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPI_CreateCourseValidation(t *testing.T) {
	api := newTestAPI(t)
	api.login()

	tests := []struct {
		name string
		req  dto.CourseRequest
	}{
		{
			name: "bad time",
			req: dto.CourseRequest{Title: "Flow", VideoID: "dQw4w9WgXcQ", Duration: 30, Languages: []string{"english"},
				TimeSlots: []dto.BatchRequest{{Time: "7am", Days: []string{"Monday"}}}},
		},
		{
			name: "bad weekday",
			req: dto.CourseRequest{Title: "Flow", VideoID: "dQw4w9WgXcQ", Duration: 30, Languages: []string{"english"},
				TimeSlots: []dto.BatchRequest{{Time: "07:00", Days: []string{"Funday"}}}},
		},
		{
			name: "duplicate batch names",
			req: dto.CourseRequest{Title: "Flow", VideoID: "dQw4w9WgXcQ", Duration: 30, Languages: []string{"english"},
				TimeSlots: []dto.BatchRequest{
					{BatchName: "Morning", Time: "07:00", Days: []string{"Monday"}},
					{BatchName: "morning", Time: "08:00", Days: []string{"Tuesday"}},
				}},
		},
		{
			name: "bad video reference",
			req: dto.CourseRequest{Title: "Flow", VideoID: "https://example.com/video", Duration: 30, Languages: []string{"english"},
				TimeSlots: []dto.BatchRequest{{Time: "07:00", Days: []string{"Monday"}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := api.do(http.MethodPost, "/api/v1/admin/courses", tt.req)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			require.NotNil(t, env.Error)
			assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)
		})
	}
}

func TestAPI_LiveMonitor(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	cfg.Database.Seed = true
	cfg.Monitor.Enabled = true
	cfg.Monitor.Interval = "1m"
	cfg.Monitor.Timezone = "Asia/Kolkata"
	lgr := zerolog.Nop()

	repos, _, err := SetupRepositories(context.Background(), cfg, lgr)
	require.NoError(t, err)
	count, err := repos.CourseRepository.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	deps, err := BuildDependencies(cfg, repos, lgr)
	require.NoError(t, err)
	require.NotNil(t, deps.Monitor)
	require.NotNil(t, deps.LiveHub)
	require.NotNil(t, deps.LiveStreamHandler)

	handler, err := SetupRouter(cfg, deps, lgr)
	require.NoError(t, err)

	api := &apiClient{t: t, handler: handler}
	api.login()

	w, env := api.do(http.MethodGet, "/api/v1/admin/live", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var live dto.LiveSnapshotResponse
	require.NoError(t, json.Unmarshal(env.Data, &live))
	assert.Equal(t, "Asia/Kolkata", live.Timezone)
	assert.NotNil(t, live.Courses)
}

func TestBuildDependencies_AdminHash(t *testing.T) {
	cfg := testConfig()
	cfg.Admin.Password = ""
	cfg.Admin.PasswordHash = "plain-text-by-mistake"

	_, err := BuildDependencies(cfg, nil, zerolog.Nop())
	assert.Error(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), pkgAuth.MinAdminHashCost)
	require.NoError(t, err)
	cfg.Admin.PasswordHash = string(hash)

	creds, err := adminCredentials(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, string(hash), creds.PasswordHash)
}

func TestBuildDependencies_InvalidTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Schedule.DefaultTimezone = "Not/AZone"

	_, err := BuildDependencies(cfg, nil, zerolog.Nop())
	assert.Error(t, err)
}
