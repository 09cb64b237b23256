package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/job"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/schedule"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/user"
	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-for-jwt"

// fakeJobService records the requests it receives so tests can assert the
// handler resolved the actor from the token correctly.
type fakeJobService struct {
	startReq  *job.StartJobRequest
	startResp job.JobResponse
	startErr  error
}

func (f *fakeJobService) GetJob(_ context.Context, id string) (job.JobResponse, error) {
	if id == "missing" {
		return job.JobResponse{}, job.ErrJobNotFound
	}
	return job.JobResponse{ID: id, Status: string(job.StatusScheduled)}, nil
}

func (f *fakeJobService) ListJobs(_ context.Context, _ job.JobFilter) (job.ListJobsResponse, error) {
	return job.ListJobsResponse{Jobs: []job.JobResponse{}}, nil
}

func (f *fakeJobService) StartJob(_ context.Context, req job.StartJobRequest) (job.JobResponse, error) {
	f.startReq = &req
	return f.startResp, f.startErr
}

func (f *fakeJobService) CompleteJob(_ context.Context, req job.CompleteJobRequest) (job.JobResponse, error) {
	return job.JobResponse{ID: req.ID, Status: string(job.StatusCompleted)}, nil
}

func (f *fakeJobService) CancelJob(_ context.Context, req job.CancelJobRequest) (job.JobResponse, error) {
	return job.JobResponse{ID: req.ID, Status: string(job.StatusCanceled)}, nil
}

func (f *fakeJobService) AssignJob(_ context.Context, req job.AssignJobRequest) (job.JobResponse, error) {
	return job.JobResponse{ID: req.ID}, nil
}

type routerFixture struct {
	router     http.Handler
	jwtService jwt.Service
	jobSvc     *fakeJobService
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	jwtService := jwt.NewJWTService(testJWTSecret, "1h")
	jobSvc := &fakeJobService{}

	router := NewRouter(
		jwtService,
		NewAccountHandler(nil),
		NewFacilityHandler(nil),
		NewContractHandler(nil, nil),
		NewJobHandler(jobSvc),
		NewTimeClockHandler(nil),
	)

	return &routerFixture{router: router, jwtService: jwtService, jobSvc: jobSvc}
}

func (f *routerFixture) token(t *testing.T, userID string, role user.Role) string {
	t.Helper()
	token, _, err := f.jwtService.GenerateAccessToken(userID, userID+"@example.com", role)
	require.NoError(t, err)
	return token
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestJobRoutes_RequireAuth(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/jobs/job-1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetJob(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(t, "cleaner-1", user.RoleCleaner)

	rec := f.do(t, http.MethodGet, "/api/v1/jobs/job-1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool            `json:"success"`
		Data    job.JobResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "job-1", resp.Data.ID)
}

func TestGetJob_NotFound(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(t, "cleaner-1", user.RoleCleaner)

	rec := f.do(t, http.MethodGet, "/api/v1/jobs/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStartJob_ResolvesActorFromToken(t *testing.T) {
	f := newRouterFixture(t)
	f.jobSvc.startResp = job.JobResponse{ID: "job-1", Status: string(job.StatusInProgress)}
	token := f.token(t, "mgr-1", user.RoleManager)

	rec := f.do(t, http.MethodPost, "/api/v1/jobs/job-1/start", token, map[string]interface{}{
		"manager_override": true,
		"override_reason":  "evening visit",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, f.jobSvc.startReq)
	assert.Equal(t, "job-1", f.jobSvc.startReq.ID)
	assert.Equal(t, "mgr-1", f.jobSvc.startReq.Actor.UserID)
	assert.True(t, f.jobSvc.startReq.Actor.IsManager)
	assert.True(t, f.jobSvc.startReq.ManagerOverride)
}

func TestStartJob_CleanerIsNotManager(t *testing.T) {
	f := newRouterFixture(t)
	f.jobSvc.startResp = job.JobResponse{ID: "job-1", Status: string(job.StatusInProgress)}
	token := f.token(t, "cleaner-1", user.RoleCleaner)

	rec := f.do(t, http.MethodPost, "/api/v1/jobs/job-1/start", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, f.jobSvc.startReq)
	assert.False(t, f.jobSvc.startReq.Actor.IsManager)
}

func TestStartJob_OutsideWindowMapsTo422(t *testing.T) {
	f := newRouterFixture(t)
	f.jobSvc.startErr = &schedule.OutsideWindowError{Window: "09:00-17:00", Timezone: "UTC"}
	token := f.token(t, "cleaner-1", user.RoleCleaner)

	rec := f.do(t, http.MethodPost, "/api/v1/jobs/job-1/start", token, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "OUTSIDE_SERVICE_WINDOW", resp.Error.Code)
	assert.Equal(t, "09:00-17:00", resp.Error.Details["window"])
}

func TestStartJob_InvalidTransitionMapsTo409(t *testing.T) {
	f := newRouterFixture(t)
	f.jobSvc.startErr = &job.InvalidTransitionError{From: job.StatusCompleted, Action: job.ActionStart}
	token := f.token(t, "cleaner-1", user.RoleCleaner)

	rec := f.do(t, http.MethodPost, "/api/v1/jobs/job-1/start", token, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_STATE_TRANSITION", resp.Error.Code)
}

func TestCancelJob_RequiresManagerRole(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(t, "cleaner-1", user.RoleCleaner)

	rec := f.do(t, http.MethodPost, "/api/v1/jobs/job-1/cancel", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCancelJob_ManagerAllowed(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(t, "mgr-1", user.RoleManager)

	rec := f.do(t, http.MethodPost, "/api/v1/jobs/job-1/cancel", token, map[string]interface{}{
		"reason": "facility closed",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}
