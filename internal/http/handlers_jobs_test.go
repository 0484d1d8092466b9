package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/voiceforge/voiceforge/internal/domain/model"
	apperrors "github.com/voiceforge/voiceforge/internal/errors"
	"github.com/voiceforge/voiceforge/internal/mocks"
	"github.com/voiceforge/voiceforge/internal/service"
)

const (
	testUserID = "11111111-1111-1111-1111-111111111111"
	testJobID  = "22222222-2222-2222-2222-222222222222"
)

func newJobTestRouter(t *testing.T, jobs *mocks.MockJobRepository, queue *mocks.MockJobQueue) http.Handler {
	t.Helper()
	svc, err := service.NewJobService(service.JobServiceOptions{Jobs: jobs, Queue: queue})
	require.NoError(t, err)
	return NewJobRouter(JobRouterServices{Jobs: svc})
}

// authedRequest builds a request carrying the identity headers the gateway
// injects after token validation.
func authedRequest(method, path string, body []byte) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set(HeaderUserID, testUserID)
	req.Header.Set(HeaderUserEmail, "alice@example.com")
	req.Header.Set(HeaderUsername, "alice")
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestJobRoutesRequireIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router := newJobTestRouter(t, mocks.NewMockJobRepository(ctrl), mocks.NewMockJobQueue(ctrl))

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/clones"},
		{http.MethodGet, "/clones"},
		{http.MethodGet, "/clones/" + testJobID},
		{http.MethodGet, "/clones/" + testJobID + "/status"},
		{http.MethodGet, "/clones/stats"},
	}

	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
	}
}

func TestCreateCloneEndpoint(t *testing.T) {
	t.Run("returns 201 with pending job", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		jobs := mocks.NewMockJobRepository(ctrl)
		queue := mocks.NewMockJobQueue(ctrl)
		router := newJobTestRouter(t, jobs, queue)

		created := &model.Job{ID: testJobID, UserID: testUserID, Status: model.JobStatusPending}
		jobs.EXPECT().
			Create(gomock.Any(), testUserID, gomock.Any()).
			Return(created, nil)
		queue.EXPECT().Enqueue(testJobID).Return(nil)

		body, _ := json.Marshal(map[string]string{
			"name":       "my clone",
			"source_ref": "samples/voice.wav",
		})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodPost, "/clones", body))

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp model.CreateJobResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, testJobID, resp.ID)
		assert.Equal(t, model.JobStatusPending, resp.Status)
	})

	t.Run("invalid request returns 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		jobs := mocks.NewMockJobRepository(ctrl)
		queue := mocks.NewMockJobQueue(ctrl)
		router := newJobTestRouter(t, jobs, queue)

		jobs.EXPECT().
			Create(gomock.Any(), testUserID, gomock.Any()).
			Return(nil, apperrors.ValidationField("name", "name is required"))

		body, _ := json.Marshal(map[string]string{"source_ref": "samples/voice.wav"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodPost, "/clones", body))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListClonesEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	jobs := mocks.NewMockJobRepository(ctrl)
	router := newJobTestRouter(t, jobs, mocks.NewMockJobQueue(ctrl))

	jobs.EXPECT().List(gomock.Any(), testUserID).Return([]*model.Job{
		{ID: testJobID, UserID: testUserID, Status: model.JobStatusCompleted},
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/clones", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var listed []model.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, testJobID, listed[0].ID)
}

func TestGetCloneEndpoint(t *testing.T) {
	t.Run("owned job is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		jobs := mocks.NewMockJobRepository(ctrl)
		router := newJobTestRouter(t, jobs, mocks.NewMockJobQueue(ctrl))

		jobs.EXPECT().
			Get(gomock.Any(), testUserID, testJobID).
			Return(&model.Job{ID: testJobID, UserID: testUserID}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodGet, "/clones/"+testJobID, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("someone else's job is 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		jobs := mocks.NewMockJobRepository(ctrl)
		router := newJobTestRouter(t, jobs, mocks.NewMockJobQueue(ctrl))

		jobs.EXPECT().
			Get(gomock.Any(), testUserID, testJobID).
			Return(nil, apperrors.NotFound("job not found"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodGet, "/clones/"+testJobID, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCloneStatusEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	jobs := mocks.NewMockJobRepository(ctrl)
	router := newJobTestRouter(t, jobs, mocks.NewMockJobQueue(ctrl))

	jobs.EXPECT().
		Status(gomock.Any(), testUserID, testJobID).
		Return(&model.JobStatusResponse{Status: model.JobStatusProcessing}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/clones/"+testJobID+"/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "processing")
}

func TestCloneStatsEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	jobs := mocks.NewMockJobRepository(ctrl)
	router := newJobTestRouter(t, jobs, mocks.NewMockJobQueue(ctrl))

	jobs.EXPECT().
		Stats(gomock.Any(), testUserID).
		Return(&model.JobStats{Pending: 1, Processing: 2, Completed: 3, Failed: 4}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/clones/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var stats model.JobStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.Completed)
}

func TestJobHealthEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router := newJobTestRouter(t, mocks.NewMockJobRepository(ctrl), mocks.NewMockJobQueue(ctrl))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"clone-job-service"}`, rec.Body.String())
}
