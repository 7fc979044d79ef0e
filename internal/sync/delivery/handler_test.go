package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	syncdomain "channelsync-backend/internal/sync/domain"
	"channelsync-backend/internal/sync/usecase"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeSyncUsecase struct {
	scheduledCalls int
	manualCalls    int
	mappingID      string
	testMode       bool
	err            error
}

func (f *fakeSyncUsecase) RunScheduled(context.Context, time.Time) (*usecase.RunResult, error) {
	f.scheduledCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &usecase.RunResult{Message: "scheduled ok"}, nil
}

func (f *fakeSyncUsecase) RunManual(_ context.Context, mappingID string, testMode bool) (*usecase.RunResult, error) {
	f.manualCalls++
	f.mappingID = mappingID
	f.testMode = testMode
	if f.err != nil {
		return nil, f.err
	}
	return &usecase.RunResult{Message: "manual ok"}, nil
}

func (f *fakeSyncUsecase) ListCronLogs(int, int) ([]*syncdomain.CronLog, int64, error) {
	return nil, 0, nil
}

func newSyncRouter(uc usecase.SyncUsecase, cronSecret, sessionUserID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test"))))
	if sessionUserID != "" {
		r.Use(func(c *gin.Context) {
			sessions.Default(c).Set("userID", sessionUserID)
			c.Next()
		})
	}
	handler := NewSyncHandler(uc, cronSecret)
	r.POST("/api/sync", handler.Trigger)
	return r
}

func TestTriggerScheduledRequiresSecret(t *testing.T) {
	uc := &fakeSyncUsecase{}
	r := newSyncRouter(uc, "cron-secret", "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, uc.scheduledCalls)
}

func TestTriggerScheduledWithSecret(t *testing.T) {
	uc := &fakeSyncUsecase{}
	r := newSyncRouter(uc, "cron-secret", "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	req.Header.Set("Authorization", "Bearer cron-secret")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, uc.scheduledCalls)
	assert.Zero(t, uc.manualCalls)
}

func TestTriggerScheduledHidesFailureDetail(t *testing.T) {
	uc := &fakeSyncUsecase{err: assert.AnError}
	r := newSyncRouter(uc, "", "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestTriggerManualWithSession(t *testing.T) {
	uc := &fakeSyncUsecase{}
	r := newSyncRouter(uc, "cron-secret", "user-1")

	body, _ := json.Marshal(map[string]interface{}{"mappingId": "map-1", "test": true})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sync", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, uc.manualCalls)
	assert.Zero(t, uc.scheduledCalls)
	assert.Equal(t, "map-1", uc.mappingID)
	assert.True(t, uc.testMode)
}

func TestTriggerManualWithoutBody(t *testing.T) {
	uc := &fakeSyncUsecase{}
	r := newSyncRouter(uc, "", "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, uc.manualCalls)
	assert.Empty(t, uc.mappingID)
	assert.False(t, uc.testMode)
}

func TestTriggerManualUnknownMapping(t *testing.T) {
	uc := &fakeSyncUsecase{err: usecase.ErrSyncMappingNotFound}
	r := newSyncRouter(uc, "", "user-1")

	body := bytes.NewReader([]byte(`{"mappingId":"ghost"}`))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sync", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
