package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"jobpilot/config"
	"jobpilot/services"
	"jobpilot/utils"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.AutomationConfig{
		DryRun:    true,
		QueueFile: filepath.Join(t.TempDir(), "queue.json"),
	}
	queue := services.NewApplicationQueue(cfg.QueueFile)
	logger := utils.NewLoggerWithWriter(&bytes.Buffer{})
	orchestrator := services.NewOrchestrator(cfg, queue, services.NewScraperRegistry(), services.ScraperDeps{Config: cfg}, nil, nil, logger)

	ctrl := NewApplicationController(orchestrator)

	r := gin.New()
	r.POST("/api/applications/apply", ctrl.Apply)
	r.GET("/api/applications/queue", ctrl.GetQueue)
	r.DELETE("/api/applications/queue", ctrl.ClearQueue)
	r.GET("/api/platforms", ctrl.GetPlatforms)
	r.GET("/api/platforms/detect", ctrl.DetectPlatform)
	return r
}

func TestDetectPlatformEndpoint(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/platforms/detect?url=https://boards.greenhouse.io/acme/jobs/1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp utils.StandardResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "greenhouse", data["platform"])
}

func TestDetectPlatformEndpointRejectsBadInput(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/platforms/detect", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/platforms/detect?url=ftp://x", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPlatformsEndpoint(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/platforms", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "greenhouse")
	assert.Contains(t, w.Body.String(), "generic")
}

func TestApplyEndpointRejectsInvalidBody(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/applications/apply", bytes.NewBufferString(`{"profile": {}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp utils.StandardResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestApplyEndpointRejectsInvalidURL(t *testing.T) {
	r := testRouter(t)

	body := `{"url": "ftp://not-a-job", "profile": {"name": "Ada Lovelace"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/applications/apply", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid job URL")
}

func TestQueueEndpoints(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/applications/queue", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	var resp utils.StandardResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(0), data["pending"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/applications/queue", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Queue cleared")
}
