package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobpilot/models"
	"jobpilot/services"
	"jobpilot/utils"
)

// ApplicationController exposes the automation pipeline over HTTP. Batch
// runs execute synchronously; callers are expected to be internal tools,
// not browsers.
type ApplicationController struct {
	orchestrator *services.Orchestrator
}

func NewApplicationController(orchestrator *services.Orchestrator) *ApplicationController {
	return &ApplicationController{orchestrator: orchestrator}
}

type applyRequest struct {
	URL     string         `json:"url" binding:"required"`
	Profile models.Profile `json:"profile" binding:"required"`
}

type batchRequest struct {
	URLs    []string       `json:"urls" binding:"required"`
	Profile models.Profile `json:"profile" binding:"required"`
}

// Apply runs the pipeline for a single job URL.
func (ctrl *ApplicationController) Apply(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := ctrl.orchestrator.ApplyToJob(req.URL, &req.Profile)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid job URL", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Application processed", result)
}

// ApplyBatch enqueues the URLs and drains the queue sequentially. The
// response reports the outcome of every item.
func (ctrl *ApplicationController) ApplyBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.URLs) == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "No URLs provided", nil)
		return
	}

	batch := ctrl.orchestrator.ApplyToMultipleJobs(req.URLs, &req.Profile)
	utils.SuccessResponse(c, http.StatusOK, "Batch processed", batch)
}

// GetQueue returns the queue contents in insertion order.
func (ctrl *ApplicationController) GetQueue(c *gin.Context) {
	queue := ctrl.orchestrator.Queue()
	utils.SuccessResponse(c, http.StatusOK, "Queue contents", gin.H{
		"items":   queue.Items(),
		"pending": queue.PendingCount(),
	})
}

// ClearQueue empties the queue and deletes its persisted file.
func (ctrl *ApplicationController) ClearQueue(c *gin.Context) {
	ctrl.orchestrator.Queue().Clear()
	utils.SuccessResponse(c, http.StatusOK, "Queue cleared", nil)
}

// DetectPlatform reports which platform strategy a URL would use.
func (ctrl *ApplicationController) DetectPlatform(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "url query parameter is required", nil)
		return
	}
	if err := services.ValidateJobURL(url); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid job URL", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Platform detected", gin.H{
		"url":      services.NormalizeURL(url),
		"platform": services.DetectPlatform(url),
	})
}

// GetPlatforms lists every supported platform identifier.
func (ctrl *ApplicationController) GetPlatforms(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Supported platforms", gin.H{
		"platforms": services.KnownPlatforms(),
	})
}
