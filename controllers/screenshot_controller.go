package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobpilot/services"
	"jobpilot/utils"
)

// ScreenshotController serves the screenshots the automation archives to S3.
// Without S3 configured, screenshots stay on local disk and this surface
// reports unavailable.
type ScreenshotController struct {
	s3Service *services.S3Service
}

func NewScreenshotController() *ScreenshotController {
	s3Service, err := services.NewS3Service()
	if err != nil {
		return &ScreenshotController{s3Service: nil}
	}
	return &ScreenshotController{s3Service: s3Service}
}

// GetScreenshot redirects to a pre-signed URL for the requested screenshot.
func (ctrl *ScreenshotController) GetScreenshot(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if !strings.HasPrefix(key, "screenshots/") {
		key = "screenshots/" + key
	}

	if ctrl.s3Service == nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "Screenshot storage not configured", nil)
		return
	}

	url, err := ctrl.s3Service.GeneratePresignedURL(key)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to generate screenshot URL", err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}
