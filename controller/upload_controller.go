package controller

import (
	"context"
	"net/http"

	"membership-console/dal"
	"membership-console/models"

	"membership-console/utils/logger"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	ctx    context.Context
	client dal.RegistryClientInterface
	logger logger.Logger
}

func NewUploadController(ctx context.Context, client dal.RegistryClientInterface, log logger.Logger) *UploadController {
	return &UploadController{
		ctx:    ctx,
		client: client,
		logger: log,
	}
}

// Upload handles POST /api/v1/uploads
// @Summary Upload a certificate image
// @Description Forwards the file to the image collaborator and returns the hosted URL; file bytes are never stored
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 200 {object} models.APIResponse "Hosted URL"
// @Failure 400 {object} models.APIResponse "Bad Request - Missing file field"
// @Failure 502 {object} models.APIResponse "Bad Gateway - Upload service failed"
// @Router /uploads [post]
func (h *UploadController) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Missing file field",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
				Field:   "file",
			},
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Unreadable upload",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}
	defer file.Close()

	url, err := h.client.UploadFile(h.ctx, header.Filename, file)
	if err != nil {
		h.logger.Errorf("Upload failed: %v", err)
		c.JSON(http.StatusBadGateway, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadGateway,
			Message: "Upload failed",
			Error: &models.APIError{
				Type:    "UpstreamError",
				Details: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status: "success",
		Code:   http.StatusOK,
		Data:   gin.H{"url": url},
	})
}
