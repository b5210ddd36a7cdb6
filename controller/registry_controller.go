package controller

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"membership-console/models"
	"membership-console/services"

	"membership-console/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type RegistryController struct {
	ctx       context.Context
	services  *services.Services
	validator *validator.Validate
	logger    logger.Logger
}

func NewRegistryController(ctx context.Context, svc *services.Services, log logger.Logger) *RegistryController {
	return &RegistryController{
		ctx:       ctx,
		services:  svc,
		validator: validator.New(),
		logger:    log,
	}
}

type filterRequest struct {
	Status models.StatusFilter `json:"status" validate:"required,oneof=all approved pending"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type sortRequest struct {
	Key string `json:"key" validate:"required"`
}

type exportRequest struct {
	Filename string `json:"filename"`
}

func (h *RegistryController) registry(c *gin.Context) (*services.Registry, bool) {
	reg, err := h.services.Registry(c.Param("kind"))
	if err != nil {
		respondServiceError(c, err, "Unknown entity kind")
		return nil, false
	}
	return reg, true
}

func (h *RegistryController) bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		field := ""
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			field = verrs[0].Field()
		}
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
				Field:   field,
			},
		})
		return false
	}
	return true
}

// GetView handles GET /api/v1/registry/:kind
// @Summary Get the current view list
// @Description Returns the filtered/searched/sorted projection plus the view state that produced it
// @Tags Registry
// @Produce json
// @Param kind path string true "Entity kind" Enums(clubs, districtsecretaries, statesecretaries)
// @Success 200 {object} models.APIResponse "View page"
// @Failure 404 {object} models.APIResponse "Not Found - Unknown kind"
// @Router /registry/{kind} [get]
func (h *RegistryController) GetView(c *gin.Context) {
	reg, ok := h.registry(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Status: "success",
		Code:   http.StatusOK,
		Data:   reg.View(),
	})
}

// Refresh handles POST /api/v1/registry/:kind/refresh
// @Summary Refetch the collection
// @Description Replaces the base list wholesale from the remote registry; on failure the previous list is kept
// @Tags Registry
// @Produce json
// @Param kind path string true "Entity kind"
// @Success 200 {object} models.APIResponse "View page after refresh"
// @Failure 502 {object} models.APIResponse "Bad Gateway - Registry unreachable"
// @Router /registry/{kind}/refresh [post]
func (h *RegistryController) Refresh(c *gin.Context) {
	reg, ok := h.registry(c)
	if !ok {
		return
	}
	if err := reg.FetchAll(h.ctx); err != nil {
		respondServiceError(c, err, "Failed to refresh from registry")
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Collection refreshed",
		Data:    reg.View(),
	})
}

// SetFilter handles PUT /api/v1/registry/:kind/filter
// @Summary Set the status filter
// @Tags Registry
// @Accept json
// @Produce json
// @Param kind path string true "Entity kind"
// @Param request body filterRequest true "Status filter (all/approved/pending)"
// @Success 200 {object} models.APIResponse "View page after filtering"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid filter"
// @Router /registry/{kind}/filter [put]
func (h *RegistryController) SetFilter(c *gin.Context) {
	reg, ok := h.registry(c)
	if !ok {
		return
	}
	var req filterRequest
	if !h.bindAndValidate(c, &req) {
		return
	}
	reg.SetStatusFilter(req.Status)
	c.JSON(http.StatusOK, models.APIResponse{
		Status: "success",
		Code:   http.StatusOK,
		Data:   reg.View(),
	})
}

// Search handles PUT /api/v1/registry/:kind/search
// @Summary Run a free-text search
// @Description Snapshots the query and applies it together with the active status filter. Empty query clears the search.
// @Tags Registry
// @Accept json
// @Produce json
// @Param kind path string true "Entity kind"
// @Param request body searchRequest true "Search query"
// @Success 200 {object} models.APIResponse "View page after search"
// @Router /registry/{kind}/search [put]
func (h *RegistryController) Search(c *gin.Context) {
	reg, ok := h.registry(c)
	if !ok {
		return
	}
	var req searchRequest
	if !h.bindAndValidate(c, &req) {
		return
	}
	reg.Search(req.Query)
	c.JSON(http.StatusOK, models.APIResponse{
		Status: "success",
		Code:   http.StatusOK,
		Data:   reg.View(),
	})
}

// Sort handles PUT /api/v1/registry/:kind/sort
// @Summary Click a sort column
// @Description Same key flips ascending/descending; a new key resets to ascending
// @Tags Registry
// @Accept json
// @Produce json
// @Param kind path string true "Entity kind"
// @Param request body sortRequest true "Sort key"
// @Success 200 {object} models.APIResponse "View page after sorting"
// @Router /registry/{kind}/sort [put]
func (h *RegistryController) Sort(c *gin.Context) {
	reg, ok := h.registry(c)
	if !ok {
		return
	}
	var req sortRequest
	if !h.bindAndValidate(c, &req) {
		return
	}
	reg.SortClick(req.Key)
	c.JSON(http.StatusOK, models.APIResponse{
		Status: "success",
		Code:   http.StatusOK,
		Data:   reg.View(),
	})
}

// Approve handles POST /api/v1/registry/:kind/:id/approve
// @Summary Approve a pending registration
// @Description Issues one partial update carrying the status change, then patches the cached record in place
// @Tags Registry
// @Produce json
// @Param kind path string true "Entity kind"
// @Param id path string true "Entity ID"
// @Success 200 {object} models.APIResponse "Approved"
// @Failure 404 {object} models.APIResponse "Not Found"
// @Failure 502 {object} models.APIResponse "Bad Gateway - Update failed"
// @Router /registry/{kind}/{id}/approve [post]
func (h *RegistryController) Approve(c *gin.Context) {
	reg, ok := h.registry(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := reg.Approve(h.ctx, id); err != nil {
		respondServiceError(c, err, "Failed to approve")
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Registration approved",
		Data:    reg.View(),
	})
}

// Reject handles DELETE /api/v1/registry/:kind/:id/reject
// @Summary Reject a pending registration
// @Description Deletes the record (reject is not a stored state). Requires confirm=true.
// @Tags Registry
// @Produce json
// @Param kind path string true "Entity kind"
// @Param id path string true "Entity ID"
// @Param confirm query bool true "Explicit confirmation"
// @Success 200 {object} models.APIResponse "Rejected"
// @Failure 409 {object} models.APIResponse "Conflict - Record not pending"
// @Failure 428 {object} models.APIResponse "Precondition Required - Missing confirmation"
// @Router /registry/{kind}/{id}/reject [delete]
func (h *RegistryController) Reject(c *gin.Context) {
	reg, ok := h.registry(c)
	if !ok {
		return
	}
	id := c.Param("id")
	confirmed := strings.EqualFold(c.Query("confirm"), "true")
	if err := reg.Reject(h.ctx, id, confirmed); err != nil {
		respondServiceError(c, err, "Failed to reject")
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Registration rejected",
		Data:    reg.View(),
	})
}

// Delete handles DELETE /api/v1/registry/:kind/:id
// @Summary Delete a registration
// @Description Available at every status; destructive and unrecoverable. Requires confirm=true.
// @Tags Registry
// @Produce json
// @Param kind path string true "Entity kind"
// @Param id path string true "Entity ID"
// @Param confirm query bool true "Explicit confirmation"
// @Success 200 {object} models.APIResponse "Deleted"
// @Failure 404 {object} models.APIResponse "Not Found"
// @Failure 428 {object} models.APIResponse "Precondition Required - Missing confirmation"
// @Router /registry/{kind}/{id} [delete]
func (h *RegistryController) Delete(c *gin.Context) {
	reg, ok := h.registry(c)
	if !ok {
		return
	}
	id := c.Param("id")
	confirmed := strings.EqualFold(c.Query("confirm"), "true")
	if err := reg.Delete(h.ctx, id, confirmed); err != nil {
		respondServiceError(c, err, "Failed to delete")
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Registration deleted",
		Data:    reg.View(),
	})
}

// Export handles POST /api/v1/registry/:kind/export
// @Summary Export the base list as a spreadsheet
// @Description Consumes the full unfiltered list and streams a one-sheet workbook
// @Tags Registry
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param kind path string true "Entity kind"
// @Param request body exportRequest false "Download filename"
// @Success 200 {file} binary "Workbook"
// @Router /registry/{kind}/export [post]
func (h *RegistryController) Export(c *gin.Context) {
	reg, ok := h.registry(c)
	if !ok {
		return
	}
	var req exportRequest
	_ = c.ShouldBindJSON(&req)
	if req.Filename == "" {
		req.Filename = reg.Kind().Kind
	}
	if !strings.HasSuffix(req.Filename, ".xlsx") {
		req.Filename += ".xlsx"
	}

	book, err := h.services.Export.Workbook(reg.Kind(), reg.Base())
	if err != nil {
		h.logger.Errorf("Export of %s failed: %v", reg.Kind().Kind, err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to build export",
			Error: &models.APIError{
				Type:    "ExportError",
				Details: err.Error(),
			},
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, req.Filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := book.Write(c.Writer); err != nil {
		h.logger.Errorf("Streaming export failed: %v", err)
	}
}
