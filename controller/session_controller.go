package controller

import (
	"context"
	"net/http"

	"membership-console/models"
	"membership-console/services"

	"membership-console/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type SessionController struct {
	ctx       context.Context
	services  *services.Services
	validator *validator.Validate
	logger    logger.Logger
}

func NewSessionController(ctx context.Context, svc *services.Services, log logger.Logger) *SessionController {
	return &SessionController{
		ctx:       ctx,
		services:  svc,
		validator: validator.New(),
		logger:    log,
	}
}

// Sessions exposes the underlying session service (the janitor sweeps it).
func (h *SessionController) Sessions() *services.FormSessionService {
	return h.services.Sessions
}

// Open handles POST /api/v1/sessions
// @Summary Open a form session
// @Description Creates a transient create/edit/view copy of one entity's editable fields
// @Tags Form Sessions
// @Accept json
// @Produce json
// @Param request body models.OpenSessionRequest true "Session request"
// @Success 201 {object} models.APIResponse "Session opened"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid mode or kind"
// @Failure 404 {object} models.APIResponse "Not Found - Entity does not exist"
// @Router /sessions [post]
func (h *SessionController) Open(c *gin.Context) {
	var req models.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
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
		return
	}
	if !req.Mode.Valid() {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid session mode",
			Error: &models.APIError{
				Type:  "ValidationError",
				Field: "mode",
			},
		})
		return
	}

	session, err := h.services.Sessions.Open(req)
	if err != nil {
		respondServiceError(c, err, "Failed to open session")
		return
	}
	c.JSON(http.StatusCreated, models.APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: "Session opened",
		Data:    session,
	})
}

// Get handles GET /api/v1/sessions/:sid
// @Summary Get a form session
// @Tags Form Sessions
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} models.APIResponse "Session"
// @Failure 404 {object} models.APIResponse "Not Found - Session closed or expired"
// @Router /sessions/{sid} [get]
func (h *SessionController) Get(c *gin.Context) {
	session, err := h.services.Sessions.Get(c.Param("sid"))
	if err != nil {
		respondServiceError(c, err, "Session not found")
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Status: "success",
		Code:   http.StatusOK,
		Data:   session,
	})
}

// Patch handles PATCH /api/v1/sessions/:sid
// @Summary Update session fields
// @Description Free-form key/value replacement of the session's editable fields
// @Tags Form Sessions
// @Accept json
// @Produce json
// @Param sid path string true "Session ID"
// @Param request body object true "Field map"
// @Success 200 {object} models.APIResponse "Session after patch"
// @Failure 404 {object} models.APIResponse "Not Found"
// @Router /sessions/{sid} [patch]
func (h *SessionController) Patch(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid field map",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}

	session, err := h.services.Sessions.Patch(c.Param("sid"), fields)
	if err != nil {
		respondServiceError(c, err, "Failed to update session")
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Status: "success",
		Code:   http.StatusOK,
		Data:   session,
	})
}

// ChangeState handles POST /api/v1/sessions/:sid/state
// @Summary Change the selected state
// @Description Applies the cascading constraint: the district selection is cleared in the same update
// @Tags Form Sessions
// @Accept json
// @Produce json
// @Param sid path string true "Session ID"
// @Param request body models.StateChangeRequest true "New state"
// @Success 200 {object} models.APIResponse "Session with districts for the new state"
// @Failure 404 {object} models.APIResponse "Not Found"
// @Router /sessions/{sid}/state [post]
func (h *SessionController) ChangeState(c *gin.Context) {
	var req models.StateChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}

	session, err := h.services.Sessions.ChangeState(c.Param("sid"), req.StateID)
	if err != nil {
		respondServiceError(c, err, "Failed to change state")
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Status: "success",
		Code:   http.StatusOK,
		Data: gin.H{
			"session":   session,
			"disabled":  h.services.Resolver.SelectorsDisabled(),
			"districts": h.services.Resolver.DistrictsFor(req.StateID),
		},
	})
}

// Submit handles POST /api/v1/sessions/:sid/submit
// @Summary Submit a form session
// @Description Assembles the server payload and creates or updates through the registry; the session closes on success and stays open on failure
// @Tags Form Sessions
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} models.APIResponse "Submitted"
// @Failure 404 {object} models.APIResponse "Not Found"
// @Failure 409 {object} models.APIResponse "Conflict - View session"
// @Failure 502 {object} models.APIResponse "Bad Gateway - Registry rejected the submit"
// @Router /sessions/{sid}/submit [post]
func (h *SessionController) Submit(c *gin.Context) {
	if err := h.services.Sessions.Submit(h.ctx, c.Param("sid")); err != nil {
		respondServiceError(c, err, "Failed to submit")
		return
	}
	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Submitted",
	})
}

// Close handles DELETE /api/v1/sessions/:sid
// @Summary Close a form session
// @Tags Form Sessions
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} models.APIResponse "Closed"
// @Router /sessions/{sid} [delete]
func (h *SessionController) Close(c *gin.Context) {
	h.services.Sessions.Close(c.Param("sid"))
	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Session closed",
	})
}
