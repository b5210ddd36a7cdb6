package controller

import (
	"context"
	"net/http"
	"strconv"

	"membership-console/models"
	"membership-console/services"

	"membership-console/utils/logger"

	"github.com/gin-gonic/gin"
)

type RefDataController struct {
	ctx      context.Context
	services *services.Services
	logger   logger.Logger
}

func NewRefDataController(ctx context.Context, svc *services.Services, log logger.Logger) *RefDataController {
	return &RefDataController{
		ctx:      ctx,
		services: svc,
		logger:   log,
	}
}

// GetRefData handles GET /api/v1/refdata
// @Summary Get reference data
// @Description Retrieve the state and district lists with the loader readiness flag
// @Tags Reference Data
// @Produce json
// @Success 200 {object} models.APIResponse "Reference data"
// @Router /refdata [get]
func (h *RefDataController) GetRefData(c *gin.Context) {
	c.JSON(http.StatusOK, models.APIResponse{
		Status: "success",
		Code:   http.StatusOK,
		Data:   h.services.RefData.Snapshot(),
	})
}

// GetStates handles GET /api/v1/refdata/states
// @Summary List states
// @Tags Reference Data
// @Produce json
// @Success 200 {object} models.APIResponse "States in load order"
// @Router /refdata/states [get]
func (h *RefDataController) GetStates(c *gin.Context) {
	c.JSON(http.StatusOK, models.APIResponse{
		Status: "success",
		Code:   http.StatusOK,
		Data: gin.H{
			"disabled": h.services.Resolver.SelectorsDisabled(),
			"states":   h.services.RefData.States(),
		},
	})
}

// GetDistricts handles GET /api/v1/refdata/states/:id/districts
// @Summary List districts of a state
// @Description Returns the valid district subset for the selected state, preserving load order. While reference data is loading the selector is reported disabled.
// @Tags Reference Data
// @Produce json
// @Param id path int true "State ID"
// @Success 200 {object} models.APIResponse "Districts in load order"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid state ID"
// @Router /refdata/states/{id}/districts [get]
func (h *RefDataController) GetDistricts(c *gin.Context) {
	stateID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid state id",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
				Field:   "id",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status: "success",
		Code:   http.StatusOK,
		Data: gin.H{
			"disabled":  h.services.Resolver.SelectorsDisabled(),
			"districts": h.services.Resolver.DistrictsFor(stateID),
		},
	})
}
