package controller

import (
	"context"
	"errors"
	"net/http"

	"membership-console/dal"
	"membership-console/middelware"
	"membership-console/models"
	"membership-console/services"

	"membership-console/utils/logger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	RefData  *RefDataController
	Registry *RegistryController
	Session  *SessionController
	Upload   *UploadController
}

func NewController(ctx context.Context, cfg *models.Config, log logger.Logger) *Controller {
	client, err := dal.NewRegistryClient(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize registry client: %v", err)
	}

	svc := services.NewServices(ctx, client, log)

	return &Controller{
		RefData:  NewRefDataController(ctx, svc, log),
		Registry: NewRegistryController(ctx, svc, log),
		Session:  NewSessionController(ctx, svc, log),
		Upload:   NewUploadController(ctx, client, log),
	}
}

func (c *Controller) RegisterRoutes(ctx context.Context, config *models.Config, r *gin.Engine, basePath string) error {
	cors := middelware.NewCORSMiddleware(config)
	logging := middelware.NewLoggingMiddleware(c.Registry.logger)
	r.Use(cors.CORS())
	r.Use(logging.RequestLogger())

	v1 := r.Group(basePath)

	// Health check endpoint
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": config.AppVersion,
			"service": config.AppName,
		})
	})

	// Reference data
	refdata := v1.Group("/refdata")
	refdata.GET("", c.RefData.GetRefData)
	refdata.GET("/states", c.RefData.GetStates)
	refdata.GET("/states/:id/districts", c.RefData.GetDistricts)

	// Entity registries
	registry := v1.Group("/registry/:kind")
	registry.GET("", c.Registry.GetView)
	registry.POST("/refresh", c.Registry.Refresh)
	registry.PUT("/filter", c.Registry.SetFilter)
	registry.PUT("/search", c.Registry.Search)
	registry.PUT("/sort", c.Registry.Sort)
	registry.POST("/export", c.Registry.Export)
	registry.POST("/:id/approve", c.Registry.Approve)
	registry.DELETE("/:id/reject", c.Registry.Reject)
	registry.DELETE("/:id", c.Registry.Delete)

	// Form sessions
	sessions := v1.Group("/sessions")
	sessions.POST("", c.Session.Open)
	sessions.GET("/:sid", c.Session.Get)
	sessions.PATCH("/:sid", c.Session.Patch)
	sessions.POST("/:sid/state", c.Session.ChangeState)
	sessions.POST("/:sid/submit", c.Session.Submit)
	sessions.DELETE("/:sid", c.Session.Close)

	// Image upload passthrough
	v1.POST("/uploads", c.Upload.Upload)

	srv := &http.Server{
		Addr:    config.AppHost + ":" + config.AppPort,
		Handler: r,
	}
	log := logger.NewLogger(config.LogLevel, config.LogFormat)
	log.Infof("Starting console on %s:%s", config.AppHost, config.AppPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// respondServiceError maps core errors onto the API envelope. Everything
// the remote registry rejected (or the network dropped) presents the same
// way: nothing changed, user informed.
func respondServiceError(c *gin.Context, err error, message string) {
	status := http.StatusBadGateway
	errType := "UpstreamError"

	switch {
	case errors.Is(err, services.ErrUnknownKind), errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrSessionNotFound):
		status = http.StatusNotFound
		errType = "NotFound"
	case errors.Is(err, services.ErrConfirmationRequired):
		status = http.StatusPreconditionRequired
		errType = "ConfirmationRequired"
	case errors.Is(err, services.ErrNotPending), errors.Is(err, services.ErrViewOnlySession):
		status = http.StatusConflict
		errType = "InvalidTransition"
	}

	c.JSON(status, models.APIResponse{
		Status:  "error",
		Code:    status,
		Message: message,
		Error: &models.APIError{
			Type:    errType,
			Details: err.Error(),
		},
	})
}
