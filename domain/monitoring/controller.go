package monitoring

import (
	"context"
	"time"

	"github.com/akeren/consent-intake/config/router"
	"github.com/akeren/consent-intake/internal/log"
	apperrors "github.com/akeren/consent-intake/pkg/errors"
)

const healthCheckTimeout = 3 * time.Second

// StorePinger is satisfied by every submission repository.
type StorePinger interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Database int `json:"database"` // 1 = reachable, 0 = unreachable
	Uptime   int `json:"uptime"`   // seconds
}

type MonitoringController struct {
	store     StorePinger
	logger    *log.Logger
	startTime time.Time
}

func NewMonitoringController(store StorePinger, logger *log.Logger) *router.RESTController {
	ctrl := &MonitoringController{
		store:     store,
		logger:    logger,
		startTime: time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(routerService *router.RouterService, controller *router.RESTController) {
			routerService.AddGetHandler(controller, "", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.monitor(c)
			})

			routerService.AddGetHandler(controller, "health", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.healthCheck(routerService, c)
			})

			routerService.AddHeadHandler(controller, "health", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.healthCheck(routerService, c)
			})
		},
	)
}

func (ctrl *MonitoringController) healthCheck(
	routerService *router.RouterService,
	c *router.RequestContext,
) *router.ServiceResult {
	logger := routerService.GetLogger(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := ctrl.performHealthChecks(ctx, logger)

	if status.Database == 0 {
		return router.ServiceUnavailableResult("consent-intake store unreachable", status)
	}

	return router.OKResult(status, "consent-intake health check completed")
}

func (ctrl *MonitoringController) monitor(
	c *router.RequestContext,
) *router.ServiceResult {
	return &router.ServiceResult{
		StatusCode: apperrors.StatusOK,
		Data:       "Monitoring endpoint is operational.",
		Message:    "Monitoring successful",
	}
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		Uptime: int(time.Since(ctrl.startTime).Seconds()),
	}

	if ctrl.store == nil {
		logger.Error("Store not configured, health check failed")
		return status
	}

	if err := ctrl.store.Ping(ctx); err != nil {
		logger.Error("Store health check failed", "error", err)
		return status
	}

	status.Database = 1
	logger.Debug("Store health check passed")

	return status
}
