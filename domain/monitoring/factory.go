package monitoring

import (
	"github.com/akeren/consent-intake/config/router"
	"github.com/akeren/consent-intake/internal/log"
)

type MonitoringControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultMonitoringControllerFactory struct {
	store  StorePinger
	logger *log.Logger
}

func NewMonitoringControllerFactory(store StorePinger, logger *log.Logger) MonitoringControllerFactory {
	return &DefaultMonitoringControllerFactory{
		store:  store,
		logger: logger,
	}
}

func (f *DefaultMonitoringControllerFactory) CreateController() *router.RESTController {
	return NewMonitoringController(f.store, f.logger)
}
