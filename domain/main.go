package domain

import (
	"github.com/akeren/consent-intake/config"
	"github.com/akeren/consent-intake/domain/monitoring"
	"github.com/akeren/consent-intake/domain/submission"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	monitoringFactory := monitoring.NewMonitoringControllerFactory(appConfig.Store, appConfig.Logger)
	submissionFactory := submission.NewSubmissionServiceFactory(appConfig.Store, appConfig.Logger)

	appConfig.RouterService.MountController(monitoringFactory.CreateController())
	appConfig.RouterService.MountController(submissionFactory.CreateController())
}
