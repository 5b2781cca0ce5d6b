package submission

import (
	"github.com/akeren/consent-intake/config/router"
	"github.com/akeren/consent-intake/internal/log"
)

type SubmissionServiceFactory interface {
	CreateService() SubmissionService
	CreateController() *router.RESTController
}

type DefaultSubmissionServiceFactory struct {
	repository SubmissionRepository
	logger     *log.Logger
}

func NewSubmissionServiceFactory(repository SubmissionRepository, logger *log.Logger) SubmissionServiceFactory {
	return &DefaultSubmissionServiceFactory{
		repository: repository,
		logger:     logger,
	}
}

func (f *DefaultSubmissionServiceFactory) CreateService() SubmissionService {
	return NewSubmissionService(f.logger, f.repository)
}

func (f *DefaultSubmissionServiceFactory) CreateController() *router.RESTController {
	return NewSubmissionController(f.CreateService())
}
