package insight

import (
	"github.com/mwalimu/insight/core"
	"github.com/mwalimu/insight/core/student"
)

// NewServiceMock returns a Service with an injected noise source so tests
// control the perturbation term.
func NewServiceMock(repo student.Repository, mailSvc core.EmailService, logger core.Logger, noise Noise) Service {
	return &service{
		repo:    repo,
		mailSvc: mailSvc,
		logger:  logger,
		noise:   noise,
	}
}
