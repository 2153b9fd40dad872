package services

import (
	"github.com/username/fasbooks/src/models"
)

// ProcessingService defines the interface for the core classify-compute-
// assemble pipeline. Each call is a pure, independent function of its input
// facts; the service holds no per-request state.
type ProcessingService interface {
	Process(facts *models.TransactionFacts, visualize bool) (*models.ProcessingResult, error)
	StandardsInfo() []models.StandardInfo
}
