package memory

import (
	"fmt"
	"sync"

	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/avasquez/refinery/pkg/domain/repositories"
)

// RequirementRepository is an in-memory implementation of
// repositories.RequirementRepository
type RequirementRepository struct {
	mutex        sync.RWMutex
	requirements []*entities.FeedstockRequirement
}

// NewRequirementRepository creates a new in-memory requirement repository
func NewRequirementRepository() *RequirementRepository {
	return &RequirementRepository{}
}

// Verify interface compliance
var _ repositories.RequirementRepository = (*RequirementRepository)(nil)

// GetAllRequirements retrieves every requirement in insertion order
func (r *RequirementRepository) GetAllRequirements() ([]*entities.FeedstockRequirement, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	requirements := make([]*entities.FeedstockRequirement, len(r.requirements))
	copy(requirements, r.requirements)
	return requirements, nil
}

// SaveRequirement appends a requirement
func (r *RequirementRepository) SaveRequirement(requirement *entities.FeedstockRequirement) error {
	if requirement == nil {
		return fmt.Errorf("cannot save nil requirement")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.requirements = append(r.requirements, requirement)
	return nil
}
