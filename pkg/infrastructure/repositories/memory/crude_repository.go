package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/avasquez/refinery/pkg/domain/repositories"
)

// CrudeRepository is an in-memory implementation of repositories.CrudeRepository
type CrudeRepository struct {
	mutex  sync.RWMutex
	crudes map[entities.GradeName]*entities.Crude
}

// NewCrudeRepository creates a new in-memory crude repository
func NewCrudeRepository() *CrudeRepository {
	return &CrudeRepository{
		crudes: make(map[entities.GradeName]*entities.Crude),
	}
}

// Verify interface compliance
var _ repositories.CrudeRepository = (*CrudeRepository)(nil)

// GetCrude retrieves a crude by grade name
func (r *CrudeRepository) GetCrude(name entities.GradeName) (*entities.Crude, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	crude, exists := r.crudes[name]
	if !exists {
		return nil, fmt.Errorf("crude not found: %s", name)
	}
	return crude, nil
}

// GetAllCrudes retrieves every crude in grade-name order
func (r *CrudeRepository) GetAllCrudes() ([]*entities.Crude, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	crudes := make([]*entities.Crude, 0, len(r.crudes))
	for _, crude := range r.crudes {
		crudes = append(crudes, crude)
	}
	sort.Slice(crudes, func(i, j int) bool { return crudes[i].Name < crudes[j].Name })
	return crudes, nil
}

// SaveCrude stores a crude, replacing any existing entry for the grade
func (r *CrudeRepository) SaveCrude(crude *entities.Crude) error {
	if crude == nil {
		return fmt.Errorf("cannot save nil crude")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.crudes[crude.Name] = crude
	return nil
}
