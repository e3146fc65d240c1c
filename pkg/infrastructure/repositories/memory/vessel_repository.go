package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/avasquez/refinery/pkg/domain/repositories"
)

// VesselRepository is an in-memory implementation of repositories.VesselRepository
type VesselRepository struct {
	mutex   sync.RWMutex
	vessels map[string]*entities.Vessel
}

// NewVesselRepository creates a new in-memory vessel repository
func NewVesselRepository() *VesselRepository {
	return &VesselRepository{
		vessels: make(map[string]*entities.Vessel),
	}
}

// Verify interface compliance
var _ repositories.VesselRepository = (*VesselRepository)(nil)

// GetVessel retrieves a vessel by ID
func (r *VesselRepository) GetVessel(vesselID string) (*entities.Vessel, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	vessel, exists := r.vessels[vesselID]
	if !exists {
		return nil, fmt.Errorf("vessel not found: %s", vesselID)
	}
	return vessel, nil
}

// GetAllVessels retrieves every vessel in ID order
func (r *VesselRepository) GetAllVessels() ([]*entities.Vessel, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	vessels := make([]*entities.Vessel, 0, len(r.vessels))
	for _, vessel := range r.vessels {
		vessels = append(vessels, vessel)
	}
	sort.Slice(vessels, func(i, j int) bool { return vessels[i].VesselID < vessels[j].VesselID })
	return vessels, nil
}

// SaveVessel stores a vessel, replacing any existing entry for the ID
func (r *VesselRepository) SaveVessel(vessel *entities.Vessel) error {
	if vessel == nil {
		return fmt.Errorf("cannot save nil vessel")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.vessels[vessel.VesselID] = vessel
	return nil
}
