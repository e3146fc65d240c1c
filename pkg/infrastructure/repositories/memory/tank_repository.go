package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/avasquez/refinery/pkg/domain/repositories"
)

// TankRepository is an in-memory implementation of repositories.TankRepository
type TankRepository struct {
	mutex sync.RWMutex
	tanks map[string]*entities.Tank
}

// NewTankRepository creates a new in-memory tank repository
func NewTankRepository() *TankRepository {
	return &TankRepository{
		tanks: make(map[string]*entities.Tank),
	}
}

// Verify interface compliance
var _ repositories.TankRepository = (*TankRepository)(nil)

// GetTank retrieves a tank by name
func (r *TankRepository) GetTank(name string) (*entities.Tank, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	tank, exists := r.tanks[name]
	if !exists {
		return nil, fmt.Errorf("tank not found: %s", name)
	}
	return tank, nil
}

// GetAllTanks retrieves every tank in name order
func (r *TankRepository) GetAllTanks() ([]*entities.Tank, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	tanks := make([]*entities.Tank, 0, len(r.tanks))
	for _, tank := range r.tanks {
		tanks = append(tanks, tank)
	}
	sort.Slice(tanks, func(i, j int) bool { return tanks[i].Name < tanks[j].Name })
	return tanks, nil
}

// SaveTank stores a tank, replacing any existing entry for the name
func (r *TankRepository) SaveTank(tank *entities.Tank) error {
	if tank == nil {
		return fmt.Errorf("cannot save nil tank")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.tanks[tank.Name] = tank
	return nil
}
