package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/avasquez/refinery/pkg/domain/repositories"
)

// PlantRepository is an in-memory implementation of repositories.PlantRepository
type PlantRepository struct {
	mutex  sync.RWMutex
	plants map[string]*entities.Plant
}

// NewPlantRepository creates a new in-memory plant repository
func NewPlantRepository() *PlantRepository {
	return &PlantRepository{
		plants: make(map[string]*entities.Plant),
	}
}

// Verify interface compliance
var _ repositories.PlantRepository = (*PlantRepository)(nil)

// GetPlant retrieves a plant by name
func (r *PlantRepository) GetPlant(name string) (*entities.Plant, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	plant, exists := r.plants[name]
	if !exists {
		return nil, fmt.Errorf("plant not found: %s", name)
	}
	return plant, nil
}

// GetAllPlants retrieves every plant in name order
func (r *PlantRepository) GetAllPlants() ([]*entities.Plant, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	plants := make([]*entities.Plant, 0, len(r.plants))
	for _, plant := range r.plants {
		plants = append(plants, plant)
	}
	sort.Slice(plants, func(i, j int) bool { return plants[i].Name < plants[j].Name })
	return plants, nil
}

// SavePlant stores a plant, replacing any existing entry for the name
func (r *PlantRepository) SavePlant(plant *entities.Plant) error {
	if plant == nil {
		return fmt.Errorf("cannot save nil plant")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.plants[plant.Name] = plant
	return nil
}
