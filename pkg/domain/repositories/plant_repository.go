package repositories

import "github.com/avasquez/refinery/pkg/domain/entities"

// PlantRepository provides access to processing plants
type PlantRepository interface {
	GetPlant(name string) (*entities.Plant, error)
	GetAllPlants() ([]*entities.Plant, error)
	SavePlant(plant *entities.Plant) error
}
