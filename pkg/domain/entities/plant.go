package entities

import "fmt"

// Plant represents a processing facility fed by one or more tanks
type Plant struct {
	Name              string
	Capacity          float64 // total daily throughput ceiling
	BaseCrudeCapacity float64
	MaxInventory      float64
}

// NewPlant creates a validated Plant
func NewPlant(name string, capacity, baseCrudeCapacity, maxInventory float64) (*Plant, error) {
	if name == "" {
		return nil, fmt.Errorf("plant name cannot be empty")
	}
	if baseCrudeCapacity < 0 {
		return nil, fmt.Errorf("base crude capacity cannot be negative, got %v", baseCrudeCapacity)
	}
	if capacity < baseCrudeCapacity {
		return nil, fmt.Errorf("plant capacity %v cannot be below base crude capacity %v", capacity, baseCrudeCapacity)
	}
	if maxInventory < 0 {
		return nil, fmt.Errorf("max inventory cannot be negative, got %v", maxInventory)
	}

	return &Plant{
		Name:              name,
		Capacity:          capacity,
		BaseCrudeCapacity: baseCrudeCapacity,
		MaxInventory:      maxInventory,
	}, nil
}
