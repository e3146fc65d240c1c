package entities

import "fmt"

// Tank holds multi-grade crude inventory feeding a plant
type Tank struct {
	Name     string
	Plant    string // name of the plant this tank feeds
	Capacity float64
	Content  map[GradeName]float64
}

// NewTank creates a validated Tank. Content volumes must be non-negative and
// must not exceed capacity in total.
func NewTank(name, plant string, capacity float64, content map[GradeName]float64) (*Tank, error) {
	if name == "" {
		return nil, fmt.Errorf("tank name cannot be empty")
	}
	if capacity < 0 {
		return nil, fmt.Errorf("tank capacity cannot be negative, got %v", capacity)
	}

	total := 0.0
	for grade, volume := range content {
		if volume < 0 {
			return nil, fmt.Errorf("tank %s: volume for grade %s cannot be negative, got %v", name, grade, volume)
		}
		total += volume
	}
	if total > capacity {
		return nil, fmt.Errorf("tank %s: content %v exceeds capacity %v", name, total, capacity)
	}

	t := &Tank{
		Name:     name,
		Plant:    plant,
		Capacity: capacity,
		Content:  make(map[GradeName]float64, len(content)),
	}
	for grade, volume := range content {
		t.Content[grade] = volume
	}
	return t, nil
}

// TotalVolume returns the sum of all grade volumes in the tank
func (t *Tank) TotalVolume() float64 {
	total := 0.0
	for _, volume := range t.Content {
		total += volume
	}
	return total
}

// Headroom returns the remaining capacity of the tank
func (t *Tank) Headroom() float64 {
	return t.Capacity - t.TotalVolume()
}

// Clone returns a deep copy of the tank
func (t *Tank) Clone() Tank {
	content := make(map[GradeName]float64, len(t.Content))
	for grade, volume := range t.Content {
		content[grade] = volume
	}
	return Tank{
		Name:     t.Name,
		Plant:    t.Plant,
		Capacity: t.Capacity,
		Content:  content,
	}
}
