package sim

import (
	"fmt"
	"sort"

	"github.com/avasquez/refinery/pkg/domain/entities"
)

// Draw records a single volume movement against one tank
type Draw struct {
	Tank   string
	Grade  entities.GradeName
	Volume float64
}

// TankLedger is the single mutation point for tank inventory. All deposits
// and withdrawals go through it so the per-tank capacity and non-negativity
// invariants hold after every operation. Tank iteration order is always
// ascending by name to keep outcomes reproducible.
type TankLedger struct {
	tanks map[string]*entities.Tank
	names []string // sorted tank names
}

// NewTankLedger builds a ledger over deep copies of the given tanks, so the
// caller's entities are never mutated by a simulation run.
func NewTankLedger(tanks []*entities.Tank) (*TankLedger, error) {
	ledger := &TankLedger{
		tanks: make(map[string]*entities.Tank, len(tanks)),
		names: make([]string, 0, len(tanks)),
	}

	for _, tank := range tanks {
		if _, exists := ledger.tanks[tank.Name]; exists {
			return nil, fmt.Errorf("duplicate tank name: %s", tank.Name)
		}
		if tank.TotalVolume() > tank.Capacity+Epsilon {
			return nil, fmt.Errorf("tank %s: content %v exceeds capacity %v",
				tank.Name, tank.TotalVolume(), tank.Capacity)
		}
		clone := tank.Clone()
		ledger.tanks[tank.Name] = &clone
		ledger.names = append(ledger.names, tank.Name)
	}
	sort.Strings(ledger.names)

	return ledger, nil
}

// TankNames returns all tank names in ascending order
func (l *TankLedger) TankNames() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// TanksAt returns the names of tanks feeding the given plant, in ascending
// order. An empty plant name, or a plant no tank references, selects every
// tank.
func (l *TankLedger) TanksAt(plant string) []string {
	if plant == "" {
		return l.TankNames()
	}
	var names []string
	for _, name := range l.names {
		if l.tanks[name].Plant == plant {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return l.TankNames()
	}
	return names
}

// Headroom returns the remaining capacity of a tank
func (l *TankLedger) Headroom(tank string) (float64, error) {
	t, err := l.tank(tank)
	if err != nil {
		return 0, err
	}
	return t.Headroom(), nil
}

// Deposit increases a tank's content for one grade. The deposit is rejected
// atomically with CapacityExceededError when the tank total would exceed
// capacity; content is left unchanged in that case.
func (l *TankLedger) Deposit(tank string, grade entities.GradeName, volume float64) error {
	t, err := l.tank(tank)
	if err != nil {
		return err
	}
	if volume < 0 {
		return fmt.Errorf("deposit volume cannot be negative, got %v", volume)
	}

	headroom := t.Headroom()
	if volume > headroom+Epsilon {
		return &CapacityExceededError{
			Tank:      tank,
			Grade:     grade,
			Requested: volume,
			Headroom:  headroom,
		}
	}

	t.Content[grade] += volume
	return nil
}

// Withdraw decreases a tank's content for one grade. Requests within Epsilon
// of the available stock drain the grade completely; anything beyond that
// fails with InsufficientVolumeError.
func (l *TankLedger) Withdraw(tank string, grade entities.GradeName, volume float64) error {
	t, err := l.tank(tank)
	if err != nil {
		return err
	}
	if volume < 0 {
		return fmt.Errorf("withdrawal volume cannot be negative, got %v", volume)
	}

	available := t.Content[grade]
	if volume > available+Epsilon {
		return &InsufficientVolumeError{
			Tank:      tank,
			Grade:     grade,
			Requested: volume,
			Available: available,
		}
	}

	remaining := available - volume
	if remaining <= Epsilon {
		delete(t.Content, grade)
	} else {
		t.Content[grade] = remaining
	}
	return nil
}

// Available returns the total volume of a grade across all tanks
func (l *TankLedger) Available(grade entities.GradeName) float64 {
	total := 0.0
	for _, name := range l.names {
		total += l.tanks[name].Content[grade]
	}
	return total
}

// WithdrawAcross drains a grade across tanks in ascending tank-name order
// until the requested volume is satisfied, returning one Draw per tank
// touched. It fails with InsufficientVolumeError before mutating anything if
// the network-wide stock cannot cover the request.
func (l *TankLedger) WithdrawAcross(grade entities.GradeName, volume float64) ([]Draw, error) {
	if volume < 0 {
		return nil, fmt.Errorf("withdrawal volume cannot be negative, got %v", volume)
	}
	if available := l.Available(grade); volume > available+Epsilon {
		return nil, &InsufficientVolumeError{
			Grade:     grade,
			Requested: volume,
			Available: available,
		}
	}

	var draws []Draw
	remaining := volume
	for _, name := range l.names {
		if remaining <= Epsilon {
			break
		}
		held := l.tanks[name].Content[grade]
		if held <= 0 {
			continue
		}
		take := remaining
		if take > held {
			take = held
		}
		if err := l.Withdraw(name, grade, take); err != nil {
			return nil, err
		}
		draws = append(draws, Draw{Tank: name, Grade: grade, Volume: take})
		remaining -= take
	}

	return draws, nil
}

// Snapshot returns an immutable deep copy of all tank state. Callers take it
// only after a day's deposits and withdrawals have completed, so it never
// reflects partially-applied mutations.
func (l *TankLedger) Snapshot() map[string]entities.Tank {
	snapshot := make(map[string]entities.Tank, len(l.tanks))
	for _, name := range l.names {
		snapshot[name] = l.tanks[name].Clone()
	}
	return snapshot
}

// TotalVolume returns the sum of all content across all tanks
func (l *TankLedger) TotalVolume() float64 {
	total := 0.0
	for _, name := range l.names {
		total += l.tanks[name].TotalVolume()
	}
	return total
}

// VolumeByGrade aggregates content across tanks per grade
func (l *TankLedger) VolumeByGrade() map[entities.GradeName]float64 {
	byGrade := make(map[entities.GradeName]float64)
	for _, name := range l.names {
		for grade, volume := range l.tanks[name].Content {
			byGrade[grade] += volume
		}
	}
	return byGrade
}

func (l *TankLedger) tank(name string) (*entities.Tank, error) {
	t, exists := l.tanks[name]
	if !exists {
		return nil, fmt.Errorf("tank not found: %s", name)
	}
	return t, nil
}
