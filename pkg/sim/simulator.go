package sim

import (
	"context"
	"fmt"

	"github.com/avasquez/refinery/pkg/domain/entities"
)

// Config holds the fully-materialized entity collections a simulation
// consumes. The simulator performs no I/O; persistence is the caller's
// collaborator.
type Config struct {
	Crudes  []*entities.Crude
	Tanks   []*entities.Tank
	Recipes []*entities.BlendingRecipe
	Vessels []*entities.Vessel
	Plant   *entities.Plant // optional aggregate throughput ceiling
}

// Simulator advances the refinery one day at a time: vessel transit, cargo
// discharge, blending allocation, and margin accounting. Days are strictly
// ordered; each day's ledger and vessel state feed the next.
type Simulator struct {
	ledger  *TankLedger
	transit *TransitMachine
	alloc   *Allocator
	recipes []*entities.BlendingRecipe
	vessels []*entities.Vessel
	plant   *entities.Plant
	day     int

	discharges []DischargeRecord
}

// NewSimulator builds a simulator over deep copies of the configured tanks
// and vessels, leaving the caller's entities untouched.
func NewSimulator(cfg Config) (*Simulator, error) {
	catalog, err := entities.NewCrudeCatalog(cfg.Crudes)
	if err != nil {
		return nil, err
	}

	ledger, err := NewTankLedger(cfg.Tanks)
	if err != nil {
		return nil, err
	}

	vessels := make([]*entities.Vessel, len(cfg.Vessels))
	for i, vessel := range cfg.Vessels {
		clone := *vessel
		clone.Cargo = append([]entities.FeedstockParcel(nil), vessel.Cargo...)
		clone.Segments = append([]entities.RouteSegment(nil), vessel.Segments...)
		vessels[i] = &clone
	}

	return &Simulator{
		ledger:  ledger,
		transit: NewTransitMachine(ledger, catalog),
		alloc:   NewAllocator(catalog),
		recipes: cfg.Recipes,
		vessels: vessels,
		plant:   cfg.Plant,
	}, nil
}

// Run simulates the given number of days and returns one DailyPlan per day.
// Cancellation stops the day loop; plans already computed remain valid and
// are returned alongside the context error.
func (s *Simulator) Run(ctx context.Context, days int) ([]entities.DailyPlan, error) {
	if days < 0 {
		return nil, fmt.Errorf("day count cannot be negative, got %d", days)
	}

	plans := make([]entities.DailyPlan, 0, days)
	for i := 0; i < days; i++ {
		if err := ctx.Err(); err != nil {
			return plans, err
		}
		plan, err := s.Step()
		if err != nil {
			return plans, err
		}
		plans = append(plans, plan)
	}

	return plans, nil
}

// Step simulates a single day: vessels advance and discharge first, then the
// allocator consumes the post-deposit ledger, then the day's plan is
// assembled from a snapshot taken after all mutations complete.
func (s *Simulator) Step() (entities.DailyPlan, error) {
	day := s.day

	records, err := s.transit.AdvanceAll(day, s.vessels)
	if err != nil {
		return entities.DailyPlan{}, fmt.Errorf("day %d: %w", day, err)
	}
	s.discharges = append(s.discharges, records...)

	allocations, margin, err := s.alloc.AllocateDay(s.ledger, s.recipes, s.plant)
	if err != nil {
		return entities.DailyPlan{}, fmt.Errorf("day %d: %w", day, err)
	}

	plan := entities.DailyPlan{
		Day:              day,
		ProcessingRates:  make(map[string]float64, len(allocations)),
		BlendingDetails:  make(map[string][]string),
		Inventory:        s.ledger.TotalVolume(),
		InventoryByGrade: s.ledger.VolumeByGrade(),
		Tanks:            s.ledger.Snapshot(),
		DailyMargin:      margin,
	}

	for _, allocation := range allocations {
		plan.ProcessingRates[allocation.Recipe] = allocation.Rate
		if len(allocation.Details) > 0 {
			plan.BlendingDetails[allocation.Recipe] = allocation.Details
		}
	}

	for _, record := range records {
		key := "vessel:" + record.VesselID
		if record.LateBy > 0 {
			plan.BlendingDetails[key] = append(plan.BlendingDetails[key],
				fmt.Sprintf("parcel %s arrived day %d, %d day(s) past required arrival", record.Grade, record.Day, record.LateBy))
		}
		if shortfall := record.Shortfall(); shortfall > Epsilon {
			plan.BlendingDetails[key] = append(plan.BlendingDetails[key],
				fmt.Sprintf("discharge shortfall: %.4f of %s found no tank capacity", shortfall, record.Grade))
		}
	}

	s.day++
	return plan, nil
}

// Day returns the next day index the simulator will compute
func (s *Simulator) Day() int {
	return s.day
}

// Vessels exposes the simulator's working vessel states
func (s *Simulator) Vessels() []*entities.Vessel {
	return s.vessels
}

// Ledger exposes the simulator's tank ledger
func (s *Simulator) Ledger() *TankLedger {
	return s.ledger
}

// Discharges returns every discharge recorded so far, in day order
func (s *Simulator) Discharges() []DischargeRecord {
	return s.discharges
}
