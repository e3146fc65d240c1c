package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/avasquez/refinery/pkg/application/dto"
	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/avasquez/refinery/pkg/domain/repositories"
	"github.com/avasquez/refinery/pkg/domain/services"
	"github.com/avasquez/refinery/pkg/infrastructure/events"
	"github.com/avasquez/refinery/pkg/sim"
	"github.com/shopspring/decimal"
)

// SchedulingService coordinates validation, simulation, and persistence of
// daily plans
type SchedulingService struct {
	crudeRepo  repositories.CrudeRepository
	plantRepo  repositories.PlantRepository
	tankRepo   repositories.TankRepository
	recipeRepo repositories.RecipeRepository
	vesselRepo repositories.VesselRepository
	planRepo   repositories.PlanRepository
	validator  *services.ConsistencyValidator
	eventLog   events.Log
}

// NewSchedulingService creates a scheduling service over the given
// repositories. The event log may be nil when no trail is wanted.
func NewSchedulingService(
	crudeRepo repositories.CrudeRepository,
	plantRepo repositories.PlantRepository,
	tankRepo repositories.TankRepository,
	recipeRepo repositories.RecipeRepository,
	vesselRepo repositories.VesselRepository,
	planRepo repositories.PlanRepository,
	eventLog events.Log,
) *SchedulingService {
	return &SchedulingService{
		crudeRepo:  crudeRepo,
		plantRepo:  plantRepo,
		tankRepo:   tankRepo,
		recipeRepo: recipeRepo,
		vesselRepo: vesselRepo,
		planRepo:   planRepo,
		validator:  services.NewConsistencyValidator(),
		eventLog:   eventLog,
	}
}

// RunOptions controls a scheduling run
type RunOptions struct {
	Days int

	// Plant selects the aggregate throughput ceiling. Empty means no plant
	// cap is applied.
	Plant string

	// WarnOnly downgrades validation issues from a hard failure to report
	// entries carried on the result.
	WarnOnly bool
}

// RunSchedule loads the entity set, validates it, simulates the requested
// number of days, and persists each computed plan
func (ss *SchedulingService) RunSchedule(ctx context.Context, opts RunOptions) (*dto.SimulationResult, error) {
	if opts.Days <= 0 {
		return nil, fmt.Errorf("day count must be positive, got %d", opts.Days)
	}

	crudes, err := ss.crudeRepo.GetAllCrudes()
	if err != nil {
		return nil, fmt.Errorf("failed to load crudes: %w", err)
	}
	tanks, err := ss.tankRepo.GetAllTanks()
	if err != nil {
		return nil, fmt.Errorf("failed to load tanks: %w", err)
	}
	recipes, err := ss.recipeRepo.GetAllRecipes()
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	vessels, err := ss.vesselRepo.GetAllVessels()
	if err != nil {
		return nil, fmt.Errorf("failed to load vessels: %w", err)
	}

	var plant *entities.Plant
	if opts.Plant != "" {
		plant, err = ss.plantRepo.GetPlant(opts.Plant)
		if err != nil {
			return nil, fmt.Errorf("failed to load plant %s: %w", opts.Plant, err)
		}
	}

	catalog, err := entities.NewCrudeCatalog(crudes)
	if err != nil {
		return nil, err
	}

	report := ss.validator.Validate(catalog, tanks, recipes, vessels)
	if !report.IsClean() && !opts.WarnOnly {
		return nil, fmt.Errorf("entity set failed validation: %d issue(s), first: %s",
			len(report.AllIssues()), report.AllIssues()[0])
	}

	simulator, err := sim.NewSimulator(sim.Config{
		Crudes:  crudes,
		Tanks:   tanks,
		Recipes: recipes,
		Vessels: vessels,
		Plant:   plant,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build simulator: %w", err)
	}

	plans, err := simulator.Run(ctx, opts.Days)
	if err != nil {
		return nil, fmt.Errorf("simulation stopped: %w", err)
	}

	total := decimal.Zero
	for i := range plans {
		plan := plans[i]
		total = total.Add(plan.DailyMargin)
		if err := ss.planRepo.SavePlan(&plan); err != nil {
			return nil, fmt.Errorf("failed to save plan for day %d: %w", plan.Day, err)
		}
		ss.publish("schedule", events.PlanBuiltEvent, events.PlanBuilt{
			Day:       plan.Day,
			Inventory: plan.Inventory,
			Margin:    plan.DailyMargin.String(),
		})
	}

	for _, record := range simulator.Discharges() {
		ss.publish("vessel/"+record.VesselID, events.VesselDischargedEvent, events.VesselDischarged{
			VesselID: record.VesselID,
			Grade:    record.Grade,
			Volume:   record.Volume,
			Placed:   record.Placed,
			Day:      record.Day,
			LateBy:   record.LateBy,
		})
		if shortfall := record.Shortfall(); shortfall > sim.Epsilon {
			ss.publish("vessel/"+record.VesselID, events.CapacityShortfallEvent, events.CapacityShortfall{
				VesselID:  record.VesselID,
				Grade:     record.Grade,
				Shortfall: shortfall,
				Day:       record.Day,
			})
		}
	}

	ss.publish("schedule", events.RunCompletedEvent, events.RunCompleted{
		Days:        opts.Days,
		TotalMargin: total.String(),
	})

	charterCost := decimal.Zero
	for _, vessel := range vessels {
		charterCost = charterCost.Add(vessel.Cost)
	}

	return &dto.SimulationResult{
		Plans:       plans,
		Discharges:  simulator.Discharges(),
		FinalTanks:  simulator.Ledger().Snapshot(),
		TotalMargin: total,
		CharterCost: charterCost,
		Issues:      report.Issues,
		Days:        opts.Days,
		ComputedAt:  time.Now(),
	}, nil
}

func (ss *SchedulingService) publish(streamID, eventType string, data interface{}) {
	if ss.eventLog == nil {
		return
	}
	// Event persistence never fails a run that already computed its plans.
	_ = ss.eventLog.Append(streamID, eventType, data)
}
