package scheduling

import (
	"context"
	"math"
	"testing"

	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/avasquez/refinery/pkg/infrastructure/events"
	"github.com/avasquez/refinery/pkg/infrastructure/repositories/memory"
	"github.com/shopspring/decimal"
)

type fixture struct {
	crudes  *memory.CrudeRepository
	plants  *memory.PlantRepository
	tanks   *memory.TankRepository
	recipes *memory.RecipeRepository
	vessels *memory.VesselRepository
	plans   *memory.PlanRepository
	log     *events.MemoryLog
	service *SchedulingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		crudes:  memory.NewCrudeRepository(),
		plants:  memory.NewPlantRepository(),
		tanks:   memory.NewTankRepository(),
		recipes: memory.NewRecipeRepository(),
		vessels: memory.NewVesselRepository(),
		plans:   memory.NewPlanRepository(),
		log:     events.NewMemoryLog(),
	}
	f.service = NewSchedulingService(f.crudes, f.plants, f.tanks, f.recipes, f.vessels, f.plans, f.log)
	return f
}

func (f *fixture) seedBaseline(t *testing.T) {
	t.Helper()

	crude, err := entities.NewCrude("CrudeX", decimal.NewFromInt(5), "Ras Tanura")
	if err != nil {
		t.Fatalf("NewCrude failed: %v", err)
	}
	if err := f.crudes.SaveCrude(crude); err != nil {
		t.Fatalf("SaveCrude failed: %v", err)
	}

	tank, err := entities.NewTank("T1", "refinery", 100, map[entities.GradeName]float64{"CrudeX": 50})
	if err != nil {
		t.Fatalf("NewTank failed: %v", err)
	}
	if err := f.tanks.SaveTank(tank); err != nil {
		t.Fatalf("SaveTank failed: %v", err)
	}

	recipe, err := entities.NewBlendingRecipe("run-x", "CrudeX", "", 20, 1.0)
	if err != nil {
		t.Fatalf("NewBlendingRecipe failed: %v", err)
	}
	if err := f.recipes.SaveRecipe(recipe); err != nil {
		t.Fatalf("SaveRecipe failed: %v", err)
	}
}

func TestRunSchedule_ComputesAndPersistsPlans(t *testing.T) {
	f := newFixture(t)
	f.seedBaseline(t)

	result, err := f.service.RunSchedule(context.Background(), RunOptions{Days: 3})
	if err != nil {
		t.Fatalf("RunSchedule failed: %v", err)
	}

	if len(result.Plans) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(result.Plans))
	}

	// 50 units at max rate 20 runs 20, 20, 10.
	wantRates := []float64{20, 20, 10}
	for i, want := range wantRates {
		if got := result.Plans[i].ProcessingRates["run-x"]; math.Abs(got-want) > 1e-9 {
			t.Errorf("day %d rate = %v, want %v", i, got, want)
		}
	}

	// 50 units at margin 5.
	if want := decimal.NewFromInt(250); !result.TotalMargin.Equal(want) {
		t.Errorf("total margin = %s, want %s", result.TotalMargin, want)
	}

	saved, err := f.plans.GetAllPlans()
	if err != nil {
		t.Fatalf("GetAllPlans failed: %v", err)
	}
	if len(saved) != 3 {
		t.Errorf("expected 3 persisted plans, got %d", len(saved))
	}
	if saved[2].Day != 2 {
		t.Errorf("persisted plan days out of order: last = %d, want 2", saved[2].Day)
	}
}

func TestRunSchedule_ValidationAbortsByDefault(t *testing.T) {
	f := newFixture(t)
	f.seedBaseline(t)

	tank, err := entities.NewTank("T9", "refinery", 100, map[entities.GradeName]float64{"Phantom": 10})
	if err != nil {
		t.Fatalf("NewTank failed: %v", err)
	}
	if err := f.tanks.SaveTank(tank); err != nil {
		t.Fatalf("SaveTank failed: %v", err)
	}

	if _, err := f.service.RunSchedule(context.Background(), RunOptions{Days: 3}); err == nil {
		t.Error("expected validation failure, got nil")
	}
}

func TestRunSchedule_WarnOnlyCarriesIssuesOnResult(t *testing.T) {
	f := newFixture(t)
	f.seedBaseline(t)

	tank, err := entities.NewTank("T9", "refinery", 100, map[entities.GradeName]float64{"Phantom": 10})
	if err != nil {
		t.Fatalf("NewTank failed: %v", err)
	}
	if err := f.tanks.SaveTank(tank); err != nil {
		t.Fatalf("SaveTank failed: %v", err)
	}

	result, err := f.service.RunSchedule(context.Background(), RunOptions{Days: 1, WarnOnly: true})
	if err != nil {
		t.Fatalf("RunSchedule failed: %v", err)
	}
	if len(result.Issues["tanks"]) != 1 {
		t.Errorf("expected 1 tank issue on result, got %v", result.Issues)
	}
}

func TestRunSchedule_AppliesPlantCap(t *testing.T) {
	f := newFixture(t)
	f.seedBaseline(t)

	plant, err := entities.NewPlant("refinery", 10, 0, 0)
	if err != nil {
		t.Fatalf("NewPlant failed: %v", err)
	}
	if err := f.plants.SavePlant(plant); err != nil {
		t.Fatalf("SavePlant failed: %v", err)
	}

	result, err := f.service.RunSchedule(context.Background(), RunOptions{Days: 1, Plant: "refinery"})
	if err != nil {
		t.Fatalf("RunSchedule failed: %v", err)
	}
	if got := result.Plans[0].ProcessingRates["run-x"]; math.Abs(got-10) > 1e-9 {
		t.Errorf("capped rate = %v, want 10", got)
	}
}

func TestRunSchedule_PublishesEventTrail(t *testing.T) {
	f := newFixture(t)
	f.seedBaseline(t)

	if _, err := f.service.RunSchedule(context.Background(), RunOptions{Days: 2}); err != nil {
		t.Fatalf("RunSchedule failed: %v", err)
	}

	stream, err := f.log.Stream("schedule")
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}

	// Two plan.built events then run.completed.
	if len(stream) != 3 {
		t.Fatalf("expected 3 events on schedule stream, got %d", len(stream))
	}
	if stream[0].Type != events.PlanBuiltEvent || stream[2].Type != events.RunCompletedEvent {
		t.Errorf("unexpected event order: %s, %s, %s", stream[0].Type, stream[1].Type, stream[2].Type)
	}
}

func TestRunSchedule_RejectsNonPositiveDays(t *testing.T) {
	f := newFixture(t)
	f.seedBaseline(t)

	if _, err := f.service.RunSchedule(context.Background(), RunOptions{Days: 0}); err == nil {
		t.Error("expected error for zero days, got nil")
	}
}
