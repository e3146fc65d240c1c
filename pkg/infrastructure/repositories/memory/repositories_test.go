package memory

import (
	"testing"

	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/shopspring/decimal"
)

func TestCrudeRepository_SaveAndGet(t *testing.T) {
	repo := NewCrudeRepository()

	crude, err := entities.NewCrude("CrudeX", decimal.NewFromInt(5), "Ras Tanura")
	if err != nil {
		t.Fatalf("NewCrude failed: %v", err)
	}
	if err := repo.SaveCrude(crude); err != nil {
		t.Fatalf("SaveCrude failed: %v", err)
	}

	got, err := repo.GetCrude("CrudeX")
	if err != nil {
		t.Fatalf("GetCrude failed: %v", err)
	}
	if got.Name != "CrudeX" {
		t.Errorf("got crude %s, want CrudeX", got.Name)
	}

	if _, err := repo.GetCrude("Missing"); err == nil {
		t.Error("expected error for missing crude, got nil")
	}
}

func TestTankRepository_GetAllIsNameOrdered(t *testing.T) {
	repo := NewTankRepository()

	for _, name := range []string{"T3", "T1", "T2"} {
		tank, err := entities.NewTank(name, "refinery", 100, nil)
		if err != nil {
			t.Fatalf("NewTank failed: %v", err)
		}
		if err := repo.SaveTank(tank); err != nil {
			t.Fatalf("SaveTank failed: %v", err)
		}
	}

	tanks, err := repo.GetAllTanks()
	if err != nil {
		t.Fatalf("GetAllTanks failed: %v", err)
	}
	if len(tanks) != 3 {
		t.Fatalf("expected 3 tanks, got %d", len(tanks))
	}
	for i, want := range []string{"T1", "T2", "T3"} {
		if tanks[i].Name != want {
			t.Errorf("tanks[%d] = %s, want %s", i, tanks[i].Name, want)
		}
	}
}

func TestRouteRepository_LookupByPair(t *testing.T) {
	repo := NewRouteRepository()

	route, err := entities.NewRoute("Bonny", "refinery", 10, decimal.Zero)
	if err != nil {
		t.Fatalf("NewRoute failed: %v", err)
	}
	if err := repo.SaveRoute(route); err != nil {
		t.Fatalf("SaveRoute failed: %v", err)
	}

	got, err := repo.GetRoute("Bonny", "refinery")
	if err != nil {
		t.Fatalf("GetRoute failed: %v", err)
	}
	if got.TravelDays != 10 {
		t.Errorf("travel days = %d, want 10", got.TravelDays)
	}

	if _, err := repo.GetRoute("refinery", "Bonny"); err == nil {
		t.Error("routes are directed; reverse lookup should fail")
	}
}

func TestPlanRepository_ReplacesByDay(t *testing.T) {
	repo := NewPlanRepository()

	if err := repo.SavePlan(&entities.DailyPlan{Day: 0, Inventory: 100}); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}
	if err := repo.SavePlan(&entities.DailyPlan{Day: 0, Inventory: 80}); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}

	plan, err := repo.GetPlan(0)
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if plan.Inventory != 80 {
		t.Errorf("inventory = %v, want replacement value 80", plan.Inventory)
	}

	plans, err := repo.GetAllPlans()
	if err != nil {
		t.Fatalf("GetAllPlans failed: %v", err)
	}
	if len(plans) != 1 {
		t.Errorf("expected 1 plan after replacement, got %d", len(plans))
	}
}

func TestRepositories_RejectNilSaves(t *testing.T) {
	if err := NewCrudeRepository().SaveCrude(nil); err == nil {
		t.Error("SaveCrude(nil) should fail")
	}
	if err := NewVesselRepository().SaveVessel(nil); err == nil {
		t.Error("SaveVessel(nil) should fail")
	}
	if err := NewRequirementRepository().SaveRequirement(nil); err == nil {
		t.Error("SaveRequirement(nil) should fail")
	}
}
