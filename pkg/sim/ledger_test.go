package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/avasquez/refinery/pkg/domain/entities"
)

func TestLedger_DepositWithinCapacity(t *testing.T) {
	ledger, err := NewTankLedger([]*entities.Tank{
		MustTank("T1", "refinery", 100, map[entities.GradeName]float64{"CrudeX": 50}),
	})
	if err != nil {
		t.Fatalf("NewTankLedger failed: %v", err)
	}

	if err := ledger.Deposit("T1", "CrudeX", 30); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}

	if got := ledger.Available("CrudeX"); math.Abs(got-80) > Epsilon {
		t.Errorf("available CrudeX = %v, want 80", got)
	}
}

func TestLedger_DepositOverflowIsAtomic(t *testing.T) {
	ledger, err := NewTankLedger([]*entities.Tank{
		MustTank("T1", "refinery", 100, map[entities.GradeName]float64{"CrudeX": 90}),
	})
	if err != nil {
		t.Fatalf("NewTankLedger failed: %v", err)
	}

	err = ledger.Deposit("T1", "CrudeY", 20)
	if err == nil {
		t.Fatal("expected CapacityExceeded error, got nil")
	}

	var capErr *CapacityExceededError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapacityExceededError, got %T: %v", err, err)
	}
	if math.Abs(capErr.Shortfall()-10) > Epsilon {
		t.Errorf("shortfall = %v, want 10", capErr.Shortfall())
	}

	// Rejection leaves content unchanged
	if got := ledger.Available("CrudeY"); got != 0 {
		t.Errorf("CrudeY after rejected deposit = %v, want 0", got)
	}
	if got := ledger.Available("CrudeX"); math.Abs(got-90) > Epsilon {
		t.Errorf("CrudeX after rejected deposit = %v, want 90", got)
	}
}

func TestLedger_WithdrawToleratesRounding(t *testing.T) {
	ledger, err := NewTankLedger([]*entities.Tank{
		MustTank("T1", "refinery", 100, map[entities.GradeName]float64{"CrudeX": 50}),
	})
	if err != nil {
		t.Fatalf("NewTankLedger failed: %v", err)
	}

	// Within epsilon of the full stock: drains completely
	if err := ledger.Withdraw("T1", "CrudeX", 50+1e-9); err != nil {
		t.Fatalf("withdraw within tolerance failed: %v", err)
	}
	if got := ledger.Available("CrudeX"); got != 0 {
		t.Errorf("CrudeX after drain = %v, want 0", got)
	}
}

func TestLedger_WithdrawBeyondStock(t *testing.T) {
	ledger, err := NewTankLedger([]*entities.Tank{
		MustTank("T1", "refinery", 100, map[entities.GradeName]float64{"CrudeX": 50}),
	})
	if err != nil {
		t.Fatalf("NewTankLedger failed: %v", err)
	}

	err = ledger.Withdraw("T1", "CrudeX", 60)
	var volErr *InsufficientVolumeError
	if !errors.As(err, &volErr) {
		t.Fatalf("expected InsufficientVolumeError, got %T: %v", err, err)
	}
	if math.Abs(volErr.Available-50) > Epsilon {
		t.Errorf("available in error = %v, want 50", volErr.Available)
	}
}

func TestLedger_WithdrawAcrossDrainsTanksInNameOrder(t *testing.T) {
	ledger, err := NewTankLedger([]*entities.Tank{
		MustTank("T2", "refinery", 100, map[entities.GradeName]float64{"CrudeX": 40}),
		MustTank("T1", "refinery", 100, map[entities.GradeName]float64{"CrudeX": 30}),
	})
	if err != nil {
		t.Fatalf("NewTankLedger failed: %v", err)
	}

	draws, err := ledger.WithdrawAcross("CrudeX", 50)
	if err != nil {
		t.Fatalf("WithdrawAcross failed: %v", err)
	}

	if len(draws) != 2 {
		t.Fatalf("expected 2 draws, got %d", len(draws))
	}
	if draws[0].Tank != "T1" || math.Abs(draws[0].Volume-30) > Epsilon {
		t.Errorf("first draw = %+v, want T1/30", draws[0])
	}
	if draws[1].Tank != "T2" || math.Abs(draws[1].Volume-20) > Epsilon {
		t.Errorf("second draw = %+v, want T2/20", draws[1])
	}
}

func TestLedger_SnapshotIsIsolated(t *testing.T) {
	ledger, err := NewTankLedger([]*entities.Tank{
		MustTank("T1", "refinery", 100, map[entities.GradeName]float64{"CrudeX": 50}),
	})
	if err != nil {
		t.Fatalf("NewTankLedger failed: %v", err)
	}

	snapshot := ledger.Snapshot()
	snapshot["T1"].Content["CrudeX"] = 999

	if got := ledger.Available("CrudeX"); math.Abs(got-50) > Epsilon {
		t.Errorf("ledger mutated through snapshot: CrudeX = %v, want 50", got)
	}
}

func TestLedger_CapacityInvariantAfterMutations(t *testing.T) {
	ledger, err := NewTankLedger([]*entities.Tank{
		MustTank("T1", "refinery", 100, map[entities.GradeName]float64{"CrudeX": 60}),
		MustTank("T2", "refinery", 80, map[entities.GradeName]float64{"CrudeY": 20}),
	})
	if err != nil {
		t.Fatalf("NewTankLedger failed: %v", err)
	}

	_ = ledger.Deposit("T2", "CrudeX", 55)
	_, _ = ledger.WithdrawAcross("CrudeX", 40)
	_ = ledger.Deposit("T1", "CrudeY", 70)

	for name, tank := range ledger.Snapshot() {
		if tank.TotalVolume() > tank.Capacity+Epsilon {
			t.Errorf("tank %s over capacity: %v > %v", name, tank.TotalVolume(), tank.Capacity)
		}
		for grade, volume := range tank.Content {
			if volume < -Epsilon {
				t.Errorf("tank %s grade %s negative: %v", name, grade, volume)
			}
		}
	}
}
