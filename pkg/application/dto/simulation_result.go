package dto

import (
	"time"

	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/avasquez/refinery/pkg/sim"
	"github.com/shopspring/decimal"
)

// SimulationResult contains the complete output of a scheduling run
type SimulationResult struct {
	Plans       []entities.DailyPlan
	Discharges  []sim.DischargeRecord
	FinalTanks  map[string]entities.Tank
	TotalMargin decimal.Decimal
	CharterCost decimal.Decimal // summed cost of every vessel in the run
	Issues      map[string][]string
	Days        int
	ComputedAt  time.Time
}

// NetMargin returns the run's margin after charter costs
func (r *SimulationResult) NetMargin() decimal.Decimal {
	return r.TotalMargin.Sub(r.CharterCost)
}

// TotalShortfall sums discharge volume that found no tank capacity
func (r *SimulationResult) TotalShortfall() float64 {
	total := 0.0
	for _, record := range r.Discharges {
		total += record.Shortfall()
	}
	return total
}
