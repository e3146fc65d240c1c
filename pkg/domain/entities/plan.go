package entities

import (
	"github.com/shopspring/decimal"
)

// DailyPlan records one simulated day's operating numbers. Built exactly once
// per day; consumers must treat it as immutable.
type DailyPlan struct {
	Day              int
	ProcessingRates  map[string]float64  // recipe name → allocated rate
	BlendingDetails  map[string][]string // per-recipe and per-vessel diagnostics
	Inventory        float64             // total volume across all tanks
	InventoryByGrade map[GradeName]float64
	Tanks            map[string]Tank // end-of-day tank snapshot
	DailyMargin      decimal.Decimal
}

// TotalRate returns the aggregate processing throughput for the day
func (p *DailyPlan) TotalRate() float64 {
	total := 0.0
	for _, rate := range p.ProcessingRates {
		total += rate
	}
	return total
}
