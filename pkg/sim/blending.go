package sim

import (
	"fmt"
	"sort"

	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/shopspring/decimal"
)

// RecipeAllocation is one recipe's share of a day's processing throughput
type RecipeAllocation struct {
	Recipe          string
	Rate            float64
	PrimaryVolume   float64
	SecondaryVolume float64
	Draws           []Draw
	Details         []string
}

// Allocator computes feasible per-recipe processing rates for one day,
// consuming grade volumes from the ledger as it goes.
type Allocator struct {
	catalog entities.CrudeCatalog
}

// NewAllocator creates an allocator pricing blends against the crude catalog
func NewAllocator(catalog entities.CrudeCatalog) *Allocator {
	return &Allocator{catalog: catalog}
}

// AllocateDay assigns a processing rate to every recipe against the current
// ledger state. Recipes are visited in ascending name order; each recipe's
// withdrawal happens in the same pass, so later recipes see reduced
// availability. When plant is non-nil and aggregate throughput exceeds its
// capacity, rates are scaled down proportionally and the freed volume is
// returned to the tanks it came from.
func (a *Allocator) AllocateDay(ledger *TankLedger, recipes []*entities.BlendingRecipe, plant *entities.Plant) ([]RecipeAllocation, decimal.Decimal, error) {
	ordered := make([]*entities.BlendingRecipe, len(recipes))
	copy(ordered, recipes)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	allocations := make([]RecipeAllocation, 0, len(ordered))
	for _, recipe := range ordered {
		allocation, err := a.allocateRecipe(ledger, recipe)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("allocating recipe %s: %w", recipe.Name, err)
		}
		allocations = append(allocations, allocation)
	}

	if plant != nil {
		if err := a.applyPlantCap(ledger, plant, allocations); err != nil {
			return nil, decimal.Zero, err
		}
	}

	margin := decimal.Zero
	for i := range allocations {
		blended, err := a.blendedMargin(ordered[i])
		if err != nil {
			return nil, decimal.Zero, err
		}
		margin = margin.Add(decimal.NewFromFloat(allocations[i].Rate).Mul(blended))
	}

	return allocations, margin, nil
}

// allocateRecipe computes the maximum feasible rate for one recipe and
// withdraws the consumed volumes immediately.
func (a *Allocator) allocateRecipe(ledger *TankLedger, recipe *entities.BlendingRecipe) (RecipeAllocation, error) {
	allocation := RecipeAllocation{Recipe: recipe.Name}

	availablePrimary := ledger.Available(recipe.PrimaryGrade)
	rate := recipe.MaxRate
	constraint := "max_rate"

	fraction := recipe.PrimaryFraction
	switch {
	case !recipe.HasSecondary() || fraction == 1.0:
		// Pure-primary blend; the primary stock is the only grade constraint.
		if availablePrimary < rate {
			rate = availablePrimary
			constraint = "primary availability"
		}
	case fraction == 0.0:
		availableSecondary := ledger.Available(recipe.SecondaryGrade)
		if availableSecondary < rate {
			rate = availableSecondary
			constraint = "secondary availability"
		}
	default:
		availableSecondary := ledger.Available(recipe.SecondaryGrade)
		if byPrimary := availablePrimary / fraction; byPrimary < rate {
			rate = byPrimary
			constraint = "primary availability"
		}
		if bySecondary := availableSecondary / (1 - fraction); bySecondary < rate {
			rate = bySecondary
			constraint = "secondary availability"
		}
	}

	if rate < Epsilon {
		rate = 0
		allocation.Details = append(allocation.Details,
			fmt.Sprintf("rate 0: no feasible volume (limited by %s)", constraint))
		return allocation, nil
	}

	primaryVolume := rate * fraction
	secondaryVolume := rate * (1 - fraction)
	if !recipe.HasSecondary() {
		primaryVolume = rate
		secondaryVolume = 0
	}

	if primaryVolume > 0 {
		draws, err := ledger.WithdrawAcross(recipe.PrimaryGrade, primaryVolume)
		if err != nil {
			return allocation, err
		}
		allocation.Draws = append(allocation.Draws, draws...)
	}
	if secondaryVolume > 0 {
		draws, err := ledger.WithdrawAcross(recipe.SecondaryGrade, secondaryVolume)
		if err != nil {
			return allocation, err
		}
		allocation.Draws = append(allocation.Draws, draws...)
	}

	allocation.Rate = rate
	allocation.PrimaryVolume = primaryVolume
	allocation.SecondaryVolume = secondaryVolume
	allocation.Details = append(allocation.Details,
		fmt.Sprintf("rate %.4f limited by %s", rate, constraint))

	return allocation, nil
}

// applyPlantCap scales allocated rates down proportionally when aggregate
// throughput exceeds plant capacity, depositing the freed volumes back into
// the tanks they were withdrawn from. No recipe is cut entirely unless its
// rate was already zero.
func (a *Allocator) applyPlantCap(ledger *TankLedger, plant *entities.Plant, allocations []RecipeAllocation) error {
	total := 0.0
	for i := range allocations {
		total += allocations[i].Rate
	}
	if total <= plant.Capacity+Epsilon {
		return nil
	}

	factor := plant.Capacity / total
	for i := range allocations {
		alloc := &allocations[i]
		if alloc.Rate == 0 {
			continue
		}
		for _, draw := range alloc.Draws {
			giveBack := draw.Volume * (1 - factor)
			if giveBack <= 0 {
				continue
			}
			// The volume was withdrawn this pass, so the deposit cannot overflow.
			if err := ledger.Deposit(draw.Tank, draw.Grade, giveBack); err != nil {
				return fmt.Errorf("returning scaled-down volume to tank %s: %w", draw.Tank, err)
			}
		}
		for j := range alloc.Draws {
			alloc.Draws[j].Volume *= factor
		}
		alloc.Rate *= factor
		alloc.PrimaryVolume *= factor
		alloc.SecondaryVolume *= factor
		alloc.Details = append(alloc.Details,
			fmt.Sprintf("scaled by %.4f to honor plant %s capacity %.2f", factor, plant.Name, plant.Capacity))
	}

	return nil
}

// blendedMargin weights the grade margins by their blend fractions
func (a *Allocator) blendedMargin(recipe *entities.BlendingRecipe) (decimal.Decimal, error) {
	primary, ok := a.catalog[recipe.PrimaryGrade]
	if !ok {
		return decimal.Zero, &UnknownGradeError{Grade: recipe.PrimaryGrade, Context: "recipe " + recipe.Name}
	}
	if !recipe.HasSecondary() {
		return primary.Margin, nil
	}

	secondary, ok := a.catalog[recipe.SecondaryGrade]
	if !ok {
		return decimal.Zero, &UnknownGradeError{Grade: recipe.SecondaryGrade, Context: "recipe " + recipe.Name}
	}

	fraction := decimal.NewFromFloat(recipe.PrimaryFraction)
	return primary.Margin.Mul(fraction).
		Add(secondary.Margin.Mul(decimal.NewFromInt(1).Sub(fraction))), nil
}
