package sim

import (
	"fmt"

	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/shopspring/decimal"
)

// Helpers for building simulation fixtures. They panic on invalid input and
// are intended for tests and examples, not production wiring.

// MustCrude builds a crude or panics
func MustCrude(name entities.GradeName, margin float64, origin string) *entities.Crude {
	crude, err := entities.NewCrude(name, decimal.NewFromFloat(margin), origin)
	if err != nil {
		panic(fmt.Sprintf("MustCrude: %v", err))
	}
	return crude
}

// MustTank builds a tank or panics
func MustTank(name, plant string, capacity float64, content map[entities.GradeName]float64) *entities.Tank {
	tank, err := entities.NewTank(name, plant, capacity, content)
	if err != nil {
		panic(fmt.Sprintf("MustTank: %v", err))
	}
	return tank
}

// MustRecipe builds a blending recipe or panics
func MustRecipe(name string, primary, secondary entities.GradeName, maxRate, primaryFraction float64) *entities.BlendingRecipe {
	recipe, err := entities.NewBlendingRecipe(name, primary, secondary, maxRate, primaryFraction)
	if err != nil {
		panic(fmt.Sprintf("MustRecipe: %v", err))
	}
	return recipe
}

// MustVessel builds a chartered vessel or panics
func MustVessel(vesselID string, capacity float64, cargo []entities.FeedstockParcel, segments []entities.RouteSegment) *entities.Vessel {
	vessel, err := entities.NewVessel(vesselID, capacity, decimal.Zero, cargo, segments)
	if err != nil {
		panic(fmt.Sprintf("MustVessel: %v", err))
	}
	return vessel
}

// DeliveryVessel builds a single-parcel vessel that sails immediately and
// discharges at the destination on arrivalDay.
func DeliveryVessel(vesselID string, grade entities.GradeName, volume float64, destination string, arrivalDay int) *entities.Vessel {
	cargo := []entities.FeedstockParcel{{
		Grade:  grade,
		Volume: volume,
		LDR:    entities.DayRange{Start: 0, End: 0},
		Origin: "origin",
	}}
	segments := []entities.RouteSegment{
		{Action: entities.ActionTransit, DayStart: 0, DayEnd: arrivalDay, Origin: "origin", Destination: destination},
		{Action: entities.ActionDischarge, DayStart: arrivalDay, DayEnd: arrivalDay, Origin: destination, Destination: destination},
	}
	return MustVessel(vesselID, volume, cargo, segments)
}
