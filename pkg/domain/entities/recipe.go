package entities

import "fmt"

// InvalidRecipeError indicates a blending recipe whose definition is
// internally inconsistent. Rejected at load time, never inferred around.
type InvalidRecipeError struct {
	Recipe string
	Reason string
}

func (e *InvalidRecipeError) Error() string {
	return fmt.Sprintf("invalid blending recipe %s: %s", e.Recipe, e.Reason)
}

// BlendingRecipe defines how one or two crude grades combine into processed
// throughput. PrimaryFraction is the primary grade's share of the blend; the
// remainder is the secondary grade's share when one is present.
type BlendingRecipe struct {
	Name            string
	PrimaryGrade    GradeName
	SecondaryGrade  GradeName // empty means a pure-grade recipe
	MaxRate         float64   // volume/day ceiling
	PrimaryFraction float64
}

// NewBlendingRecipe creates a validated BlendingRecipe. A recipe without a
// secondary grade must have a primary fraction of exactly 1.0.
func NewBlendingRecipe(name string, primary, secondary GradeName, maxRate, primaryFraction float64) (*BlendingRecipe, error) {
	if name == "" {
		return nil, &InvalidRecipeError{Recipe: name, Reason: "recipe name cannot be empty"}
	}
	if primary == "" {
		return nil, &InvalidRecipeError{Recipe: name, Reason: "primary grade cannot be empty"}
	}
	if maxRate < 0 {
		return nil, &InvalidRecipeError{Recipe: name, Reason: fmt.Sprintf("max rate cannot be negative, got %v", maxRate)}
	}
	if primaryFraction < 0 || primaryFraction > 1 {
		return nil, &InvalidRecipeError{Recipe: name, Reason: fmt.Sprintf("primary fraction must be within [0,1], got %v", primaryFraction)}
	}
	if secondary == "" && primaryFraction != 1.0 {
		return nil, &InvalidRecipeError{Recipe: name, Reason: fmt.Sprintf("pure-grade recipe requires primary fraction 1.0, got %v", primaryFraction)}
	}
	if secondary == primary {
		return nil, &InvalidRecipeError{Recipe: name, Reason: "secondary grade must differ from primary grade"}
	}

	return &BlendingRecipe{
		Name:            name,
		PrimaryGrade:    primary,
		SecondaryGrade:  secondary,
		MaxRate:         maxRate,
		PrimaryFraction: primaryFraction,
	}, nil
}

// HasSecondary reports whether the recipe blends a second grade
func (r *BlendingRecipe) HasSecondary() bool {
	return r.SecondaryGrade != ""
}

// SecondaryFraction returns the secondary grade's share of the blend
func (r *BlendingRecipe) SecondaryFraction() float64 {
	if !r.HasSecondary() {
		return 0
	}
	return 1 - r.PrimaryFraction
}
