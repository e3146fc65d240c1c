package services

import (
	"fmt"
	"sort"

	"github.com/avasquez/refinery/pkg/domain/entities"
)

// Validation categories reported by the consistency validator
const (
	CategoryTanks   = "tanks"
	CategoryRecipes = "recipes"
	CategoryVessels = "vessels"
)

// ConsistencyValidator cross-checks that tanks, recipes, and vessel cargo
// only reference grades present in the crude catalog
type ConsistencyValidator struct{}

// NewConsistencyValidator creates a new consistency validator
func NewConsistencyValidator() *ConsistencyValidator {
	return &ConsistencyValidator{}
}

// ValidationReport maps a category to its ordered list of issue strings.
// Empty lists signal no issues for that category.
type ValidationReport struct {
	Issues map[string][]string
}

// IsClean reports whether no category has issues
func (r *ValidationReport) IsClean() bool {
	for _, issues := range r.Issues {
		if len(issues) > 0 {
			return false
		}
	}
	return true
}

// AllIssues returns every issue across categories in category order
func (r *ValidationReport) AllIssues() []string {
	var all []string
	for _, category := range []string{CategoryTanks, CategoryRecipes, CategoryVessels} {
		all = append(all, r.Issues[category]...)
	}
	return all
}

// Validate checks every grade reference in the entity set against the crude
// catalog. It does not mutate; callers decide whether a non-empty report
// aborts the run or only warns.
func (v *ConsistencyValidator) Validate(
	catalog entities.CrudeCatalog,
	tanks []*entities.Tank,
	recipes []*entities.BlendingRecipe,
	vessels []*entities.Vessel,
) *ValidationReport {
	report := &ValidationReport{
		Issues: map[string][]string{
			CategoryTanks:   {},
			CategoryRecipes: {},
			CategoryVessels: {},
		},
	}

	for _, tank := range sortedTanks(tanks) {
		for _, grade := range sortedGrades(tank.Content) {
			if !catalog.Has(grade) {
				report.Issues[CategoryTanks] = append(report.Issues[CategoryTanks],
					fmt.Sprintf("tank %s holds unknown grade %s", tank.Name, grade))
			}
		}
	}

	for _, recipe := range sortedRecipes(recipes) {
		if !catalog.Has(recipe.PrimaryGrade) {
			report.Issues[CategoryRecipes] = append(report.Issues[CategoryRecipes],
				fmt.Sprintf("recipe %s references unknown primary grade %s", recipe.Name, recipe.PrimaryGrade))
		}
		if recipe.HasSecondary() && !catalog.Has(recipe.SecondaryGrade) {
			report.Issues[CategoryRecipes] = append(report.Issues[CategoryRecipes],
				fmt.Sprintf("recipe %s references unknown secondary grade %s", recipe.Name, recipe.SecondaryGrade))
		}
	}

	for _, vessel := range sortedVessels(vessels) {
		for i, parcel := range vessel.Cargo {
			if !catalog.Has(parcel.Grade) {
				report.Issues[CategoryVessels] = append(report.Issues[CategoryVessels],
					fmt.Sprintf("vessel %s cargo parcel %d carries unknown grade %s", vessel.VesselID, i, parcel.Grade))
			}
		}
	}

	return report
}

func sortedTanks(tanks []*entities.Tank) []*entities.Tank {
	out := make([]*entities.Tank, len(tanks))
	copy(out, tanks)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sortedRecipes(recipes []*entities.BlendingRecipe) []*entities.BlendingRecipe {
	out := make([]*entities.BlendingRecipe, len(recipes))
	copy(out, recipes)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sortedVessels(vessels []*entities.Vessel) []*entities.Vessel {
	out := make([]*entities.Vessel, len(vessels))
	copy(out, vessels)
	sort.Slice(out, func(i, j int) bool { return out[i].VesselID < out[j].VesselID })
	return out
}

func sortedGrades(content map[entities.GradeName]float64) []entities.GradeName {
	grades := make([]entities.GradeName, 0, len(content))
	for grade := range content {
		grades = append(grades, grade)
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i] < grades[j] })
	return grades
}
