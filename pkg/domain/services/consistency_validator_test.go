package services

import (
	"strings"
	"testing"

	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/shopspring/decimal"
)

func testCatalog(t *testing.T, grades ...entities.GradeName) entities.CrudeCatalog {
	t.Helper()
	crudes := make([]*entities.Crude, 0, len(grades))
	for _, grade := range grades {
		crude, err := entities.NewCrude(grade, decimal.NewFromInt(3), "origin")
		if err != nil {
			t.Fatalf("NewCrude failed: %v", err)
		}
		crudes = append(crudes, crude)
	}
	catalog, err := entities.NewCrudeCatalog(crudes)
	if err != nil {
		t.Fatalf("NewCrudeCatalog failed: %v", err)
	}
	return catalog
}

func TestValidator_CleanEntitySet(t *testing.T) {
	catalog := testCatalog(t, "CrudeX", "CrudeY")

	tank, _ := entities.NewTank("T1", "refinery", 100, map[entities.GradeName]float64{"CrudeX": 10})
	recipe, _ := entities.NewBlendingRecipe("blend", "CrudeX", "CrudeY", 20, 0.5)

	report := NewConsistencyValidator().Validate(catalog,
		[]*entities.Tank{tank}, []*entities.BlendingRecipe{recipe}, nil)

	if !report.IsClean() {
		t.Errorf("expected clean report, got issues: %v", report.AllIssues())
	}
	for _, category := range []string{CategoryTanks, CategoryRecipes, CategoryVessels} {
		if _, ok := report.Issues[category]; !ok {
			t.Errorf("category %s missing from report", category)
		}
	}
}

func TestValidator_ReportsUnknownGradesPerCategory(t *testing.T) {
	catalog := testCatalog(t, "CrudeX")

	tank, _ := entities.NewTank("T1", "refinery", 100, map[entities.GradeName]float64{"Phantom": 10})
	recipe, _ := entities.NewBlendingRecipe("blend", "CrudeX", "Ghost", 20, 0.5)
	vessel, _ := entities.NewVessel("V1", 50, decimal.Zero,
		[]entities.FeedstockParcel{{Grade: "Spectre", Volume: 10}}, nil)

	report := NewConsistencyValidator().Validate(catalog,
		[]*entities.Tank{tank}, []*entities.BlendingRecipe{recipe}, []*entities.Vessel{vessel})

	if report.IsClean() {
		t.Fatal("expected issues, got clean report")
	}

	if issues := report.Issues[CategoryTanks]; len(issues) != 1 || !strings.Contains(issues[0], "Phantom") {
		t.Errorf("tank issues = %v, want one mentioning Phantom", issues)
	}
	if issues := report.Issues[CategoryRecipes]; len(issues) != 1 || !strings.Contains(issues[0], "Ghost") {
		t.Errorf("recipe issues = %v, want one mentioning Ghost", issues)
	}
	if issues := report.Issues[CategoryVessels]; len(issues) != 1 || !strings.Contains(issues[0], "Spectre") {
		t.Errorf("vessel issues = %v, want one mentioning Spectre", issues)
	}
}

func TestValidator_IssueOrderIsDeterministic(t *testing.T) {
	catalog := testCatalog(t, "CrudeX")

	tankB, _ := entities.NewTank("B", "refinery", 100, map[entities.GradeName]float64{"Zed": 10})
	tankA, _ := entities.NewTank("A", "refinery", 100, map[entities.GradeName]float64{"Yak": 10})

	report := NewConsistencyValidator().Validate(catalog,
		[]*entities.Tank{tankB, tankA}, nil, nil)

	issues := report.Issues[CategoryTanks]
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}
	if !strings.Contains(issues[0], "tank A") || !strings.Contains(issues[1], "tank B") {
		t.Errorf("issues not in tank-name order: %v", issues)
	}
}
