package scenario

import (
	"fmt"
	"os"

	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Document is the YAML shape of a scenario file. Every section is optional;
// an omitted section simply yields an empty entity list.
type Document struct {
	Plant        *plantDoc        `yaml:"plant"`
	Crudes       []crudeDoc       `yaml:"crudes"`
	Tanks        []tankDoc        `yaml:"tanks"`
	Recipes      []recipeDoc      `yaml:"recipes"`
	Routes       []routeDoc       `yaml:"routes"`
	Requirements []requirementDoc `yaml:"requirements"`
	Vessels      []vesselDoc      `yaml:"vessels"`
}

type plantDoc struct {
	Name              string  `yaml:"name"`
	Capacity          float64 `yaml:"capacity"`
	BaseCrudeCapacity float64 `yaml:"base_crude_capacity"`
	MaxInventory      float64 `yaml:"max_inventory"`
}

type crudeDoc struct {
	Name   string `yaml:"name"`
	Margin string `yaml:"margin"`
	Origin string `yaml:"origin"`
}

type tankDoc struct {
	Name     string             `yaml:"name"`
	Plant    string             `yaml:"plant"`
	Capacity float64            `yaml:"capacity"`
	Content  map[string]float64 `yaml:"content"`
}

type recipeDoc struct {
	Name            string  `yaml:"name"`
	PrimaryGrade    string  `yaml:"primary_grade"`
	SecondaryGrade  string  `yaml:"secondary_grade"`
	MaxRate         float64 `yaml:"max_rate"`
	PrimaryFraction float64 `yaml:"primary_fraction"`
}

type routeDoc struct {
	Origin      string `yaml:"origin"`
	Destination string `yaml:"destination"`
	TravelDays  int    `yaml:"travel_days"`
	Cost        string `yaml:"cost"`
}

type requirementDoc struct {
	Grade             string  `yaml:"grade"`
	Volume            float64 `yaml:"volume"`
	Origin            string  `yaml:"origin"`
	LaydaysStart      int     `yaml:"laydays_start"`
	LaydaysEnd        int     `yaml:"laydays_end"`
	RequiredArrivalBy int     `yaml:"required_arrival_by"`
}

type vesselDoc struct {
	ID       string       `yaml:"id"`
	Capacity float64      `yaml:"capacity"`
	Cost     string       `yaml:"cost"`
	Cargo    []parcelDoc  `yaml:"cargo"`
	Segments []segmentDoc `yaml:"segments"`
}

type parcelDoc struct {
	Grade             string  `yaml:"grade"`
	Volume            float64 `yaml:"volume"`
	Origin            string  `yaml:"origin"`
	RequiredArrivalBy int     `yaml:"required_arrival_by"`
}

type segmentDoc struct {
	Action      string `yaml:"action"`
	DayStart    int    `yaml:"day_start"`
	DayEnd      int    `yaml:"day_end"`
	Origin      string `yaml:"origin"`
	Destination string `yaml:"destination"`
}

// Scenario holds a fully-constructed entity set loaded from a document
type Scenario struct {
	Plant        *entities.Plant
	Crudes       []*entities.Crude
	Tanks        []*entities.Tank
	Recipes      []*entities.BlendingRecipe
	Routes       []*entities.Route
	Requirements []*entities.FeedstockRequirement
	Vessels      []*entities.Vessel
}

// LoadFile reads and parses a scenario from a YAML file
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Load(data)
}

// Load parses a scenario from YAML bytes. Entities are built through their
// validating constructors, so a structurally valid document can still fail
// here.
func Load(data []byte) (*Scenario, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	scenario := &Scenario{}

	if doc.Plant != nil {
		plant, err := entities.NewPlant(doc.Plant.Name, doc.Plant.Capacity,
			doc.Plant.BaseCrudeCapacity, doc.Plant.MaxInventory)
		if err != nil {
			return nil, fmt.Errorf("plant %s: %w", doc.Plant.Name, err)
		}
		scenario.Plant = plant
	}

	for _, c := range doc.Crudes {
		margin, err := parseDecimal(c.Margin)
		if err != nil {
			return nil, fmt.Errorf("crude %s: invalid margin: %w", c.Name, err)
		}
		crude, err := entities.NewCrude(entities.GradeName(c.Name), margin, c.Origin)
		if err != nil {
			return nil, fmt.Errorf("crude %s: %w", c.Name, err)
		}
		scenario.Crudes = append(scenario.Crudes, crude)
	}

	for _, td := range doc.Tanks {
		content := make(map[entities.GradeName]float64, len(td.Content))
		for grade, volume := range td.Content {
			content[entities.GradeName(grade)] = volume
		}
		tank, err := entities.NewTank(td.Name, td.Plant, td.Capacity, content)
		if err != nil {
			return nil, fmt.Errorf("tank %s: %w", td.Name, err)
		}
		scenario.Tanks = append(scenario.Tanks, tank)
	}

	for _, r := range doc.Recipes {
		recipe, err := entities.NewBlendingRecipe(r.Name,
			entities.GradeName(r.PrimaryGrade), entities.GradeName(r.SecondaryGrade),
			r.MaxRate, r.PrimaryFraction)
		if err != nil {
			return nil, fmt.Errorf("recipe %s: %w", r.Name, err)
		}
		scenario.Recipes = append(scenario.Recipes, recipe)
	}

	for _, r := range doc.Routes {
		cost, err := parseDecimal(r.Cost)
		if err != nil {
			return nil, fmt.Errorf("route %s to %s: invalid cost: %w", r.Origin, r.Destination, err)
		}
		route, err := entities.NewRoute(r.Origin, r.Destination, r.TravelDays, cost)
		if err != nil {
			return nil, fmt.Errorf("route %s to %s: %w", r.Origin, r.Destination, err)
		}
		scenario.Routes = append(scenario.Routes, route)
	}

	for i, r := range doc.Requirements {
		req, err := entities.NewFeedstockRequirement(
			entities.GradeName(r.Grade), r.Volume, r.Origin,
			entities.DayRange{Start: r.LaydaysStart, End: r.LaydaysEnd},
			r.RequiredArrivalBy)
		if err != nil {
			return nil, fmt.Errorf("requirement %d: %w", i, err)
		}
		scenario.Requirements = append(scenario.Requirements, req)
	}

	for _, v := range doc.Vessels {
		vessel, err := buildVessel(v)
		if err != nil {
			return nil, fmt.Errorf("vessel %s: %w", v.ID, err)
		}
		scenario.Vessels = append(scenario.Vessels, vessel)
	}

	return scenario, nil
}

func buildVessel(doc vesselDoc) (*entities.Vessel, error) {
	cost, err := parseDecimal(doc.Cost)
	if err != nil {
		return nil, fmt.Errorf("invalid cost: %w", err)
	}

	cargo := make([]entities.FeedstockParcel, 0, len(doc.Cargo))
	for _, p := range doc.Cargo {
		cargo = append(cargo, entities.FeedstockParcel{
			Grade:             entities.GradeName(p.Grade),
			Volume:            p.Volume,
			Origin:            p.Origin,
			RequiredArrivalBy: p.RequiredArrivalBy,
		})
	}

	segments := make([]entities.RouteSegment, 0, len(doc.Segments))
	for i, s := range doc.Segments {
		action, err := parseAction(s.Action)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		segments = append(segments, entities.RouteSegment{
			Action:      action,
			DayStart:    s.DayStart,
			DayEnd:      s.DayEnd,
			Origin:      s.Origin,
			Destination: s.Destination,
		})
	}

	return entities.NewVessel(doc.ID, doc.Capacity, cost, cargo, segments)
}

func parseAction(name string) (entities.SegmentAction, error) {
	switch name {
	case "load":
		return entities.ActionLoad, nil
	case "transit":
		return entities.ActionTransit, nil
	case "wait":
		return entities.ActionWait, nil
	case "discharge":
		return entities.ActionDischarge, nil
	default:
		return 0, fmt.Errorf("unknown segment action %q", name)
	}
}

func parseDecimal(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}
