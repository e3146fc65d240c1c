package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GradeName identifies a crude-oil variety and is the unit of inventory accounting
type GradeName string

// Crude represents a crude-oil grade with its processing economics
type Crude struct {
	Name   GradeName
	Margin decimal.Decimal // profit per unit volume processed
	Origin string
}

// NewCrude creates a validated Crude
func NewCrude(name GradeName, margin decimal.Decimal, origin string) (*Crude, error) {
	if string(name) == "" {
		return nil, fmt.Errorf("crude name cannot be empty")
	}

	return &Crude{
		Name:   name,
		Margin: margin,
		Origin: origin,
	}, nil
}

// CrudeCatalog indexes crudes by grade name for reference checks
type CrudeCatalog map[GradeName]*Crude

// NewCrudeCatalog builds a catalog from a crude list, rejecting duplicate grades
func NewCrudeCatalog(crudes []*Crude) (CrudeCatalog, error) {
	catalog := make(CrudeCatalog, len(crudes))
	for _, c := range crudes {
		if _, exists := catalog[c.Name]; exists {
			return nil, fmt.Errorf("duplicate crude grade: %s", c.Name)
		}
		catalog[c.Name] = c
	}
	return catalog, nil
}

// Has reports whether the catalog contains the grade
func (c CrudeCatalog) Has(grade GradeName) bool {
	_, ok := c[grade]
	return ok
}
