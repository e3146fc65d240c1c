package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultRouteCost is charged for routes defined without an explicit cost
var DefaultRouteCost = decimal.NewFromInt(25000)

// Route is a directed edge between two locations. The origin/destination
// pair is unique within a route set.
type Route struct {
	Origin      string
	Destination string
	TravelDays  int
	Cost        decimal.Decimal
}

// NewRoute creates a validated Route. A zero cost falls back to
// DefaultRouteCost.
func NewRoute(origin, destination string, travelDays int, cost decimal.Decimal) (*Route, error) {
	if origin == "" {
		return nil, fmt.Errorf("route origin cannot be empty")
	}
	if destination == "" {
		return nil, fmt.Errorf("route destination cannot be empty")
	}
	if origin == destination {
		return nil, fmt.Errorf("route origin and destination must differ, got %s", origin)
	}
	if travelDays < 0 {
		return nil, fmt.Errorf("route travel days cannot be negative, got %d", travelDays)
	}

	if cost.IsZero() {
		cost = DefaultRouteCost
	}

	return &Route{
		Origin:      origin,
		Destination: destination,
		TravelDays:  travelDays,
		Cost:        cost,
	}, nil
}

// Key returns the unique origin→destination identifier for the route
func (r *Route) Key() string {
	return r.Origin + "→" + r.Destination
}
