package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/avasquez/refinery/pkg/domain/repositories"
)

// RouteRepository is an in-memory implementation of repositories.RouteRepository
type RouteRepository struct {
	mutex  sync.RWMutex
	routes map[string]*entities.Route
}

// NewRouteRepository creates a new in-memory route repository
func NewRouteRepository() *RouteRepository {
	return &RouteRepository{
		routes: make(map[string]*entities.Route),
	}
}

// Verify interface compliance
var _ repositories.RouteRepository = (*RouteRepository)(nil)

// GetRoute retrieves the route between an origin and destination
func (r *RouteRepository) GetRoute(origin, destination string) (*entities.Route, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	route, exists := r.routes[origin+"→"+destination]
	if !exists {
		return nil, fmt.Errorf("route not found: %s to %s", origin, destination)
	}
	return route, nil
}

// GetAllRoutes retrieves every route in key order
func (r *RouteRepository) GetAllRoutes() ([]*entities.Route, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	routes := make([]*entities.Route, 0, len(r.routes))
	for _, route := range r.routes {
		routes = append(routes, route)
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].Key() < routes[j].Key() })
	return routes, nil
}

// SaveRoute stores a route, replacing any existing entry for the pair
func (r *RouteRepository) SaveRoute(route *entities.Route) error {
	if route == nil {
		return fmt.Errorf("cannot save nil route")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.routes[route.Key()] = route
	return nil
}
