package repositories

import "github.com/avasquez/refinery/pkg/domain/entities"

// RouteRepository provides access to the route network
type RouteRepository interface {
	GetRoute(origin, destination string) (*entities.Route, error)
	GetAllRoutes() ([]*entities.Route, error)
	SaveRoute(route *entities.Route) error
}
