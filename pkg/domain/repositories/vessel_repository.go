package repositories

import "github.com/avasquez/refinery/pkg/domain/entities"

// VesselRepository provides access to chartered vessels with their cargo and
// route-segment lists
type VesselRepository interface {
	GetVessel(vesselID string) (*entities.Vessel, error)
	GetAllVessels() ([]*entities.Vessel, error)
	SaveVessel(vessel *entities.Vessel) error
}
