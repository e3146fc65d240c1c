package repositories

import "github.com/avasquez/refinery/pkg/domain/entities"

// CrudeRepository provides access to the crude catalog
type CrudeRepository interface {
	GetCrude(name entities.GradeName) (*entities.Crude, error)
	GetAllCrudes() ([]*entities.Crude, error)
	SaveCrude(crude *entities.Crude) error
}
