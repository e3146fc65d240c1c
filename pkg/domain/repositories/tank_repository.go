package repositories

import "github.com/avasquez/refinery/pkg/domain/entities"

// TankRepository provides access to tank state between simulation runs
type TankRepository interface {
	GetTank(name string) (*entities.Tank, error)
	GetAllTanks() ([]*entities.Tank, error)
	SaveTank(tank *entities.Tank) error
}
