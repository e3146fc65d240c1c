package repositories

import "github.com/avasquez/refinery/pkg/domain/entities"

// PlanRepository stores computed daily plans for reporting collaborators
type PlanRepository interface {
	GetPlan(day int) (*entities.DailyPlan, error)
	GetAllPlans() ([]*entities.DailyPlan, error)
	SavePlan(plan *entities.DailyPlan) error
}
