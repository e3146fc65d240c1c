package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/avasquez/refinery/pkg/domain/repositories"
)

// PlanRepository is an in-memory implementation of repositories.PlanRepository
type PlanRepository struct {
	mutex sync.RWMutex
	plans map[int]*entities.DailyPlan
}

// NewPlanRepository creates a new in-memory plan repository
func NewPlanRepository() *PlanRepository {
	return &PlanRepository{
		plans: make(map[int]*entities.DailyPlan),
	}
}

// Verify interface compliance
var _ repositories.PlanRepository = (*PlanRepository)(nil)

// GetPlan retrieves the plan for a day
func (r *PlanRepository) GetPlan(day int) (*entities.DailyPlan, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	plan, exists := r.plans[day]
	if !exists {
		return nil, fmt.Errorf("no plan for day %d", day)
	}
	return plan, nil
}

// GetAllPlans retrieves every plan in day order
func (r *PlanRepository) GetAllPlans() ([]*entities.DailyPlan, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	plans := make([]*entities.DailyPlan, 0, len(r.plans))
	for _, plan := range r.plans {
		plans = append(plans, plan)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].Day < plans[j].Day })
	return plans, nil
}

// SavePlan stores a plan, replacing any existing entry for the day
func (r *PlanRepository) SavePlan(plan *entities.DailyPlan) error {
	if plan == nil {
		return fmt.Errorf("cannot save nil plan")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.plans[plan.Day] = plan
	return nil
}
