package events

import (
	"github.com/avasquez/refinery/pkg/domain/entities"
)

const (
	VesselDischargedEvent  = "vessel.discharged"
	CapacityShortfallEvent = "tank.capacity_shortfall"
	PlanBuiltEvent         = "plan.built"
	RunCompletedEvent      = "run.completed"
)

// VesselDischarged records a cargo parcel transferred into tank inventory
type VesselDischarged struct {
	VesselID string             `json:"vessel_id"`
	Grade    entities.GradeName `json:"grade"`
	Volume   float64            `json:"volume"`
	Placed   float64            `json:"placed"`
	Day      int                `json:"day"`
	LateBy   int                `json:"late_by,omitempty"`
}

// CapacityShortfall records discharge volume that found no tank capacity
type CapacityShortfall struct {
	VesselID  string             `json:"vessel_id"`
	Grade     entities.GradeName `json:"grade"`
	Shortfall float64            `json:"shortfall"`
	Day       int                `json:"day"`
}

// PlanBuilt records one computed daily plan
type PlanBuilt struct {
	Day       int     `json:"day"`
	Inventory float64 `json:"inventory"`
	Margin    string  `json:"margin"`
}

// RunCompleted records the end of a scheduling run
type RunCompleted struct {
	Days        int    `json:"days"`
	TotalMargin string `json:"total_margin"`
}
