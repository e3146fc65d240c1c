package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// VesselState tracks a vessel through its charter lifecycle
type VesselState int

const (
	VesselChartered VesselState = iota
	VesselInTransit
	VesselWaiting
	VesselDischarging
	VesselComplete
)

// String method for VesselState enum
func (s VesselState) String() string {
	switch s {
	case VesselChartered:
		return "Chartered"
	case VesselInTransit:
		return "InTransit"
	case VesselWaiting:
		return "Waiting"
	case VesselDischarging:
		return "Discharging"
	case VesselComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// SegmentAction tags what a route segment does when its window elapses
type SegmentAction int

const (
	ActionLoad SegmentAction = iota
	ActionTransit
	ActionWait
	ActionDischarge
)

// String method for SegmentAction enum
func (a SegmentAction) String() string {
	switch a {
	case ActionLoad:
		return "Load"
	case ActionTransit:
		return "Transit"
	case ActionWait:
		return "Wait"
	case ActionDischarge:
		return "Discharge"
	default:
		return "Unknown"
	}
}

// RouteSegment is one leg of a vessel's route plan with its day window
type RouteSegment struct {
	Action      SegmentAction
	DayStart    int
	DayEnd      int
	Origin      string
	Destination string
}

// Vessel is a chartered carrier working through an ordered list of route
// segments with a cargo manifest of feedstock parcels.
type Vessel struct {
	VesselID           string
	ArrivalDay         int // projected day of the next port call
	OriginalArrivalDay int // baseline before any delays
	Capacity           float64
	Cost               decimal.Decimal
	Cargo              []FeedstockParcel
	Segments           []RouteSegment
	CurrentSegment     int
	DaysHeld           int // cumulative waiting days accrued
	State              VesselState
}

// NewVessel creates a validated Vessel in the chartered state. The cargo
// parcels are bound to the vessel and the arrival day is projected from the
// final segment.
func NewVessel(vesselID string, capacity float64, cost decimal.Decimal, cargo []FeedstockParcel, segments []RouteSegment) (*Vessel, error) {
	if vesselID == "" {
		return nil, fmt.Errorf("vessel ID cannot be empty")
	}
	if capacity < 0 {
		return nil, fmt.Errorf("vessel capacity cannot be negative, got %v", capacity)
	}

	total := 0.0
	for _, parcel := range cargo {
		total += parcel.Volume
	}
	if total > capacity {
		return nil, fmt.Errorf("vessel %s: cargo volume %v exceeds capacity %v", vesselID, total, capacity)
	}

	for i := 1; i < len(segments); i++ {
		if segments[i].DayStart < segments[i-1].DayEnd {
			return nil, fmt.Errorf("vessel %s: segment %d starts on day %d before segment %d ends on day %d",
				vesselID, i, segments[i].DayStart, i-1, segments[i-1].DayEnd)
		}
	}

	arrival := 0
	if len(segments) > 0 {
		arrival = segments[len(segments)-1].DayEnd
	}

	boundCargo := make([]FeedstockParcel, len(cargo))
	copy(boundCargo, cargo)
	for i := range boundCargo {
		boundCargo[i].VesselID = vesselID
	}

	return &Vessel{
		VesselID:           vesselID,
		ArrivalDay:         arrival,
		OriginalArrivalDay: arrival,
		Capacity:           capacity,
		Cost:               cost,
		Cargo:              boundCargo,
		Segments:           segments,
		State:              VesselChartered,
	}, nil
}

// CargoVolume returns the total volume across the vessel's cargo parcels
func (v *Vessel) CargoVolume() float64 {
	total := 0.0
	for _, parcel := range v.Cargo {
		total += parcel.Volume
	}
	return total
}

// Delayed reports whether the projected arrival slipped past the baseline
func (v *Vessel) Delayed() bool {
	return v.ArrivalDay > v.OriginalArrivalDay
}
