package entities

import "fmt"

// DayRange is an inclusive [Start,End] interval of simulation days
type DayRange struct {
	Start int
	End   int
}

// Contains reports whether day falls inside the range
func (r DayRange) Contains(day int) bool {
	return day >= r.Start && day <= r.End
}

// FeedstockRequirement represents a procurement need for a crude grade, not
// yet bound to a vessel.
type FeedstockRequirement struct {
	Grade             GradeName
	Volume            float64
	Origin            string
	AllowedLDR        DayRange // laydate range during which loading may occur
	RequiredArrivalBy int      // day the volume must be delivered by
}

// NewFeedstockRequirement creates a validated FeedstockRequirement
func NewFeedstockRequirement(grade GradeName, volume float64, origin string, allowedLDR DayRange, requiredArrivalBy int) (*FeedstockRequirement, error) {
	if grade == "" {
		return nil, fmt.Errorf("requirement grade cannot be empty")
	}
	if volume <= 0 {
		return nil, fmt.Errorf("requirement volume must be positive, got %v", volume)
	}
	if origin == "" {
		return nil, fmt.Errorf("requirement origin cannot be empty")
	}
	if allowedLDR.Start > allowedLDR.End {
		return nil, fmt.Errorf("laydate range start %d cannot be after end %d", allowedLDR.Start, allowedLDR.End)
	}

	return &FeedstockRequirement{
		Grade:             grade,
		Volume:            volume,
		Origin:            origin,
		AllowedLDR:        allowedLDR,
		RequiredArrivalBy: requiredArrivalBy,
	}, nil
}

// FeedstockParcel is a cargo lot of one grade. A parcel is unfulfilled until
// assigned to a vessel; assignment sets VesselID and the parcel joins that
// vessel's cargo list.
type FeedstockParcel struct {
	Grade             GradeName
	Volume            float64
	LDR               DayRange // loading day interval actually used
	Origin            string
	VesselID          string // empty until assigned
	RequiredArrivalBy int    // carried over from the originating requirement, 0 when none
}

// Assigned reports whether the parcel is bound to a vessel
func (p *FeedstockParcel) Assigned() bool {
	return p.VesselID != ""
}
