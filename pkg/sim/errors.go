package sim

import (
	"fmt"

	"github.com/avasquez/refinery/pkg/domain/entities"
)

// Epsilon absorbs floating-point rounding in volume comparisons
const Epsilon = 1e-6

// CapacityExceededError signals a deposit that would overflow a tank. The
// deposit is rejected atomically; Shortfall reports how much volume did not
// fit so the caller can record it as unfulfilled.
type CapacityExceededError struct {
	Tank      string
	Grade     entities.GradeName
	Requested float64
	Headroom  float64
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("tank %s: deposit of %v %s exceeds capacity, headroom %v",
		e.Tank, e.Requested, e.Grade, e.Headroom)
}

// Shortfall returns the volume that could not be placed
func (e *CapacityExceededError) Shortfall() float64 {
	return e.Requested - e.Headroom
}

// InsufficientVolumeError signals a withdrawal beyond available stock. This
// indicates a modeling or data bug and is surfaced, never retried.
type InsufficientVolumeError struct {
	Tank      string
	Grade     entities.GradeName
	Requested float64
	Available float64
}

func (e *InsufficientVolumeError) Error() string {
	return fmt.Sprintf("tank %s: withdrawal of %v %s exceeds available %v",
		e.Tank, e.Requested, e.Grade, e.Available)
}

// UnknownGradeError signals a reference to a grade absent from the crude
// catalog. This is a fatal configuration error.
type UnknownGradeError struct {
	Grade   entities.GradeName
	Context string
}

func (e *UnknownGradeError) Error() string {
	return fmt.Sprintf("unknown crude grade %s referenced by %s", e.Grade, e.Context)
}
