package sim

import (
	"fmt"
	"sort"

	"github.com/avasquez/refinery/pkg/domain/entities"
)

// DischargeRecord reports one cargo parcel transferred to tank inventory on a
// given day. Placed may be below Volume when the destination tanks ran out of
// capacity; the difference is the shortfall the day's plan must report.
type DischargeRecord struct {
	VesselID string
	Grade    entities.GradeName
	Volume   float64
	Placed   float64
	Deposits []Draw
	Day      int
	LateBy   int // days past the parcel's required arrival, 0 when on time
}

// Shortfall returns the cargo volume that found no tank capacity
func (r DischargeRecord) Shortfall() float64 {
	return r.Volume - r.Placed
}

// TransitMachine advances vessels through their route segments one simulated
// day at a time and transfers cargo into the tank ledger on discharge days.
type TransitMachine struct {
	ledger  *TankLedger
	catalog entities.CrudeCatalog
}

// NewTransitMachine creates a transit machine depositing into the given ledger
func NewTransitMachine(ledger *TankLedger, catalog entities.CrudeCatalog) *TransitMachine {
	return &TransitMachine{
		ledger:  ledger,
		catalog: catalog,
	}
}

// AdvanceAll advances every non-complete vessel by one day, in ascending
// vessel-id order so vessels competing for the same tank capacity resolve
// deterministically. It returns the discharge records for the day.
func (m *TransitMachine) AdvanceAll(day int, vessels []*entities.Vessel) ([]DischargeRecord, error) {
	ordered := make([]*entities.Vessel, len(vessels))
	copy(ordered, vessels)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].VesselID < ordered[j].VesselID })

	var records []DischargeRecord
	for _, vessel := range ordered {
		if vessel.State == entities.VesselComplete {
			continue
		}
		dayRecords, err := m.advance(day, vessel)
		if err != nil {
			return nil, fmt.Errorf("advancing vessel %s on day %d: %w", vessel.VesselID, day, err)
		}
		records = append(records, dayRecords...)
	}

	return records, nil
}

// advance moves one vessel through day. Segment windows are compared against
// the current day: travel windows leave inventory untouched, wait windows
// accrue days held, and a discharge segment's terminal day transfers every
// cargo parcel into the destination tanks.
func (m *TransitMachine) advance(day int, vessel *entities.Vessel) ([]DischargeRecord, error) {
	var records []DischargeRecord

	// Several segments can elapse on the same day: a transit leg ending on
	// day d hands straight into a discharge segment whose terminal day is d.
	for vessel.CurrentSegment < len(vessel.Segments) {
		segment := vessel.Segments[vessel.CurrentSegment]

		if day < segment.DayStart {
			// Not yet due; a vessel that has never departed stays chartered.
			if vessel.CurrentSegment == 0 {
				vessel.State = entities.VesselChartered
			} else {
				vessel.State = entities.VesselWaiting
			}
			return records, nil
		}

		switch segment.Action {
		case entities.ActionLoad:
			vessel.State = entities.VesselChartered
		case entities.ActionTransit:
			vessel.State = entities.VesselInTransit
		case entities.ActionWait:
			vessel.State = entities.VesselWaiting
			vessel.DaysHeld++
		case entities.ActionDischarge:
			if day == segment.DayEnd {
				discharged, err := m.discharge(day, vessel, segment)
				if err != nil {
					return nil, err
				}
				records = append(records, discharged...)
			} else {
				vessel.State = entities.VesselWaiting
				vessel.DaysHeld++
			}
		}

		if day < segment.DayEnd {
			return records, nil
		}
		m.completeSegment(vessel)
	}

	if len(vessel.Cargo) == 0 {
		vessel.State = entities.VesselComplete
	}
	return records, nil
}

// discharge transfers all cargo parcels into tanks at the segment
// destination, splitting each parcel across tanks in ascending name order.
// An unknown cargo grade is a configuration error and propagates.
func (m *TransitMachine) discharge(day int, vessel *entities.Vessel, segment entities.RouteSegment) ([]DischargeRecord, error) {
	vessel.State = entities.VesselDischarging

	var records []DischargeRecord
	for _, parcel := range vessel.Cargo {
		if !m.catalog.Has(parcel.Grade) {
			return nil, &UnknownGradeError{
				Grade:   parcel.Grade,
				Context: fmt.Sprintf("vessel %s cargo", vessel.VesselID),
			}
		}

		record := DischargeRecord{
			VesselID: vessel.VesselID,
			Grade:    parcel.Grade,
			Volume:   parcel.Volume,
			Day:      day,
		}
		if parcel.RequiredArrivalBy > 0 && day > parcel.RequiredArrivalBy {
			record.LateBy = day - parcel.RequiredArrivalBy
		}

		remaining := parcel.Volume
		for _, tank := range m.ledger.TanksAt(segment.Destination) {
			if remaining <= Epsilon {
				break
			}
			headroom, err := m.ledger.Headroom(tank)
			if err != nil {
				return nil, err
			}
			if headroom <= Epsilon {
				continue
			}
			fit := remaining
			if fit > headroom {
				fit = headroom
			}
			if err := m.ledger.Deposit(tank, parcel.Grade, fit); err != nil {
				return nil, err
			}
			record.Deposits = append(record.Deposits, Draw{Tank: tank, Grade: parcel.Grade, Volume: fit})
			record.Placed += fit
			remaining -= fit
		}

		records = append(records, record)
	}

	// Cargo is withdrawn from the vessel regardless of tank shortfalls; the
	// unplaced volume is reported through the records, never re-held.
	vessel.Cargo = nil

	return records, nil
}

// completeSegment moves the vessel to its next segment and refreshes the
// projected arrival day from the remaining route plan.
func (m *TransitMachine) completeSegment(vessel *entities.Vessel) {
	vessel.CurrentSegment++
	if vessel.CurrentSegment < len(vessel.Segments) {
		vessel.ArrivalDay = vessel.Segments[len(vessel.Segments)-1].DayEnd
	}
}
