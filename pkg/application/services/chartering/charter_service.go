package chartering

import (
	"fmt"
	"sort"
	"strings"

	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/avasquez/refinery/pkg/domain/repositories"
	"github.com/google/uuid"
)

// CharterService turns feedstock requirements into chartered vessels with
// load, transit and discharge legs planned against known routes.
type CharterService struct {
	routeRepo repositories.RouteRepository
	idFn      func() string
}

// NewCharterService creates a charter service backed by a route repository
func NewCharterService(routeRepo repositories.RouteRepository) *CharterService {
	return &CharterService{
		routeRepo: routeRepo,
		idFn:      newVesselID,
	}
}

func newVesselID() string {
	return "V-" + strings.Split(uuid.New().String(), "-")[0]
}

// CharterOptions controls how requirements are packed onto vessels
type CharterOptions struct {
	VesselCapacity float64
	Destination    string
	LoadDays       int
}

// Charter plans vessels for the given requirements. Requirements sharing an
// origin with overlapping laydays are packed onto one vessel up to capacity.
// Requirements are considered in (arrival deadline, grade, origin) order so
// repeated runs over the same inputs produce the same fleet.
func (cs *CharterService) Charter(
	requirements []*entities.FeedstockRequirement,
	opts CharterOptions,
) ([]*entities.Vessel, error) {
	if opts.VesselCapacity <= 0 {
		return nil, fmt.Errorf("vessel capacity must be positive, got %v", opts.VesselCapacity)
	}
	if opts.Destination == "" {
		return nil, fmt.Errorf("destination is required")
	}
	if opts.LoadDays < 0 {
		return nil, fmt.Errorf("load days must be non-negative, got %d", opts.LoadDays)
	}

	ordered := make([]*entities.FeedstockRequirement, len(requirements))
	copy(ordered, requirements)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].RequiredArrivalBy != ordered[j].RequiredArrivalBy {
			return ordered[i].RequiredArrivalBy < ordered[j].RequiredArrivalBy
		}
		if ordered[i].Grade != ordered[j].Grade {
			return ordered[i].Grade < ordered[j].Grade
		}
		return ordered[i].Origin < ordered[j].Origin
	})

	var vessels []*entities.Vessel
	var pending []*entities.FeedstockRequirement

	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		vessel, err := cs.buildVessel(pending, opts)
		if err != nil {
			return err
		}
		vessels = append(vessels, vessel)
		pending = nil
		return nil
	}

	for _, req := range ordered {
		if req.Volume > opts.VesselCapacity {
			return nil, fmt.Errorf("requirement for %s (%v) exceeds vessel capacity %v",
				req.Grade, req.Volume, opts.VesselCapacity)
		}
		if !cs.fitsWith(pending, req, opts.VesselCapacity) {
			if err := flush(); err != nil {
				return nil, err
			}
		}
		pending = append(pending, req)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return vessels, nil
}

// fitsWith reports whether req can share a vessel with the pending group:
// same origin, overlapping laydays, and combined volume within capacity.
func (cs *CharterService) fitsWith(
	pending []*entities.FeedstockRequirement,
	req *entities.FeedstockRequirement,
	capacity float64,
) bool {
	if len(pending) == 0 {
		return true
	}
	total := req.Volume
	for _, p := range pending {
		if p.Origin != req.Origin {
			return false
		}
		if p.AllowedLDR.End < req.AllowedLDR.Start || req.AllowedLDR.End < p.AllowedLDR.Start {
			return false
		}
		total += p.Volume
	}
	return total <= capacity
}

func (cs *CharterService) buildVessel(
	group []*entities.FeedstockRequirement,
	opts CharterOptions,
) (*entities.Vessel, error) {
	origin := group[0].Origin

	route, err := cs.routeRepo.GetRoute(origin, opts.Destination)
	if err != nil {
		return nil, fmt.Errorf("no route from %s to %s: %w", origin, opts.Destination, err)
	}

	// The load window is the intersection of the group's laydays; fitsWith
	// guarantees pairwise overlap, so the intersection is non-empty.
	window := group[0].AllowedLDR
	earliestDeadline := group[0].RequiredArrivalBy
	for _, req := range group[1:] {
		if req.AllowedLDR.Start > window.Start {
			window.Start = req.AllowedLDR.Start
		}
		if req.AllowedLDR.End < window.End {
			window.End = req.AllowedLDR.End
		}
		if req.RequiredArrivalBy < earliestDeadline {
			earliestDeadline = req.RequiredArrivalBy
		}
	}

	// Load as late as the window allows while still arriving by the earliest
	// deadline. If no day in the window can make it, load at the window start
	// and accept the late arrival.
	loadDay := earliestDeadline - route.TravelDays - opts.LoadDays
	if loadDay > window.End {
		loadDay = window.End
	}
	if loadDay < window.Start {
		loadDay = window.Start
	}

	loadEnd := loadDay + opts.LoadDays
	arrival := loadEnd + route.TravelDays

	cargo := make([]entities.FeedstockParcel, 0, len(group))
	for _, req := range group {
		cargo = append(cargo, entities.FeedstockParcel{
			Grade:             req.Grade,
			Volume:            req.Volume,
			LDR:               req.AllowedLDR,
			Origin:            req.Origin,
			RequiredArrivalBy: req.RequiredArrivalBy,
		})
	}

	segments := []entities.RouteSegment{
		{
			Action:      entities.ActionLoad,
			DayStart:    loadDay,
			DayEnd:      loadEnd,
			Origin:      origin,
			Destination: origin,
		},
		{
			Action:      entities.ActionTransit,
			DayStart:    loadEnd,
			DayEnd:      arrival,
			Origin:      origin,
			Destination: opts.Destination,
		},
		{
			Action:      entities.ActionDischarge,
			DayStart:    arrival,
			DayEnd:      arrival,
			Origin:      opts.Destination,
			Destination: opts.Destination,
		},
	}

	return entities.NewVessel(cs.idFn(), opts.VesselCapacity, route.Cost, cargo, segments)
}
