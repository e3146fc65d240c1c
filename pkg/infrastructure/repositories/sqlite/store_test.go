package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "refinery.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_CrudeRoundTrip(t *testing.T) {
	store := openTestStore(t)

	crude, err := entities.NewCrude("CrudeX", decimal.RequireFromString("5.25"), "Ras Tanura")
	require.NoError(t, err)
	require.NoError(t, store.SaveCrude(crude))

	got, err := store.GetCrude("CrudeX")
	require.NoError(t, err)
	assert.Equal(t, entities.GradeName("CrudeX"), got.Name)
	assert.True(t, got.Margin.Equal(decimal.RequireFromString("5.25")),
		"margin %s should survive the round trip exactly", got.Margin)

	_, err = store.GetCrude("Missing")
	assert.Error(t, err)
}

func TestStore_SaveReplacesExisting(t *testing.T) {
	store := openTestStore(t)

	first, err := entities.NewCrude("CrudeX", decimal.NewFromInt(5), "Ras Tanura")
	require.NoError(t, err)
	require.NoError(t, store.SaveCrude(first))

	second, err := entities.NewCrude("CrudeX", decimal.NewFromInt(7), "Bonny")
	require.NoError(t, err)
	require.NoError(t, store.SaveCrude(second))

	all, err := store.GetAllCrudes()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Margin.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, "Bonny", all[0].Origin)
}

func TestStore_TankContentSurvivesRoundTrip(t *testing.T) {
	store := openTestStore(t)

	tank, err := entities.NewTank("T1", "refinery", 200,
		map[entities.GradeName]float64{"CrudeX": 80, "CrudeY": 40.5})
	require.NoError(t, err)
	require.NoError(t, store.SaveTank(tank))

	got, err := store.GetTank("T1")
	require.NoError(t, err)
	assert.Equal(t, 80.0, got.Content["CrudeX"])
	assert.Equal(t, 40.5, got.Content["CrudeY"])
	assert.Equal(t, 200.0, got.Capacity)
}

func TestStore_VesselRoundTripPreservesProgress(t *testing.T) {
	store := openTestStore(t)

	cargo := []entities.FeedstockParcel{
		{Grade: "CrudeY", Volume: 30, Origin: "Bonny", RequiredArrivalBy: 9},
	}
	segments := []entities.RouteSegment{
		{Action: entities.ActionTransit, DayStart: 0, DayEnd: 4, Origin: "Bonny", Destination: "refinery"},
		{Action: entities.ActionDischarge, DayStart: 4, DayEnd: 4, Origin: "refinery", Destination: "refinery"},
	}
	vessel, err := entities.NewVessel("V1", 50, decimal.NewFromInt(90000), cargo, segments)
	require.NoError(t, err)

	vessel.State = entities.VesselInTransit
	vessel.CurrentSegment = 1
	vessel.DaysHeld = 2
	require.NoError(t, store.SaveVessel(vessel))

	got, err := store.GetVessel("V1")
	require.NoError(t, err)
	assert.Equal(t, entities.VesselInTransit, got.State)
	assert.Equal(t, 1, got.CurrentSegment)
	assert.Equal(t, 2, got.DaysHeld)
	assert.True(t, got.Cost.Equal(decimal.NewFromInt(90000)))
	require.Len(t, got.Cargo, 1)
	assert.Equal(t, "V1", got.Cargo[0].VesselID)
	assert.Equal(t, 9, got.Cargo[0].RequiredArrivalBy)
}

func TestStore_PlanRoundTripAndOrdering(t *testing.T) {
	store := openTestStore(t)

	for _, day := range []int{2, 0, 1} {
		plan := &entities.DailyPlan{
			Day:             day,
			ProcessingRates: map[string]float64{"run-x": 20},
			Inventory:       float64(100 - day*20),
			DailyMargin:     decimal.NewFromInt(int64(day * 100)),
		}
		require.NoError(t, store.SavePlan(plan))
	}

	plans, err := store.GetAllPlans()
	require.NoError(t, err)
	require.Len(t, plans, 3)
	for i, plan := range plans {
		assert.Equal(t, i, plan.Day)
	}
	assert.True(t, plans[2].DailyMargin.Equal(decimal.NewFromInt(200)))
}

func TestStore_RequirementsKeepInsertionOrder(t *testing.T) {
	store := openTestStore(t)

	reqA, err := entities.NewFeedstockRequirement("CrudeY", 30, "Bonny",
		entities.DayRange{Start: 0, End: 6}, 18)
	require.NoError(t, err)
	reqB, err := entities.NewFeedstockRequirement("CrudeX", 20, "Ras Tanura",
		entities.DayRange{Start: 3, End: 9}, 25)
	require.NoError(t, err)

	require.NoError(t, store.SaveRequirement(reqA))
	require.NoError(t, store.SaveRequirement(reqB))

	got, err := store.GetAllRequirements()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, entities.GradeName("CrudeY"), got[0].Grade)
	assert.Equal(t, entities.GradeName("CrudeX"), got[1].Grade)
	assert.Equal(t, entities.DayRange{Start: 3, End: 9}, got[1].AllowedLDR)
}

func TestStore_RouteRoundTrip(t *testing.T) {
	store := openTestStore(t)

	route, err := entities.NewRoute("Bonny", "refinery", 10, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, store.SaveRoute(route))

	got, err := store.GetRoute("Bonny", "refinery")
	require.NoError(t, err)
	assert.Equal(t, 10, got.TravelDays)
	assert.True(t, got.Cost.Equal(entities.DefaultRouteCost))
}
