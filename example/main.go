package main

import (
	"context"
	"fmt"

	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/avasquez/refinery/pkg/sim"
	"github.com/shopspring/decimal"
)

func main() {
	ctx := context.Background()

	// Two grades: a high-margin heavy crude and a sweeter blend partner
	crudeX, err := entities.NewCrude("CrudeX", decimal.NewFromInt(5), "Ras Tanura")
	if err != nil {
		panic(err)
	}
	crudeY, err := entities.NewCrude("CrudeY", decimal.RequireFromString("3.5"), "Bonny")
	if err != nil {
		panic(err)
	}

	tank, err := entities.NewTank("T1", "refinery", 300, map[entities.GradeName]float64{
		"CrudeX": 120,
		"CrudeY": 40,
	})
	if err != nil {
		panic(err)
	}

	// A pure run and a 60/40 blend competing for the same feedstock
	runX, err := entities.NewBlendingRecipe("run-x", "CrudeX", "", 25, 1.0)
	if err != nil {
		panic(err)
	}
	blendXY, err := entities.NewBlendingRecipe("blend-xy", "CrudeX", "CrudeY", 30, 0.6)
	if err != nil {
		panic(err)
	}

	// A replenishment cargo of CrudeY arriving on day 3
	cargo := []entities.FeedstockParcel{
		{Grade: "CrudeY", Volume: 60, Origin: "Bonny", RequiredArrivalBy: 5},
	}
	segments := []entities.RouteSegment{
		{Action: entities.ActionTransit, DayStart: 0, DayEnd: 3, Origin: "Bonny", Destination: "refinery"},
		{Action: entities.ActionDischarge, DayStart: 3, DayEnd: 3, Origin: "refinery", Destination: "refinery"},
	}
	vessel, err := entities.NewVessel("V1", 80, decimal.NewFromInt(90000), cargo, segments)
	if err != nil {
		panic(err)
	}

	simulator, err := sim.NewSimulator(sim.Config{
		Crudes:  []*entities.Crude{crudeX, crudeY},
		Tanks:   []*entities.Tank{tank},
		Recipes: []*entities.BlendingRecipe{runX, blendXY},
		Vessels: []*entities.Vessel{vessel},
	})
	if err != nil {
		panic(err)
	}

	fmt.Println("🛢  Running 7-day refinery schedule...")
	fmt.Println()

	plans, err := simulator.Run(ctx, 7)
	if err != nil {
		fmt.Printf("❌ Simulation failed: %v\n", err)
		return
	}

	total := decimal.Zero
	for _, plan := range plans {
		total = total.Add(plan.DailyMargin)
		fmt.Printf("Day %d  rate %6.2f  inventory %7.2f  margin %s\n",
			plan.Day, plan.TotalRate(), plan.Inventory, plan.DailyMargin.StringFixed(2))
		if details, ok := plan.BlendingDetails["blend-xy"]; ok {
			for _, detail := range details {
				fmt.Printf("        %s\n", detail)
			}
		}
	}

	fmt.Println()
	fmt.Printf("📊 Total margin over 7 days: %s\n", total.StringFixed(2))
	for _, record := range simulator.Discharges() {
		fmt.Printf("🚢 %s discharged %.2f of %s on day %d\n",
			record.VesselID, record.Placed, record.Grade, record.Day)
	}
}
