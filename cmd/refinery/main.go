package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/avasquez/refinery/pkg/application/services/chartering"
	"github.com/avasquez/refinery/pkg/application/services/scheduling"
	"github.com/avasquez/refinery/pkg/domain/repositories"
	"github.com/avasquez/refinery/pkg/infrastructure/events"
	"github.com/avasquez/refinery/pkg/infrastructure/repositories/memory"
	"github.com/avasquez/refinery/pkg/infrastructure/repositories/sqlite"
	"github.com/avasquez/refinery/pkg/infrastructure/scenario"
)

func main() {
	// Command line flags
	var (
		scenarioFile = flag.String("scenario", "", "Path to scenario YAML file")
		days         = flag.Int("days", 30, "Number of days to simulate")
		plantName    = flag.String("plant", "", "Plant whose capacity caps aggregate throughput")
		warnOnly     = flag.Bool("warn-only", false, "Report validation issues without aborting")
		charter      = flag.Bool("charter", false, "Charter vessels for scenario requirements before simulating")
		vesselCap    = flag.Float64("vessel-capacity", 80, "Vessel capacity used when chartering")
		dbPath       = flag.String("db", "", "SQLite database path for persisted plans (optional)")
		outputFile   = flag.String("output", "", "Output file for results (default stdout)")
		format       = flag.String("format", "text", "Output format: text, json, csv")
		verbose      = flag.Bool("verbose", false, "Enable verbose output")
	)

	flag.Parse()

	if *scenarioFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -scenario is required")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(runConfig{
		ScenarioFile:   *scenarioFile,
		Days:           *days,
		Plant:          *plantName,
		WarnOnly:       *warnOnly,
		Charter:        *charter,
		VesselCapacity: *vesselCap,
		DBPath:         *dbPath,
		OutputFile:     *outputFile,
		Format:         *format,
		Verbose:        *verbose,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type runConfig struct {
	ScenarioFile   string
	Days           int
	Plant          string
	WarnOnly       bool
	Charter        bool
	VesselCapacity float64
	DBPath         string
	OutputFile     string
	Format         string
	Verbose        bool
}

func run(cfg runConfig) error {
	sc, err := scenario.LoadFile(cfg.ScenarioFile)
	if err != nil {
		return err
	}

	crudeRepo := memory.NewCrudeRepository()
	plantRepo := memory.NewPlantRepository()
	tankRepo := memory.NewTankRepository()
	recipeRepo := memory.NewRecipeRepository()
	vesselRepo := memory.NewVesselRepository()
	routeRepo := memory.NewRouteRepository()

	var planRepo repositories.PlanRepository = memory.NewPlanRepository()
	if cfg.DBPath != "" {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		planRepo = store
	}

	for _, crude := range sc.Crudes {
		if err := crudeRepo.SaveCrude(crude); err != nil {
			return err
		}
	}
	for _, tank := range sc.Tanks {
		if err := tankRepo.SaveTank(tank); err != nil {
			return err
		}
	}
	for _, recipe := range sc.Recipes {
		if err := recipeRepo.SaveRecipe(recipe); err != nil {
			return err
		}
	}
	for _, route := range sc.Routes {
		if err := routeRepo.SaveRoute(route); err != nil {
			return err
		}
	}
	for _, vessel := range sc.Vessels {
		if err := vesselRepo.SaveVessel(vessel); err != nil {
			return err
		}
	}
	if sc.Plant != nil {
		if err := plantRepo.SavePlant(sc.Plant); err != nil {
			return err
		}
	}

	if cfg.Charter && len(sc.Requirements) > 0 {
		destination := cfg.Plant
		if destination == "" && sc.Plant != nil {
			destination = sc.Plant.Name
		}
		charterService := chartering.NewCharterService(routeRepo)
		vessels, err := charterService.Charter(sc.Requirements, chartering.CharterOptions{
			VesselCapacity: cfg.VesselCapacity,
			Destination:    destination,
			LoadDays:       1,
		})
		if err != nil {
			return fmt.Errorf("chartering failed: %w", err)
		}
		for _, vessel := range vessels {
			if err := vesselRepo.SaveVessel(vessel); err != nil {
				return err
			}
		}
	}

	eventLog := events.NewMemoryLog()
	service := scheduling.NewSchedulingService(
		crudeRepo, plantRepo, tankRepo, recipeRepo, vesselRepo, planRepo, eventLog)

	start := time.Now()
	result, err := service.RunSchedule(context.Background(), scheduling.RunOptions{
		Days:     cfg.Days,
		Plant:    cfg.Plant,
		WarnOnly: cfg.WarnOnly,
	})
	if err != nil {
		return err
	}

	return generateOutput(result, outputConfig{
		Format:     cfg.Format,
		OutputFile: cfg.OutputFile,
		Verbose:    cfg.Verbose,
		Elapsed:    time.Since(start),
	})
}
