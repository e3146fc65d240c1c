package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/avasquez/refinery/pkg/application/dto"
	"github.com/avasquez/refinery/pkg/domain/entities"
)

type outputConfig struct {
	Format     string
	OutputFile string
	Verbose    bool
	Elapsed    time.Duration
}

// generateOutput renders the result in the configured format
func generateOutput(result *dto.SimulationResult, config outputConfig) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func writeOutput(data []byte, config outputConfig) error {
	if config.OutputFile == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(config.OutputFile, data, 0o644)
}

// generateTextOutput generates human-readable text output
func generateTextOutput(result *dto.SimulationResult, config outputConfig) error {
	var output string

	output += "═══════════════════════════════════════════════════════════════\n"
	output += "                 REFINERY SCHEDULE RESULTS\n"
	output += "═══════════════════════════════════════════════════════════════\n\n"

	output += "📊 SUMMARY\n"
	output += fmt.Sprintf("  Simulation Time: %v\n", config.Elapsed)
	output += fmt.Sprintf("  Days Simulated:  %d\n", result.Days)
	output += fmt.Sprintf("  Total Margin:    %s\n", result.TotalMargin.StringFixed(2))
	if !result.CharterCost.IsZero() {
		output += fmt.Sprintf("  Charter Cost:    %s\n", result.CharterCost.StringFixed(2))
		output += fmt.Sprintf("  Net Margin:      %s\n", result.NetMargin().StringFixed(2))
	}
	output += fmt.Sprintf("  Discharges:      %d\n", len(result.Discharges))
	if shortfall := result.TotalShortfall(); shortfall > 0 {
		output += fmt.Sprintf("  Unplaced Cargo:  %.2f\n", shortfall)
	}
	output += "\n"

	if issues := flattenIssues(result.Issues); len(issues) > 0 {
		output += "🚨 VALIDATION ISSUES\n"
		output += "────────────────────────────────────────────────────────────────\n"
		for _, issue := range issues {
			output += fmt.Sprintf("  %s\n", issue)
		}
		output += "\n"
	}

	output += "📅 DAILY PLANS\n"
	output += "────────────────────────────────────────────────────────────────\n"
	for i := range result.Plans {
		plan := &result.Plans[i]
		output += fmt.Sprintf("Day %-4d Rate: %8.2f  Inventory: %10.2f  Margin: %s\n",
			plan.Day, plan.TotalRate(), plan.Inventory, plan.DailyMargin.StringFixed(2))

		for _, name := range sortedRateKeys(plan.ProcessingRates) {
			if rate := plan.ProcessingRates[name]; rate > 0 || config.Verbose {
				output += fmt.Sprintf("  %-24s %8.2f\n", name, rate)
			}
		}
		if config.Verbose {
			for _, key := range sortedDetailKeys(plan.BlendingDetails) {
				for _, detail := range plan.BlendingDetails[key] {
					output += fmt.Sprintf("    %s: %s\n", key, detail)
				}
			}
		}
	}
	output += "\n"

	if len(result.Discharges) > 0 {
		output += "🚢 VESSEL DISCHARGES\n"
		output += "────────────────────────────────────────────────────────────────\n"
		for _, record := range result.Discharges {
			output += fmt.Sprintf("Day %-4d %-10s %-12s %8.2f placed of %8.2f",
				record.Day, record.VesselID, record.Grade, record.Placed, record.Volume)
			if record.LateBy > 0 {
				output += fmt.Sprintf("  (%d day(s) late)", record.LateBy)
			}
			output += "\n"
		}
		output += "\n"
	}

	output += "🛢  FINAL TANK STATE\n"
	output += "────────────────────────────────────────────────────────────────\n"
	for _, name := range sortedTankKeys(result.FinalTanks) {
		tank := result.FinalTanks[name]
		output += fmt.Sprintf("Tank %-12s %8.2f / %8.2f\n", name, tank.TotalVolume(), tank.Capacity)
		for _, grade := range sortedGradeKeys(tank.Content) {
			output += fmt.Sprintf("  %-24s %8.2f\n", grade, tank.Content[grade])
		}
	}

	return writeOutput([]byte(output), config)
}

// generateJSONOutput generates machine-readable JSON output
func generateJSONOutput(result *dto.SimulationResult, config outputConfig) error {
	type jsonPlan struct {
		Day             int                 `json:"day"`
		ProcessingRates map[string]float64  `json:"processing_rates"`
		BlendingDetails map[string][]string `json:"blending_details,omitempty"`
		Inventory       float64             `json:"inventory"`
		DailyMargin     string              `json:"daily_margin"`
	}
	type jsonResult struct {
		Days        int                 `json:"days"`
		TotalMargin string              `json:"total_margin"`
		Issues      map[string][]string `json:"issues,omitempty"`
		Plans       []jsonPlan          `json:"plans"`
	}

	out := jsonResult{
		Days:        result.Days,
		TotalMargin: result.TotalMargin.String(),
		Plans:       make([]jsonPlan, 0, len(result.Plans)),
	}
	if len(flattenIssues(result.Issues)) > 0 {
		out.Issues = result.Issues
	}
	for i := range result.Plans {
		plan := &result.Plans[i]
		out.Plans = append(out.Plans, jsonPlan{
			Day:             plan.Day,
			ProcessingRates: plan.ProcessingRates,
			BlendingDetails: plan.BlendingDetails,
			Inventory:       plan.Inventory,
			DailyMargin:     plan.DailyMargin.String(),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return writeOutput(append(data, '\n'), config)
}

// generateCSVOutput generates one row per (day, recipe) rate
func generateCSVOutput(result *dto.SimulationResult, config outputConfig) error {
	out := os.Stdout
	if config.OutputFile != "" {
		f, err := os.Create(config.OutputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	writer := csv.NewWriter(out)
	defer writer.Flush()

	if err := writer.Write([]string{"day", "recipe", "rate", "inventory", "daily_margin"}); err != nil {
		return err
	}
	for i := range result.Plans {
		plan := &result.Plans[i]
		for _, name := range sortedRateKeys(plan.ProcessingRates) {
			record := []string{
				strconv.Itoa(plan.Day),
				name,
				strconv.FormatFloat(plan.ProcessingRates[name], 'f', 4, 64),
				strconv.FormatFloat(plan.Inventory, 'f', 4, 64),
				plan.DailyMargin.String(),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	return writer.Error()
}

func flattenIssues(issues map[string][]string) []string {
	var all []string
	categories := make([]string, 0, len(issues))
	for category := range issues {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		all = append(all, issues[category]...)
	}
	return all
}

func sortedRateKeys(rates map[string]float64) []string {
	keys := make([]string, 0, len(rates))
	for key := range rates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedDetailKeys(details map[string][]string) []string {
	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedTankKeys(tanks map[string]entities.Tank) []string {
	keys := make([]string, 0, len(tanks))
	for key := range tanks {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedGradeKeys(content map[entities.GradeName]float64) []entities.GradeName {
	keys := make([]entities.GradeName, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
