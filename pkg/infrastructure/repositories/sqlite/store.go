package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/avasquez/refinery/pkg/domain/repositories"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"
)

// Store persists the refinery entity set in a single SQLite database. It
// implements every domain repository interface so a scheduling run can be
// wired against a file the same way it is wired against memory.
type Store struct {
	db *sql.DB
}

// Verify interface compliance
var (
	_ repositories.CrudeRepository       = (*Store)(nil)
	_ repositories.PlantRepository       = (*Store)(nil)
	_ repositories.TankRepository        = (*Store)(nil)
	_ repositories.RecipeRepository      = (*Store)(nil)
	_ repositories.VesselRepository      = (*Store)(nil)
	_ repositories.RouteRepository       = (*Store)(nil)
	_ repositories.RequirementRepository = (*Store)(nil)
	_ repositories.PlanRepository        = (*Store)(nil)
)

// Open opens (creating if needed) a store at path. Use ":memory:" for an
// ephemeral database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS crudes (
		name TEXT PRIMARY KEY,
		margin TEXT NOT NULL,
		origin TEXT
	);

	CREATE TABLE IF NOT EXISTS plants (
		name TEXT PRIMARY KEY,
		capacity REAL NOT NULL,
		base_crude_capacity REAL NOT NULL DEFAULT 0,
		max_inventory REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS tanks (
		name TEXT PRIMARY KEY,
		plant TEXT NOT NULL,
		capacity REAL NOT NULL,
		content_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS recipes (
		name TEXT PRIMARY KEY,
		primary_grade TEXT NOT NULL,
		secondary_grade TEXT,
		max_rate REAL NOT NULL,
		primary_fraction REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS routes (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		travel_days INTEGER NOT NULL,
		cost TEXT NOT NULL,
		PRIMARY KEY (origin, destination)
	);

	CREATE TABLE IF NOT EXISTS requirements (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		grade TEXT NOT NULL,
		volume REAL NOT NULL,
		origin TEXT NOT NULL,
		ldr_start INTEGER NOT NULL,
		ldr_end INTEGER NOT NULL,
		required_arrival_by INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS vessels (
		vessel_id TEXT PRIMARY KEY,
		body_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS plans (
		day INTEGER PRIMARY KEY,
		body_json TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// GetCrude retrieves a crude by grade name
func (s *Store) GetCrude(name entities.GradeName) (*entities.Crude, error) {
	row := s.db.QueryRow("SELECT name, margin, origin FROM crudes WHERE name = ?", string(name))
	return scanCrude(row)
}

// GetAllCrudes retrieves every crude in grade-name order
func (s *Store) GetAllCrudes() ([]*entities.Crude, error) {
	rows, err := s.db.Query("SELECT name, margin, origin FROM crudes ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query crudes: %w", err)
	}
	defer rows.Close()

	var crudes []*entities.Crude
	for rows.Next() {
		crude, err := scanCrude(rows)
		if err != nil {
			return nil, err
		}
		crudes = append(crudes, crude)
	}
	return crudes, rows.Err()
}

// SaveCrude stores a crude, replacing any existing entry for the grade
func (s *Store) SaveCrude(crude *entities.Crude) error {
	if crude == nil {
		return fmt.Errorf("cannot save nil crude")
	}
	_, err := s.db.Exec(
		"INSERT INTO crudes (name, margin, origin) VALUES (?, ?, ?) ON CONFLICT(name) DO UPDATE SET margin = excluded.margin, origin = excluded.origin",
		string(crude.Name), crude.Margin.String(), crude.Origin)
	if err != nil {
		return fmt.Errorf("failed to save crude %s: %w", crude.Name, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCrude(row rowScanner) (*entities.Crude, error) {
	var name, margin, origin string
	if err := row.Scan(&name, &margin, &origin); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("crude not found")
		}
		return nil, fmt.Errorf("failed to scan crude: %w", err)
	}
	m, err := decimal.NewFromString(margin)
	if err != nil {
		return nil, fmt.Errorf("invalid margin for crude %s: %w", name, err)
	}
	return entities.NewCrude(entities.GradeName(name), m, origin)
}

// GetPlant retrieves a plant by name
func (s *Store) GetPlant(name string) (*entities.Plant, error) {
	row := s.db.QueryRow(
		"SELECT name, capacity, base_crude_capacity, max_inventory FROM plants WHERE name = ?", name)
	return scanPlant(row)
}

// GetAllPlants retrieves every plant in name order
func (s *Store) GetAllPlants() ([]*entities.Plant, error) {
	rows, err := s.db.Query(
		"SELECT name, capacity, base_crude_capacity, max_inventory FROM plants ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query plants: %w", err)
	}
	defer rows.Close()

	var plants []*entities.Plant
	for rows.Next() {
		plant, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		plants = append(plants, plant)
	}
	return plants, rows.Err()
}

// SavePlant stores a plant, replacing any existing entry for the name
func (s *Store) SavePlant(plant *entities.Plant) error {
	if plant == nil {
		return fmt.Errorf("cannot save nil plant")
	}
	_, err := s.db.Exec(
		"INSERT INTO plants (name, capacity, base_crude_capacity, max_inventory) VALUES (?, ?, ?, ?) ON CONFLICT(name) DO UPDATE SET capacity = excluded.capacity, base_crude_capacity = excluded.base_crude_capacity, max_inventory = excluded.max_inventory",
		plant.Name, plant.Capacity, plant.BaseCrudeCapacity, plant.MaxInventory)
	if err != nil {
		return fmt.Errorf("failed to save plant %s: %w", plant.Name, err)
	}
	return nil
}

func scanPlant(row rowScanner) (*entities.Plant, error) {
	var name string
	var capacity, base, maxInv float64
	if err := row.Scan(&name, &capacity, &base, &maxInv); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plant not found")
		}
		return nil, fmt.Errorf("failed to scan plant: %w", err)
	}
	return entities.NewPlant(name, capacity, base, maxInv)
}

// GetTank retrieves a tank by name
func (s *Store) GetTank(name string) (*entities.Tank, error) {
	row := s.db.QueryRow("SELECT name, plant, capacity, content_json FROM tanks WHERE name = ?", name)
	return scanTank(row)
}

// GetAllTanks retrieves every tank in name order
func (s *Store) GetAllTanks() ([]*entities.Tank, error) {
	rows, err := s.db.Query("SELECT name, plant, capacity, content_json FROM tanks ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query tanks: %w", err)
	}
	defer rows.Close()

	var tanks []*entities.Tank
	for rows.Next() {
		tank, err := scanTank(rows)
		if err != nil {
			return nil, err
		}
		tanks = append(tanks, tank)
	}
	return tanks, rows.Err()
}

// SaveTank stores a tank, replacing any existing entry for the name
func (s *Store) SaveTank(tank *entities.Tank) error {
	if tank == nil {
		return fmt.Errorf("cannot save nil tank")
	}
	content, err := json.Marshal(tank.Content)
	if err != nil {
		return fmt.Errorf("failed to encode tank content: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO tanks (name, plant, capacity, content_json) VALUES (?, ?, ?, ?) ON CONFLICT(name) DO UPDATE SET plant = excluded.plant, capacity = excluded.capacity, content_json = excluded.content_json",
		tank.Name, tank.Plant, tank.Capacity, string(content))
	if err != nil {
		return fmt.Errorf("failed to save tank %s: %w", tank.Name, err)
	}
	return nil
}

func scanTank(row rowScanner) (*entities.Tank, error) {
	var name, plant, contentJSON string
	var capacity float64
	if err := row.Scan(&name, &plant, &capacity, &contentJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("tank not found")
		}
		return nil, fmt.Errorf("failed to scan tank: %w", err)
	}
	var content map[entities.GradeName]float64
	if err := json.Unmarshal([]byte(contentJSON), &content); err != nil {
		return nil, fmt.Errorf("invalid content for tank %s: %w", name, err)
	}
	return entities.NewTank(name, plant, capacity, content)
}

// GetRecipe retrieves a recipe by name
func (s *Store) GetRecipe(name string) (*entities.BlendingRecipe, error) {
	row := s.db.QueryRow(
		"SELECT name, primary_grade, secondary_grade, max_rate, primary_fraction FROM recipes WHERE name = ?", name)
	return scanRecipe(row)
}

// GetAllRecipes retrieves every recipe in name order
func (s *Store) GetAllRecipes() ([]*entities.BlendingRecipe, error) {
	rows, err := s.db.Query(
		"SELECT name, primary_grade, secondary_grade, max_rate, primary_fraction FROM recipes ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*entities.BlendingRecipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, rows.Err()
}

// SaveRecipe stores a recipe, replacing any existing entry for the name
func (s *Store) SaveRecipe(recipe *entities.BlendingRecipe) error {
	if recipe == nil {
		return fmt.Errorf("cannot save nil recipe")
	}
	_, err := s.db.Exec(
		"INSERT INTO recipes (name, primary_grade, secondary_grade, max_rate, primary_fraction) VALUES (?, ?, ?, ?, ?) ON CONFLICT(name) DO UPDATE SET primary_grade = excluded.primary_grade, secondary_grade = excluded.secondary_grade, max_rate = excluded.max_rate, primary_fraction = excluded.primary_fraction",
		recipe.Name, string(recipe.PrimaryGrade), string(recipe.SecondaryGrade), recipe.MaxRate, recipe.PrimaryFraction)
	if err != nil {
		return fmt.Errorf("failed to save recipe %s: %w", recipe.Name, err)
	}
	return nil
}

func scanRecipe(row rowScanner) (*entities.BlendingRecipe, error) {
	var name, primary, secondary string
	var maxRate, fraction float64
	if err := row.Scan(&name, &primary, &secondary, &maxRate, &fraction); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("recipe not found")
		}
		return nil, fmt.Errorf("failed to scan recipe: %w", err)
	}
	return entities.NewBlendingRecipe(name, entities.GradeName(primary), entities.GradeName(secondary), maxRate, fraction)
}

// GetRoute retrieves the route between an origin and destination
func (s *Store) GetRoute(origin, destination string) (*entities.Route, error) {
	row := s.db.QueryRow(
		"SELECT origin, destination, travel_days, cost FROM routes WHERE origin = ? AND destination = ?",
		origin, destination)
	return scanRoute(row)
}

// GetAllRoutes retrieves every route in (origin, destination) order
func (s *Store) GetAllRoutes() ([]*entities.Route, error) {
	rows, err := s.db.Query(
		"SELECT origin, destination, travel_days, cost FROM routes ORDER BY origin, destination")
	if err != nil {
		return nil, fmt.Errorf("failed to query routes: %w", err)
	}
	defer rows.Close()

	var routes []*entities.Route
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, rows.Err()
}

// SaveRoute stores a route, replacing any existing entry for the pair
func (s *Store) SaveRoute(route *entities.Route) error {
	if route == nil {
		return fmt.Errorf("cannot save nil route")
	}
	_, err := s.db.Exec(
		"INSERT INTO routes (origin, destination, travel_days, cost) VALUES (?, ?, ?, ?) ON CONFLICT(origin, destination) DO UPDATE SET travel_days = excluded.travel_days, cost = excluded.cost",
		route.Origin, route.Destination, route.TravelDays, route.Cost.String())
	if err != nil {
		return fmt.Errorf("failed to save route %s: %w", route.Key(), err)
	}
	return nil
}

func scanRoute(row rowScanner) (*entities.Route, error) {
	var origin, destination, cost string
	var travelDays int
	if err := row.Scan(&origin, &destination, &travelDays, &cost); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("route not found")
		}
		return nil, fmt.Errorf("failed to scan route: %w", err)
	}
	c, err := decimal.NewFromString(cost)
	if err != nil {
		return nil, fmt.Errorf("invalid cost for route %s to %s: %w", origin, destination, err)
	}
	return entities.NewRoute(origin, destination, travelDays, c)
}

// GetAllRequirements retrieves every requirement in insertion order
func (s *Store) GetAllRequirements() ([]*entities.FeedstockRequirement, error) {
	rows, err := s.db.Query(
		"SELECT grade, volume, origin, ldr_start, ldr_end, required_arrival_by FROM requirements ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query requirements: %w", err)
	}
	defer rows.Close()

	var requirements []*entities.FeedstockRequirement
	for rows.Next() {
		var grade, origin string
		var volume float64
		var ldrStart, ldrEnd, arrivalBy int
		if err := rows.Scan(&grade, &volume, &origin, &ldrStart, &ldrEnd, &arrivalBy); err != nil {
			return nil, fmt.Errorf("failed to scan requirement: %w", err)
		}
		req, err := entities.NewFeedstockRequirement(
			entities.GradeName(grade), volume, origin,
			entities.DayRange{Start: ldrStart, End: ldrEnd}, arrivalBy)
		if err != nil {
			return nil, err
		}
		requirements = append(requirements, req)
	}
	return requirements, rows.Err()
}

// SaveRequirement appends a requirement
func (s *Store) SaveRequirement(requirement *entities.FeedstockRequirement) error {
	if requirement == nil {
		return fmt.Errorf("cannot save nil requirement")
	}
	_, err := s.db.Exec(
		"INSERT INTO requirements (grade, volume, origin, ldr_start, ldr_end, required_arrival_by) VALUES (?, ?, ?, ?, ?, ?)",
		string(requirement.Grade), requirement.Volume, requirement.Origin,
		requirement.AllowedLDR.Start, requirement.AllowedLDR.End, requirement.RequiredArrivalBy)
	if err != nil {
		return fmt.Errorf("failed to save requirement for %s: %w", requirement.Grade, err)
	}
	return nil
}

// vesselRecord is the JSON shape vessels are stored as. Decimal cost is kept
// as a string to survive the round trip exactly.
type vesselRecord struct {
	VesselID           string                     `json:"vessel_id"`
	ArrivalDay         int                        `json:"arrival_day"`
	OriginalArrivalDay int                        `json:"original_arrival_day"`
	Capacity           float64                    `json:"capacity"`
	Cost               string                     `json:"cost"`
	Cargo              []entities.FeedstockParcel `json:"cargo"`
	Segments           []entities.RouteSegment    `json:"segments"`
	CurrentSegment     int                        `json:"current_segment"`
	DaysHeld           int                        `json:"days_held"`
	State              int                        `json:"state"`
}

// GetVessel retrieves a vessel by ID
func (s *Store) GetVessel(vesselID string) (*entities.Vessel, error) {
	var body string
	err := s.db.QueryRow("SELECT body_json FROM vessels WHERE vessel_id = ?", vesselID).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("vessel not found: %s", vesselID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vessel %s: %w", vesselID, err)
	}
	return decodeVessel(body)
}

// GetAllVessels retrieves every vessel in ID order
func (s *Store) GetAllVessels() ([]*entities.Vessel, error) {
	rows, err := s.db.Query("SELECT body_json FROM vessels ORDER BY vessel_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query vessels: %w", err)
	}
	defer rows.Close()

	var vessels []*entities.Vessel
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan vessel: %w", err)
		}
		vessel, err := decodeVessel(body)
		if err != nil {
			return nil, err
		}
		vessels = append(vessels, vessel)
	}
	return vessels, rows.Err()
}

// SaveVessel stores a vessel, replacing any existing entry for the ID
func (s *Store) SaveVessel(vessel *entities.Vessel) error {
	if vessel == nil {
		return fmt.Errorf("cannot save nil vessel")
	}
	record := vesselRecord{
		VesselID:           vessel.VesselID,
		ArrivalDay:         vessel.ArrivalDay,
		OriginalArrivalDay: vessel.OriginalArrivalDay,
		Capacity:           vessel.Capacity,
		Cost:               vessel.Cost.String(),
		Cargo:              vessel.Cargo,
		Segments:           vessel.Segments,
		CurrentSegment:     vessel.CurrentSegment,
		DaysHeld:           vessel.DaysHeld,
		State:              int(vessel.State),
	}
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode vessel %s: %w", vessel.VesselID, err)
	}
	_, err = s.db.Exec(
		"INSERT INTO vessels (vessel_id, body_json) VALUES (?, ?) ON CONFLICT(vessel_id) DO UPDATE SET body_json = excluded.body_json",
		vessel.VesselID, string(body))
	if err != nil {
		return fmt.Errorf("failed to save vessel %s: %w", vessel.VesselID, err)
	}
	return nil
}

func decodeVessel(body string) (*entities.Vessel, error) {
	var record vesselRecord
	if err := json.Unmarshal([]byte(body), &record); err != nil {
		return nil, fmt.Errorf("invalid vessel record: %w", err)
	}
	cost, err := decimal.NewFromString(record.Cost)
	if err != nil {
		return nil, fmt.Errorf("invalid cost for vessel %s: %w", record.VesselID, err)
	}
	return &entities.Vessel{
		VesselID:           record.VesselID,
		ArrivalDay:         record.ArrivalDay,
		OriginalArrivalDay: record.OriginalArrivalDay,
		Capacity:           record.Capacity,
		Cost:               cost,
		Cargo:              record.Cargo,
		Segments:           record.Segments,
		CurrentSegment:     record.CurrentSegment,
		DaysHeld:           record.DaysHeld,
		State:              entities.VesselState(record.State),
	}, nil
}

// planRecord is the JSON shape daily plans are stored as
type planRecord struct {
	Day              int                            `json:"day"`
	ProcessingRates  map[string]float64             `json:"processing_rates"`
	BlendingDetails  map[string][]string            `json:"blending_details"`
	Inventory        float64                        `json:"inventory"`
	InventoryByGrade map[entities.GradeName]float64 `json:"inventory_by_grade"`
	Tanks            map[string]entities.Tank       `json:"tanks"`
	DailyMargin      string                         `json:"daily_margin"`
}

// GetPlan retrieves the plan for a day
func (s *Store) GetPlan(day int) (*entities.DailyPlan, error) {
	var body string
	err := s.db.QueryRow("SELECT body_json FROM plans WHERE day = ?", day).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no plan for day %d", day)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query plan for day %d: %w", day, err)
	}
	return decodePlan(body)
}

// GetAllPlans retrieves every plan in day order
func (s *Store) GetAllPlans() ([]*entities.DailyPlan, error) {
	rows, err := s.db.Query("SELECT body_json FROM plans ORDER BY day")
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	var plans []*entities.DailyPlan
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plan, err := decodePlan(body)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// SavePlan stores a plan, replacing any existing entry for the day
func (s *Store) SavePlan(plan *entities.DailyPlan) error {
	if plan == nil {
		return fmt.Errorf("cannot save nil plan")
	}
	record := planRecord{
		Day:              plan.Day,
		ProcessingRates:  plan.ProcessingRates,
		BlendingDetails:  plan.BlendingDetails,
		Inventory:        plan.Inventory,
		InventoryByGrade: plan.InventoryByGrade,
		Tanks:            plan.Tanks,
		DailyMargin:      plan.DailyMargin.String(),
	}
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode plan for day %d: %w", plan.Day, err)
	}
	_, err = s.db.Exec(
		"INSERT INTO plans (day, body_json) VALUES (?, ?) ON CONFLICT(day) DO UPDATE SET body_json = excluded.body_json",
		plan.Day, string(body))
	if err != nil {
		return fmt.Errorf("failed to save plan for day %d: %w", plan.Day, err)
	}
	return nil
}

func decodePlan(body string) (*entities.DailyPlan, error) {
	var record planRecord
	if err := json.Unmarshal([]byte(body), &record); err != nil {
		return nil, fmt.Errorf("invalid plan record: %w", err)
	}
	margin, err := decimal.NewFromString(record.DailyMargin)
	if err != nil {
		return nil, fmt.Errorf("invalid margin for day %d: %w", record.Day, err)
	}
	return &entities.DailyPlan{
		Day:              record.Day,
		ProcessingRates:  record.ProcessingRates,
		BlendingDetails:  record.BlendingDetails,
		Inventory:        record.Inventory,
		InventoryByGrade: record.InventoryByGrade,
		Tanks:            record.Tanks,
		DailyMargin:      margin,
	}, nil
}
