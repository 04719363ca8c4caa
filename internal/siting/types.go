// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// Type definitions for the ranking engine.

package siting

import (
	"fmt"
	"math"
	"sort"
	"strings"

	serr "gridsite/internal/errors"
	"gridsite/internal/nodes"
)

// LoadType is the closed set of load profiles the engine scores for.
type LoadType string

const (
	LoadDataCenterAlwaysOn   LoadType = "data_center_always_on"
	LoadDataCenterFlexible   LoadType = "data_center_flexible"
	LoadH2ElectrolyzerFirm   LoadType = "h2_electrolyzer_firm"
	LoadIndustrialContinuous LoadType = "industrial_continuous"
	LoadIndustrialFlexible   LoadType = "industrial_flexible"
	LoadCommercialCampus     LoadType = "commercial_campus"
)

// LoadTypes lists every load type in display order.
var LoadTypes = []LoadType{
	LoadDataCenterAlwaysOn,
	LoadDataCenterFlexible,
	LoadH2ElectrolyzerFirm,
	LoadIndustrialContinuous,
	LoadIndustrialFlexible,
	LoadCommercialCampus,
}

// ParseLoadType accepts only the canonical identifiers.
func ParseLoadType(s string) (LoadType, error) {
	lt := LoadType(strings.TrimSpace(s))
	if _, ok := loadTypeMultipliers[lt]; !ok {
		return "", serr.NewConfiguration("unknown load_type "+quote(s), "one of: "+joinLoadTypes(), map[string]any{"load_type": s})
	}
	return lt, nil
}

func (lt LoadType) isDataCenter() bool {
	return lt == LoadDataCenterAlwaysOn || lt == LoadDataCenterFlexible
}

func (lt LoadType) isElectrolyzer() bool { return lt == LoadH2ElectrolyzerFirm }

// ResourceConfig is the on-site generation/storage mitigation strategy.
type ResourceConfig string

const (
	ResourceNone         ResourceConfig = "none"
	ResourceSolar        ResourceConfig = "solar"
	ResourceBattery      ResourceConfig = "battery"
	ResourceSolarBattery ResourceConfig = "solar_battery"
	ResourceFirmGen      ResourceConfig = "firm_gen"
)

// ResourceConfigs lists every resource config from least to most mitigation.
var ResourceConfigs = []ResourceConfig{
	ResourceNone,
	ResourceSolar,
	ResourceBattery,
	ResourceSolarBattery,
	ResourceFirmGen,
}

// ParseResourceConfig accepts only the canonical identifiers.
func ParseResourceConfig(s string) (ResourceConfig, error) {
	rc := ResourceConfig(strings.TrimSpace(s))
	if _, ok := resourceMitigation[rc]; !ok {
		names := make([]string, len(ResourceConfigs))
		for i, r := range ResourceConfigs {
			names[i] = string(r)
		}
		return "", serr.NewConfiguration("unknown resource_config "+quote(s), "one of: "+strings.Join(names, ", "), map[string]any{"resource_config": s})
	}
	return rc, nil
}

// FilterKind selects the spatial filter mode.
type FilterKind string

const (
	FilterNone   FilterKind = "none"
	FilterStates FilterKind = "states"
	FilterRadial FilterKind = "radial"
)

// RadialPoint is a query circle on the earth's surface.
type RadialPoint struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	RadiusKM float64 `json:"radius_km"`
}

// LocationFilter restricts the node set. A radial filter with several
// points keeps the union of their circles.
type LocationFilter struct {
	Kind   FilterKind    `json:"kind"`
	States []string      `json:"states,omitempty"`
	Points []RadialPoint `json:"points,omitempty"`
}

// NoFilter passes every node through.
func NoFilter() LocationFilter { return LocationFilter{Kind: FilterNone} }

// StatesFilter keeps nodes in any of the given states.
func StatesFilter(states ...string) LocationFilter {
	return LocationFilter{Kind: FilterStates, States: states}
}

// RadialFilter keeps nodes within radiusKM of (lat, lon).
func RadialFilter(lat, lon, radiusKM float64) LocationFilter {
	return LocationFilter{Kind: FilterRadial, Points: []RadialPoint{{Lat: lat, Lon: lon, RadiusKM: radiusKM}}}
}

// Validate rejects malformed filter shapes.
func (f LocationFilter) Validate() error {
	switch f.Kind {
	case "", FilterNone:
		if len(f.States) > 0 || len(f.Points) > 0 {
			return serr.NewConfiguration("location_filter kind none must not carry states or points", "", nil)
		}
	case FilterStates:
		if len(f.States) == 0 {
			return serr.NewConfiguration("states filter requires at least one state", "e.g. {\"states\":[\"CA\"]}", nil)
		}
		for _, s := range f.States {
			if nodes.NormalizeState(s) == "" {
				return serr.NewConfiguration("states filter contains an empty state code", "", nil)
			}
		}
	case FilterRadial:
		if len(f.Points) == 0 {
			return serr.NewConfiguration("radial filter requires at least one point", "provide lat, lon, radius_km", nil)
		}
		for i, p := range f.Points {
			if !finite(p.Lat) || p.Lat < -90 || p.Lat > 90 {
				return serr.NewConfiguration("radial filter latitude out of range", "-90..90", map[string]any{"point": i, "lat": p.Lat})
			}
			if !finite(p.Lon) || p.Lon < -180 || p.Lon > 180 {
				return serr.NewConfiguration("radial filter longitude out of range", "-180..180", map[string]any{"point": i, "lon": p.Lon})
			}
			if !finite(p.RadiusKM) || p.RadiusKM < 0 {
				return serr.NewConfiguration("radial filter radius_km must be >= 0", "", map[string]any{"point": i, "radius_km": p.RadiusKM})
			}
		}
	default:
		return serr.NewConfiguration("unknown location_filter kind "+quote(string(f.Kind)), "one of: none, states, radial", nil)
	}
	return nil
}

// Scenario is the caller's siting request.
type Scenario struct {
	LoadType            LoadType       `json:"load_type"`
	LoadSizeMW          float64        `json:"load_size_mw"`
	Location            LocationFilter `json:"location_filter"`
	EmissionsPreference int            `json:"emissions_preference"`
	ResourceConfig      ResourceConfig `json:"resource_config"`
	TopN                int            `json:"top_n"`
}

// Validate checks every scenario field; the first violation is returned
// as a configuration error.
func (s Scenario) Validate() error {
	if _, err := ParseLoadType(string(s.LoadType)); err != nil {
		return err
	}
	if _, err := ParseResourceConfig(string(s.ResourceConfig)); err != nil {
		return err
	}
	if !finite(s.LoadSizeMW) || s.LoadSizeMW <= 0 {
		return serr.NewConfiguration("load_size_mw must be > 0", "", map[string]any{"load_size_mw": s.LoadSizeMW})
	}
	if s.EmissionsPreference < 0 || s.EmissionsPreference > 100 {
		return serr.NewConfiguration("emissions_preference must be within 0..100", "", map[string]any{"emissions_preference": s.EmissionsPreference})
	}
	if s.TopN <= 0 {
		return serr.NewConfiguration("top_n must be > 0", "", map[string]any{"top_n": s.TopN})
	}
	return s.Location.Validate()
}

// Component names one of the six scoring dimensions.
type Component string

const (
	CompCost        Component = "cost"
	CompLand        Component = "land"
	CompEmissions   Component = "emissions"
	CompPolicy      Component = "policy"
	CompQueue       Component = "queue"
	CompVariability Component = "variability"
)

// AllComponents lists the components in their canonical order.
var AllComponents = []Component{CompCost, CompLand, CompEmissions, CompPolicy, CompQueue, CompVariability}

// Weights is a per-component vector. Weight vectors sum to 1; the same
// shape is used for multiplier rows, which do not.
type Weights struct {
	Cost        float64 `json:"cost"`
	Land        float64 `json:"land"`
	Emissions   float64 `json:"emissions"`
	Policy      float64 `json:"policy"`
	Queue       float64 `json:"queue"`
	Variability float64 `json:"variability"`
}

// Get returns the entry for c.
func (w Weights) Get(c Component) float64 {
	switch c {
	case CompCost:
		return w.Cost
	case CompLand:
		return w.Land
	case CompEmissions:
		return w.Emissions
	case CompPolicy:
		return w.Policy
	case CompQueue:
		return w.Queue
	case CompVariability:
		return w.Variability
	}
	return 0
}

func (w *Weights) set(c Component, v float64) {
	switch c {
	case CompCost:
		w.Cost = v
	case CompLand:
		w.Land = v
	case CompEmissions:
		w.Emissions = v
	case CompPolicy:
		w.Policy = v
	case CompQueue:
		w.Queue = v
	case CompVariability:
		w.Variability = v
	}
}

// Sum returns the total of all entries.
func (w Weights) Sum() float64 {
	return w.Cost + w.Land + w.Emissions + w.Policy + w.Queue + w.Variability
}

// Validate checks that w is a weight vector.
func (w Weights) Validate() error {
	if math.Abs(w.Sum()-1.0) > 1e-3 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, c := range AllComponents {
		if w.Get(c) < 0 {
			return fmt.Errorf("negative weight for %s: %f", c, w.Get(c))
		}
	}
	return nil
}

// Components holds the per-node component scores, each in [0,1].
type Components struct {
	Cost                    float64 `json:"cost_score"`
	Land                    float64 `json:"land_score"`
	Emissions               float64 `json:"emissions_score"`
	Policy                  float64 `json:"policy_score"`
	Queue                   float64 `json:"queue_score"`
	PriceVariabilityPenalty float64 `json:"price_variability_penalty_score"`
}

// Get returns the component score for c; variability maps to the
// unadjusted price variability penalty score.
func (c Components) Get(comp Component) float64 {
	switch comp {
	case CompCost:
		return c.Cost
	case CompLand:
		return c.Land
	case CompEmissions:
		return c.Emissions
	case CompPolicy:
		return c.Policy
	case CompQueue:
		return c.Queue
	case CompVariability:
		return c.PriceVariabilityPenalty
	}
	return 0
}

// Result is one ranked node.
type Result struct {
	Node                             nodes.Node `json:"node"`
	Components                       Components `json:"components"`
	EffectivePriceVariabilityPenalty float64    `json:"effective_price_variability_penalty_score"`
	ScoreBaseline                    float64    `json:"score_baseline"`
	ScoreScenario                    float64    `json:"score_scenario"`
	RankScenario                     int        `json:"rank_scenario"`
	RankBaseline                     int        `json:"rank_baseline"`
	DistanceKM                       *float64   `json:"distance_km,omitempty"`

	order int
}

// scenarioComponent returns the component score used by the scenario
// composite, with the resource-adjusted variability.
func (r Result) scenarioComponent(c Component) float64 {
	if c == CompVariability {
		return r.EffectivePriceVariabilityPenalty
	}
	return r.Components.Get(c)
}

// Stats counts rows at each pipeline stage.
type Stats struct {
	InputRows    int          `json:"input_rows"`
	ValidRows    int          `json:"valid_rows"`
	FilteredRows int          `json:"filtered_rows"`
	ReturnedRows int          `json:"returned_rows"`
	Validation   nodes.Report `json:"validation"`
}

// Ranking is the output of RankNodes.
type Ranking struct {
	Scenario        Scenario `json:"scenario"`
	BaselineWeights Weights  `json:"baseline_weights"`
	ScenarioWeights Weights  `json:"scenario_weights"`
	Results         []Result `json:"results"`
	Stats           Stats    `json:"stats"`
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func quote(s string) string { return fmt.Sprintf("%q", s) }

func joinLoadTypes() string {
	names := make([]string, 0, len(LoadTypes))
	for _, lt := range LoadTypes {
		names = append(names, string(lt))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
