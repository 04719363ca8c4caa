// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// Translation of frontend siting requests into engine scenarios.

package adapter

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	serr "gridsite/internal/errors"
	"gridsite/internal/siting"
)

// Request is the frontend request shape.
type Request struct {
	LoadConfig LoadConfig `json:"loadConfig"`
	Location   Location   `json:"location"`
	TopN       *int       `json:"topN,omitempty"`
}

type LoadConfig struct {
	Type              string  `json:"type"`
	SubType           string  `json:"subType"`
	SizeMW            float64 `json:"sizeMW"`
	CarbonEmissions   float64 `json:"carbonEmissions"`
	OnSiteGeneration  YesNo   `json:"onSiteGeneration"`
	ConfigurationType string  `json:"configurationType"`
}

type Location struct {
	Mode           string   `json:"mode"`
	SelectedStates []string `json:"selectedStates"`
	SelectedPoints []Point  `json:"selectedPoints"`
}

type Point struct {
	ID  string  `json:"id,omitempty"`
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// YesNo accepts "yes"/"no" strings as well as JSON booleans.
type YesNo bool

func (y *YesNo) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*y = false
	case bool:
		*y = YesNo(x)
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "yes", "y", "true", "1":
			*y = true
		case "no", "n", "false", "0", "":
			*y = false
		default:
			return fmt.Errorf("onSiteGeneration: unexpected value %q", x)
		}
	default:
		return fmt.Errorf("onSiteGeneration: unexpected value %v", v)
	}
	return nil
}

// Options carries the server-side defaults applied during translation.
type Options struct {
	PointRadiusKM float64
	DefaultTopN   int
	MaxTopN       int
}

// DecodeRequest parses a frontend request body.
func DecodeRequest(body []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return Request{}, serr.NewInvalidInput("malformed request: "+err.Error(), "expected {loadConfig:{...}, location:{...}}", nil)
	}
	return req, nil
}

// TranslateRequest maps a frontend request onto a validated scenario.
func TranslateRequest(req Request, opts Options) (siting.Scenario, error) {
	lt, err := NormalizeLoadType(req.LoadConfig.Type, req.LoadConfig.SubType)
	if err != nil {
		return siting.Scenario{}, err
	}
	rc := siting.ResourceNone
	if req.LoadConfig.OnSiteGeneration {
		if rc, err = NormalizeResourceConfig(req.LoadConfig.ConfigurationType); err != nil {
			return siting.Scenario{}, err
		}
		// Asking for on-site generation and naming none is contradictory.
		if rc == siting.ResourceNone {
			return siting.Scenario{}, serr.NewConfiguration(
				"onSiteGeneration is yes but configurationType "+quote(req.LoadConfig.ConfigurationType)+" names no on-site resource",
				"set configurationType to one of: solar, battery, solar_battery, firm_gen, or onSiteGeneration to no",
				map[string]any{"configurationType": req.LoadConfig.ConfigurationType})
		}
	}
	loc, err := translateLocation(req.Location, opts.PointRadiusKM)
	if err != nil {
		return siting.Scenario{}, err
	}
	s := siting.Scenario{
		LoadType:            lt,
		LoadSizeMW:          req.LoadConfig.SizeMW,
		Location:            loc,
		EmissionsPreference: preference(req.LoadConfig.CarbonEmissions),
		ResourceConfig:      rc,
		TopN:                clampTopN(req.TopN, opts),
	}
	if err := s.Validate(); err != nil {
		return siting.Scenario{}, err
	}
	return s, nil
}

func translateLocation(l Location, radiusKM float64) (siting.LocationFilter, error) {
	switch normalizeKey(l.Mode) {
	case "", "none", "all", "national", "nationwide":
		return siting.NoFilter(), nil
	case "states", "state":
		if len(l.SelectedStates) == 0 {
			return siting.NoFilter(), nil
		}
		codes := make([]string, 0, len(l.SelectedStates))
		for _, s := range l.SelectedStates {
			code, err := StateCode(s)
			if err != nil {
				return siting.LocationFilter{}, err
			}
			codes = append(codes, code)
		}
		return siting.StatesFilter(codes...), nil
	case "points", "point", "radial":
		if len(l.SelectedPoints) == 0 {
			return siting.NoFilter(), nil
		}
		f := siting.LocationFilter{Kind: siting.FilterRadial}
		for _, p := range l.SelectedPoints {
			f.Points = append(f.Points, siting.RadialPoint{Lat: p.Lat, Lon: p.Lng, RadiusKM: radiusKM})
		}
		return f, nil
	}
	return siting.LocationFilter{}, serr.NewConfiguration("unknown location mode "+quote(l.Mode), "one of: states, points", nil)
}

// NormalizeLoadType maps free-text type/subtype pairs onto a load type.
// Canonical identifiers pass through unchanged.
func NormalizeLoadType(typ, subType string) (siting.LoadType, error) {
	t := normalizeKey(typ)
	sub := normalizeKey(subType)
	if lt, err := siting.ParseLoadType(t); err == nil {
		return lt, nil
	}
	flexible := strings.Contains(sub, "flex") || strings.Contains(sub, "interrupt") || strings.Contains(sub, "curtail")
	switch t {
	case "data_center", "datacenter", "dc", "hyperscale":
		if flexible {
			return siting.LoadDataCenterFlexible, nil
		}
		return siting.LoadDataCenterAlwaysOn, nil
	case "hydrogen", "h2", "electrolyzer", "h2_electrolyzer":
		return siting.LoadH2ElectrolyzerFirm, nil
	case "industrial", "manufacturing":
		if flexible {
			return siting.LoadIndustrialFlexible, nil
		}
		return siting.LoadIndustrialContinuous, nil
	case "commercial", "campus", "office":
		return siting.LoadCommercialCampus, nil
	}
	return "", serr.NewConfiguration("unknown load type "+quote(typ), "one of: data_center, hydrogen, industrial, commercial", map[string]any{"type": typ, "subType": subType})
}

// NormalizeResourceConfig maps frontend configuration names onto a
// resource config.
func NormalizeResourceConfig(s string) (siting.ResourceConfig, error) {
	key := normalizeKey(s)
	if rc, err := siting.ParseResourceConfig(key); err == nil {
		return rc, nil
	}
	switch key {
	case "", "no", "grid", "grid_only":
		return siting.ResourceNone, nil
	case "pv", "solar_pv":
		return siting.ResourceSolar, nil
	case "storage", "bess", "batteries":
		return siting.ResourceBattery, nil
	case "solar_plus_battery", "solar_and_battery", "solar_storage", "hybrid":
		return siting.ResourceSolarBattery, nil
	case "firm", "gas", "natural_gas", "generator", "fuel_cell", "firm_generation":
		return siting.ResourceFirmGen, nil
	}
	return "", serr.NewConfiguration("unknown configurationType "+quote(s), "one of: solar, battery, solar_battery, firm_gen", map[string]any{"configurationType": s})
}

// normalizeKey lower-cases s and joins its alphanumeric runs with
// underscores, so "Solar + Battery" and "solar-battery" both become
// "solar_battery".
func normalizeKey(s string) string {
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return strings.Join(parts, "_")
}

// preference rounds the 0-100 slider; out of range values are left for
// scenario validation to reject.
func preference(v float64) int {
	if math.IsNaN(v) {
		return -1
	}
	return int(math.Round(v))
}

// clampTopN applies the default when n is unset and caps it at the
// server maximum. Explicit non-positive values pass through for scenario
// validation to reject.
func clampTopN(n *int, opts Options) int {
	if n == nil {
		return opts.DefaultTopN
	}
	if opts.MaxTopN > 0 && *n > opts.MaxTopN {
		return opts.MaxTopN
	}
	return *n
}

func quote(s string) string { return fmt.Sprintf("%q", s) }
