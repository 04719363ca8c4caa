package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	serr "gridsite/internal/errors"
	"gridsite/internal/siting"
)

// ScenarioFile is a scenario stored on disk as YAML, TOML or JSON. Load
// types and resource configs accept the same free text as frontend
// requests.
type ScenarioFile struct {
	LoadType            string      `json:"load_type" yaml:"load_type" toml:"load_type"`
	SubType             string      `json:"sub_type,omitempty" yaml:"sub_type,omitempty" toml:"sub_type,omitempty"`
	LoadSizeMW          float64     `json:"load_size_mw" yaml:"load_size_mw" toml:"load_size_mw"`
	EmissionsPreference *int        `json:"emissions_preference,omitempty" yaml:"emissions_preference,omitempty" toml:"emissions_preference,omitempty"`
	ResourceConfig      string      `json:"resource_config,omitempty" yaml:"resource_config,omitempty" toml:"resource_config,omitempty"`
	TopN                *int        `json:"top_n,omitempty" yaml:"top_n,omitempty" toml:"top_n,omitempty"`
	States              []string    `json:"states,omitempty" yaml:"states,omitempty" toml:"states,omitempty"`
	Points              []PointSpec `json:"points,omitempty" yaml:"points,omitempty" toml:"points,omitempty"`
}

// DefaultEmissionsPreference applies when a scenario leaves the emissions
// preference unset.
const DefaultEmissionsPreference = 50

// PointSpec is a radial filter point; an unset radius takes the default.
type PointSpec struct {
	Lat      float64  `json:"lat" yaml:"lat" toml:"lat"`
	Lon      float64  `json:"lon" yaml:"lon" toml:"lon"`
	RadiusKM *float64 `json:"radius_km,omitempty" yaml:"radius_km,omitempty" toml:"radius_km,omitempty"`
}

// LoadScenarioFile reads a scenario file, choosing the decoder by
// extension, and translates it into a validated scenario.
func LoadScenarioFile(path string, opts Options) (siting.Scenario, error) {
	sf, err := ReadScenarioFile(path)
	if err != nil {
		return siting.Scenario{}, err
	}
	return sf.Scenario(opts)
}

// ReadScenarioFile reads and decodes a scenario file without translating
// it, so callers can override fields first.
func ReadScenarioFile(path string) (ScenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ScenarioFile{}, err
	}
	sf, err := DecodeScenarioFile(filepath.Ext(path), data)
	if err != nil {
		return ScenarioFile{}, fmt.Errorf("%s: %w", path, err)
	}
	return sf, nil
}

// DecodeScenarioFile decodes data according to ext (".yaml", ".yml",
// ".toml" or ".json"). Unknown keys are rejected so typos are not
// silently ignored.
func DecodeScenarioFile(ext string, data []byte) (ScenarioFile, error) {
	var sf ScenarioFile
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sf); err != nil {
			return ScenarioFile{}, serr.NewInvalidInput("invalid yaml scenario: "+err.Error(), "", nil)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sf); err != nil {
			return ScenarioFile{}, serr.NewInvalidInput("invalid toml scenario: "+err.Error(), "", nil)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sf); err != nil {
			return ScenarioFile{}, serr.NewInvalidInput("invalid json scenario: "+err.Error(), "", nil)
		}
	default:
		return ScenarioFile{}, serr.NewInvalidInput("unsupported scenario file extension "+quote(ext), "use .yaml, .toml or .json", nil)
	}
	return sf, nil
}

// Scenario translates the file into a validated scenario.
func (sf ScenarioFile) Scenario(opts Options) (siting.Scenario, error) {
	lt, err := NormalizeLoadType(sf.LoadType, sf.SubType)
	if err != nil {
		return siting.Scenario{}, err
	}
	rc, err := NormalizeResourceConfig(sf.ResourceConfig)
	if err != nil {
		return siting.Scenario{}, err
	}
	loc := siting.NoFilter()
	switch {
	case len(sf.States) > 0 && len(sf.Points) > 0:
		return siting.Scenario{}, serr.NewConfiguration("scenario file sets both states and points", "choose one location filter", nil)
	case len(sf.States) > 0:
		codes := make([]string, 0, len(sf.States))
		for _, s := range sf.States {
			code, err := StateCode(s)
			if err != nil {
				return siting.Scenario{}, err
			}
			codes = append(codes, code)
		}
		loc = siting.StatesFilter(codes...)
	case len(sf.Points) > 0:
		loc = siting.LocationFilter{Kind: siting.FilterRadial}
		for _, p := range sf.Points {
			r := opts.PointRadiusKM
			if p.RadiusKM != nil {
				r = *p.RadiusKM
			}
			loc.Points = append(loc.Points, siting.RadialPoint{Lat: p.Lat, Lon: p.Lon, RadiusKM: r})
		}
	}
	pref := DefaultEmissionsPreference
	if sf.EmissionsPreference != nil {
		pref = *sf.EmissionsPreference
	}
	s := siting.Scenario{
		LoadType:            lt,
		LoadSizeMW:          sf.LoadSizeMW,
		Location:            loc,
		EmissionsPreference: pref,
		ResourceConfig:      rc,
		TopN:                clampTopN(sf.TopN, opts),
	}
	if err := s.Validate(); err != nil {
		return siting.Scenario{}, err
	}
	return s, nil
}
