package adapter

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serr "gridsite/internal/errors"
	"gridsite/internal/nodes"
	"gridsite/internal/siting"
)

var testOpts = Options{PointRadiusKM: 50, DefaultTopN: 10, MaxTopN: 100}

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }

func TestTranslateRequestStates(t *testing.T) {
	req, err := DecodeRequest([]byte(`{
		"loadConfig": {"type": "Data Center", "subType": "Always On", "sizeMW": 120, "carbonEmissions": 70.4, "onSiteGeneration": "no"},
		"location": {"mode": "states", "selectedStates": ["California", "tx"]}
	}`))
	require.NoError(t, err)

	s, err := TranslateRequest(req, testOpts)
	require.NoError(t, err)
	assert.Equal(t, siting.LoadDataCenterAlwaysOn, s.LoadType)
	assert.Equal(t, 120.0, s.LoadSizeMW)
	assert.Equal(t, 70, s.EmissionsPreference)
	assert.Equal(t, siting.ResourceNone, s.ResourceConfig)
	assert.Equal(t, 10, s.TopN)
	assert.Equal(t, siting.FilterStates, s.Location.Kind)
	assert.Equal(t, []string{"CA", "TX"}, s.Location.States)
}

func TestTranslateRequestPointsUnion(t *testing.T) {
	req := Request{
		LoadConfig: LoadConfig{Type: "hydrogen", SizeMW: 300, CarbonEmissions: 100},
		Location: Location{Mode: "points", SelectedPoints: []Point{
			{ID: "a", Lat: 37.8, Lng: -122.4},
			{ID: "b", Lat: 29.8, Lng: -95.4},
		}},
		TopN: intp(500),
	}
	s, err := TranslateRequest(req, testOpts)
	require.NoError(t, err)
	assert.Equal(t, siting.LoadH2ElectrolyzerFirm, s.LoadType)
	assert.Equal(t, 100, s.TopN, "top_n clamps to the server maximum")
	require.Len(t, s.Location.Points, 2)
	assert.Equal(t, siting.RadialPoint{Lat: 29.8, Lon: -95.4, RadiusKM: 50}, s.Location.Points[1])
}

func TestTranslateRequestEmptySelectionMeansNoFilter(t *testing.T) {
	req := Request{
		LoadConfig: LoadConfig{Type: "commercial", SizeMW: 20},
		Location:   Location{Mode: "states"},
	}
	s, err := TranslateRequest(req, testOpts)
	require.NoError(t, err)
	assert.Equal(t, siting.FilterNone, s.Location.Kind)
}

func TestTranslateRequestOnSiteGeneration(t *testing.T) {
	cases := []struct {
		onSite YesNo
		config string
		want   siting.ResourceConfig
	}{
		{false, "solar + battery", siting.ResourceNone},
		{true, "Solar + Battery", siting.ResourceSolarBattery},
		{true, "solar", siting.ResourceSolar},
		{true, "BESS", siting.ResourceBattery},
		{true, "natural gas", siting.ResourceFirmGen},
	}
	for _, c := range cases {
		req := Request{LoadConfig: LoadConfig{Type: "industrial", SubType: "flexible", SizeMW: 60, OnSiteGeneration: c.onSite, ConfigurationType: c.config}}
		s, err := TranslateRequest(req, testOpts)
		require.NoError(t, err, c.config)
		assert.Equal(t, c.want, s.ResourceConfig, c.config)
		assert.Equal(t, siting.LoadIndustrialFlexible, s.LoadType)
	}
}

func TestTranslateRequestErrors(t *testing.T) {
	cases := map[string]Request{
		"unknown type":   {LoadConfig: LoadConfig{Type: "spaceport", SizeMW: 10}},
		"unknown state":  {LoadConfig: LoadConfig{Type: "dc", SizeMW: 10}, Location: Location{Mode: "states", SelectedStates: []string{"Atlantis"}}},
		"unknown mode":   {LoadConfig: LoadConfig{Type: "dc", SizeMW: 10}, Location: Location{Mode: "polygon"}},
		"zero size":      {LoadConfig: LoadConfig{Type: "dc"}},
		"bad preference": {LoadConfig: LoadConfig{Type: "dc", SizeMW: 10, CarbonEmissions: 140}},
		"bad config":     {LoadConfig: LoadConfig{Type: "dc", SizeMW: 10, OnSiteGeneration: true, ConfigurationType: "wind farm"}},
		"on-site, empty": {LoadConfig: LoadConfig{Type: "dc", SizeMW: 10, OnSiteGeneration: true}},
		"on-site, grid":  {LoadConfig: LoadConfig{Type: "dc", SizeMW: 10, OnSiteGeneration: true, ConfigurationType: "grid"}},
		"on-site, none":  {LoadConfig: LoadConfig{Type: "dc", SizeMW: 10, OnSiteGeneration: true, ConfigurationType: "None"}},
		"zero top_n":     {LoadConfig: LoadConfig{Type: "dc", SizeMW: 10}, TopN: intp(0)},
		"negative top_n": {LoadConfig: LoadConfig{Type: "dc", SizeMW: 10}, TopN: intp(-3)},
	}
	for name, req := range cases {
		_, err := TranslateRequest(req, testOpts)
		require.Error(t, err, name)
		assert.True(t, serr.IsConfiguration(err), "%s: %v", name, err)
	}
}

func TestDecodeRequestMalformed(t *testing.T) {
	_, err := DecodeRequest([]byte(`{"loadConfig":`))
	require.Error(t, err)
	assert.True(t, serr.HasCode(err, serr.CodeInvalidInput))

	_, err = DecodeRequest([]byte(`{"loadConfig":{"onSiteGeneration":"maybe"}}`))
	require.Error(t, err)
}

func TestYesNoAcceptsBooleans(t *testing.T) {
	req, err := DecodeRequest([]byte(`{"loadConfig":{"type":"dc","sizeMW":5,"onSiteGeneration":true,"configurationType":"battery"}}`))
	require.NoError(t, err)
	assert.True(t, bool(req.LoadConfig.OnSiteGeneration))
}

func TestNormalizeLoadTypeCanonical(t *testing.T) {
	for _, lt := range siting.LoadTypes {
		got, err := NormalizeLoadType(string(lt), "")
		require.NoError(t, err)
		assert.Equal(t, lt, got)
	}
	got, err := NormalizeLoadType("Data-Center", "Flexible / interruptible")
	require.NoError(t, err)
	assert.Equal(t, siting.LoadDataCenterFlexible, got)
}

func TestStateCode(t *testing.T) {
	for in, want := range map[string]string{
		"new  york": "NY",
		"TX":        "TX",
		"pa":        "PA",
		"Texas":     "TX",
	} {
		got, err := StateCode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := StateCode("XX")
	assert.Error(t, err)
}

func TestFormatResponse(t *testing.T) {
	d := 12.5
	r := siting.Ranking{Results: []siting.Result{{
		Node: nodes.Node{
			Node:      "SF_BAY",
			State:     "CA",
			ISO:       "CAISO",
			Latitude:  sql.NullFloat64{Float64: 37.7, Valid: true},
			Longitude: sql.NullFloat64{Float64: -122.4, Valid: true},
			AvgLMP:    sql.NullFloat64{Float64: 41.2, Valid: true},
		},
		Components:                       siting.Components{Cost: 0.4, PriceVariabilityPenalty: 0.2},
		EffectivePriceVariabilityPenalty: 0.6,
		ScoreScenario:                    0.55,
		ScoreBaseline:                    0.5,
		RankScenario:                     1,
		RankBaseline:                     2,
		DistanceKM:                       &d,
	}}}

	items := FormatResponse(r)
	require.Len(t, items, 1)
	it := items[0]
	assert.Equal(t, "SF_BAY", it.Node)
	assert.Equal(t, 1, it.Rank)
	assert.Equal(t, 2, it.RankBaseline)
	assert.Equal(t, 0.6, it.Components.Variability)
	assert.Equal(t, 12.5, *it.DistanceKM)
	require.NotNil(t, it.Raw["avg_lmp"])
	assert.Equal(t, 41.2, *it.Raw["avg_lmp"])
	assert.Nil(t, it.Raw["avg_price_per_acre"])

	assert.Empty(t, FormatResponse(siting.Ranking{}))
}

func TestLoadScenarioFileFormats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"s.yaml": "load_type: Data Center\nsub_type: flexible\nload_size_mw: 80\nemissions_preference: 30\nresource_config: solar\nstates: [California, NY]\n",
		"s.toml": "load_type = \"data center\"\nsub_type = \"flexible\"\nload_size_mw = 80.0\nemissions_preference = 30\nresource_config = \"solar\"\nstates = [\"CA\", \"new york\"]\n",
		"s.json": `{"load_type":"data_center_flexible","load_size_mw":80,"emissions_preference":30,"resource_config":"solar","states":["ca","ny"]}`,
	}
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

		s, err := LoadScenarioFile(path, testOpts)
		require.NoError(t, err, name)
		assert.Equal(t, siting.LoadDataCenterFlexible, s.LoadType, name)
		assert.Equal(t, 80.0, s.LoadSizeMW, name)
		assert.Equal(t, 30, s.EmissionsPreference, name)
		assert.Equal(t, siting.ResourceSolar, s.ResourceConfig, name)
		assert.Equal(t, []string{"CA", "NY"}, s.Location.States, name)
		assert.Equal(t, 10, s.TopN, name)
	}
}

func TestScenarioFilePoints(t *testing.T) {
	sf, err := DecodeScenarioFile(".yml", []byte("load_type: hydrogen\nload_size_mw: 250\nemissions_preference: 90\npoints:\n  - {lat: 29.7, lon: -95.3}\n  - {lat: 40.4, lon: -80.0, radius_km: 120}\n"))
	require.NoError(t, err)
	s, err := sf.Scenario(testOpts)
	require.NoError(t, err)
	require.Len(t, s.Location.Points, 2)
	assert.Equal(t, 50.0, s.Location.Points[0].RadiusKM)
	assert.Equal(t, 120.0, s.Location.Points[1].RadiusKM)
}

func TestScenarioFileRejects(t *testing.T) {
	_, err := DecodeScenarioFile(".yaml", []byte("load_typ: dc\n"))
	assert.True(t, serr.HasCode(err, serr.CodeInvalidInput), "unknown key: %v", err)

	_, err = DecodeScenarioFile(".ini", nil)
	assert.True(t, serr.HasCode(err, serr.CodeInvalidInput))

	sf := ScenarioFile{LoadType: "dc", LoadSizeMW: 10, States: []string{"CA"}, Points: []PointSpec{{Lat: 1, Lon: 1}}}
	_, err = sf.Scenario(testOpts)
	assert.True(t, serr.IsConfiguration(err))
}

func TestScenarioFileExplicitValues(t *testing.T) {
	sf := ScenarioFile{
		LoadType:   "dc",
		LoadSizeMW: 10,
		Points:     []PointSpec{{Lat: 37.77, Lon: -122.42, RadiusKM: floatp(0)}, {Lat: 29.7, Lon: -95.3}},
	}
	s, err := sf.Scenario(testOpts)
	require.NoError(t, err)
	require.Len(t, s.Location.Points, 2)
	assert.Equal(t, 0.0, s.Location.Points[0].RadiusKM, "an explicit zero radius is kept")
	assert.Equal(t, 50.0, s.Location.Points[1].RadiusKM)
	assert.Equal(t, 10, s.TopN)
	assert.Equal(t, DefaultEmissionsPreference, s.EmissionsPreference)

	sf.EmissionsPreference = intp(0)
	sf.TopN = intp(500)
	s, err = sf.Scenario(testOpts)
	require.NoError(t, err)
	assert.Equal(t, 0, s.EmissionsPreference)
	assert.Equal(t, 100, s.TopN)

	for _, n := range []int{0, -5} {
		sf.TopN = intp(n)
		_, err = sf.Scenario(testOpts)
		require.Error(t, err, "top_n %d", n)
		assert.True(t, serr.IsConfiguration(err), "top_n %d: %v", n, err)
	}
}

func TestScenarioFileZeroRadiusFromYAML(t *testing.T) {
	sf, err := DecodeScenarioFile(".yaml", []byte("load_type: dc\nload_size_mw: 10\npoints:\n  - {lat: 37.77, lon: -122.42, radius_km: 0}\n"))
	require.NoError(t, err)
	require.Len(t, sf.Points, 1)
	require.NotNil(t, sf.Points[0].RadiusKM)
	s, err := sf.Scenario(testOpts)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Location.Points[0].RadiusKM)
}
