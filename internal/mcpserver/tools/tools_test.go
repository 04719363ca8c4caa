package tools

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"gridsite/internal/adapter"
	"gridsite/internal/config"
	"gridsite/internal/dataset"
	serr "gridsite/internal/errors"
	"gridsite/internal/nodes"
	"gridsite/internal/siting"
)

const nodesCSV = `node,latitude,longitude,state,iso,avg_lmp,avg_price_per_acre,county_emissions_intensity_kg_per_mwh,queue_pending_mw,queue_pressure_index,price_variance_score,policy_fit_datacenter,state_clean_energy_friendly
SF_BAY,37.77,-122.42,CA,CAISO,42.1,45000,210,1200,0.8,35,0.7,1
SAC_VALLEY,38.58,-121.49,CA,CAISO,39.5,12000,230,800,0.5,30,0.7,1
HOUSTON,29.76,-95.37,TX,ERCOT,31.2,6000,420,4000,0.95,55,0.6,0
WEST_TX,31.99,-102.08,TX,ERCOT,24.6,1500,350,5200,0.85,70,0.5,0
PITTSBURGH,40.44,-79.99,PA,PJM,36.4,8000,520,600,0.3,20,0.5,1
NO_LMP,40.0,-80.0,PA,PJM,,8000,520,600,0.3,20,0.5,1
`

type stubDataset struct {
	table   nodes.Table
	reloads int
}

func (s *stubDataset) Table(ctx context.Context) (nodes.Table, error) { return s.table, nil }

func (s *stubDataset) Reload(ctx context.Context) (nodes.Table, error) {
	s.reloads++
	return s.table, nil
}

func (s *stubDataset) Info() dataset.Info {
	return dataset.Info{Source: "stub.csv", Kind: dataset.KindCSV, Rows: s.table.Len(), Columns: s.table.Columns, Loads: 1 + s.reloads}
}

func testDeps(t *testing.T) (Dependencies, *stubDataset) {
	t.Helper()
	tbl, err := dataset.ReadCSV(strings.NewReader(nodesCSV))
	require.NoError(t, err)
	ds := &stubDataset{table: tbl}
	return Dependencies{
		Config: config.Config{
			AppName:       "gridsite",
			Transport:     config.TransportStdio,
			DefaultTopN:   10,
			MaxTopN:       3,
			PointRadiusKM: 100,
		},
		Logger:  zap.NewNop(),
		Dataset: ds,
	}, ds
}

func ptr(v int) *int { return &v }

func fptr(v float64) *float64 { return &v }

func TestRankNodes(t *testing.T) {
	deps, _ := testDeps(t)
	out, err := RankNodes(context.Background(), deps, ScenarioInput{LoadType: "data_center_always_on", LoadSizeMW: 100})
	require.NoError(t, err)

	assert.Equal(t, 6, out.Stats.InputRows)
	assert.Equal(t, 5, out.Stats.ValidRows)
	require.Len(t, out.Results, 3, "top_n defaults to 10 and clamps to max_top_n")
	for i, r := range out.Results {
		assert.Equal(t, i+1, r.Rank)
		if i > 0 {
			assert.LessOrEqual(t, r.Score, out.Results[i-1].Score)
		}
	}
	assert.Equal(t, 50, out.Scenario.EmissionsPreference)
	assert.InDelta(t, 1.0, out.ScenarioWeights.Sum(), 1e-9)
	assert.Equal(t, 3, out.Summary.Results)
}

func TestRankNodesFilters(t *testing.T) {
	deps, _ := testDeps(t)
	out, err := RankNodes(context.Background(), deps, ScenarioInput{
		LoadType:            "hydrogen",
		LoadSizeMW:          300,
		EmissionsPreference: ptr(100),
		States:              []string{"Texas"},
	})
	require.NoError(t, err)
	require.Len(t, out.Results, 2)
	for _, r := range out.Results {
		assert.Equal(t, "TX", r.State)
	}
	assert.Equal(t, siting.LoadH2ElectrolyzerFirm, out.Scenario.LoadType)

	out, err = RankNodes(context.Background(), deps, ScenarioInput{
		LoadType:   "commercial_campus",
		LoadSizeMW: 10,
		Points:     []PointInput{{Lat: 37.77, Lon: -122.42, RadiusKM: fptr(0)}},
	})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "SF_BAY", out.Results[0].Node)
	require.NotNil(t, out.Results[0].DistanceKM)
	assert.Less(t, *out.Results[0].DistanceKM, 0.01)
}

func TestRankNodesRejectsBadScenario(t *testing.T) {
	deps, _ := testDeps(t)
	for name, in := range map[string]ScenarioInput{
		"load type":  {LoadType: "spaceport", LoadSizeMW: 10},
		"size":       {LoadType: "dc", LoadSizeMW: 0},
		"preference": {LoadType: "dc", LoadSizeMW: 10, EmissionsPreference: ptr(101)},
		"resource":   {LoadType: "dc", LoadSizeMW: 10, ResourceConfig: "wind"},
	} {
		_, err := RankNodes(context.Background(), deps, in)
		assert.True(t, serr.IsConfiguration(err), "%s: %v", name, err)
	}
}

func TestRankNodesWithoutDataset(t *testing.T) {
	deps, _ := testDeps(t)
	deps.Dataset = nil
	_, err := RankNodes(context.Background(), deps, ScenarioInput{LoadType: "dc", LoadSizeMW: 10})
	assert.True(t, serr.HasCode(err, serr.CodeDataUnavailable))
}

func TestRankRequest(t *testing.T) {
	deps, _ := testDeps(t)
	out, err := RankRequest(context.Background(), deps, RankRequestInput{Request: map[string]any{
		"loadConfig": map[string]any{
			"type": "Data Center", "subType": "flexible", "sizeMW": 40, "carbonEmissions": 20,
			"onSiteGeneration": "yes", "configurationType": "Solar + Battery",
		},
		"location": map[string]any{"mode": "states", "selectedStates": []string{"California", "PA"}},
		"topN":     2,
	}})
	require.NoError(t, err)
	assert.Equal(t, siting.LoadDataCenterFlexible, out.Scenario.LoadType)
	assert.Equal(t, siting.ResourceSolarBattery, out.Scenario.ResourceConfig)
	require.Len(t, out.Results, 2)

	_, err = RankRequest(context.Background(), deps, RankRequestInput{})
	assert.True(t, serr.HasCode(err, serr.CodeInvalidInput))
}

func TestComputeWeights(t *testing.T) {
	deps, _ := testDeps(t)
	out, err := ComputeWeights(context.Background(), deps, ComputeWeightsInput{LoadSizeMW: 250})
	require.NoError(t, err)
	assert.Equal(t, siting.SizeLarge, out.SizeBracket)
	require.Len(t, out.LoadTypes, len(siting.LoadTypes))
	for _, row := range out.LoadTypes {
		assert.InDelta(t, 1.0, row.Final.Sum(), 1e-9, row.LoadType)
	}

	out, err = ComputeWeights(context.Background(), deps, ComputeWeightsInput{LoadType: "electrolyzer", LoadSizeMW: 20, EmissionsPreference: ptr(0)})
	require.NoError(t, err)
	require.Len(t, out.LoadTypes, 1)
	assert.Equal(t, siting.LoadH2ElectrolyzerFirm, out.LoadTypes[0].LoadType)
	assert.Equal(t, 0, out.Preference)

	_, err = ComputeWeights(context.Background(), deps, ComputeWeightsInput{LoadSizeMW: -1})
	assert.True(t, serr.IsConfiguration(err))
}

func TestCompareResourceConfigs(t *testing.T) {
	deps, _ := testDeps(t)
	deps.Config.MaxTopN = 10
	out, err := CompareResourceConfigs(context.Background(), deps, CompareInput{Scenario: ScenarioInput{LoadType: "dc", LoadSizeMW: 100, TopN: ptr(5)}})
	require.NoError(t, err)
	require.Len(t, out.Configs, len(siting.ResourceConfigs))
	prev := -1.0
	for i, c := range out.Configs {
		assert.Equal(t, siting.ResourceConfigs[i], c.ResourceConfig)
		assert.Greater(t, c.Mitigation, prev)
		prev = c.Mitigation
		require.Len(t, c.Results, 5)
	}
	none := out.Configs[0].Results[0].Components.Variability
	firm := variabilityOf(out.Configs[4].Results, out.Configs[0].Results[0].Node)
	assert.GreaterOrEqual(t, firm, none)
}

func variabilityOf(items []adapter.ResponseItem, node string) float64 {
	for _, it := range items {
		if it.Node == node {
			return it.Components.Variability
		}
	}
	return math.NaN()
}

func TestSweepEmissions(t *testing.T) {
	deps, _ := testDeps(t)
	out, err := SweepEmissions(context.Background(), deps, SweepInput{Scenario: ScenarioInput{LoadType: "dc", LoadSizeMW: 100}})
	require.NoError(t, err)
	require.Len(t, out.Points, len(siting.DefaultSweep))
	for i := 1; i < len(out.Points); i++ {
		assert.GreaterOrEqual(t, out.Points[i].Weights.Emissions, out.Points[i-1].Weights.Emissions)
	}
}

func TestExplainNode(t *testing.T) {
	deps, _ := testDeps(t)
	out, err := ExplainNode(context.Background(), deps, ExplainNodeInput{Node: "PITTSBURGH", Scenario: ScenarioInput{LoadType: "dc", LoadSizeMW: 100, TopN: ptr(1)}})
	require.NoError(t, err)
	assert.Equal(t, "PITTSBURGH", out.Explanation.Node)
	assert.Len(t, out.Explanation.Contributions, len(siting.AllComponents))
	assert.NotEmpty(t, out.Explanation.Summary)

	_, err = ExplainNode(context.Background(), deps, ExplainNodeInput{Node: "NO_LMP", Scenario: ScenarioInput{LoadType: "dc", LoadSizeMW: 100}})
	assert.True(t, serr.HasCode(err, serr.CodeNotFound), "dropped rows cannot be explained: %v", err)

	_, err = ExplainNode(context.Background(), deps, ExplainNodeInput{Scenario: ScenarioInput{LoadType: "dc", LoadSizeMW: 100}})
	assert.True(t, serr.HasCode(err, serr.CodeInvalidInput))
}

func TestDatasetInfo(t *testing.T) {
	deps, ds := testDeps(t)
	out, err := DatasetInfo(context.Background(), deps, DatasetInfoInput{Reload: true})
	require.NoError(t, err)
	assert.Equal(t, 1, ds.reloads)
	assert.Equal(t, 6, out.Dataset.Rows)
	assert.Equal(t, 1, out.Validation.DroppedRows)
	assert.NotEmpty(t, out.Warnings)
}

func TestServerInfoAndPing(t *testing.T) {
	deps, _ := testDeps(t)
	info, err := ServerInfo(context.Background(), deps, ServerInfoInput{})
	require.NoError(t, err)
	assert.Equal(t, "gridsite", info.Name)
	assert.Equal(t, siting.LoadTypes, info.LoadTypes)
	assert.Equal(t, 6, info.Dataset.Rows)

	pong, err := Ping(context.Background(), deps, PingInput{})
	require.NoError(t, err)
	assert.Equal(t, "pong", pong.Pong)
}

func TestToolLogging(t *testing.T) {
	deps, _ := testDeps(t)
	core, logs := observer.New(zap.InfoLevel)
	deps.Logger = zap.New(core)

	_, err := RankNodes(context.Background(), deps, ScenarioInput{LoadType: "dc", LoadSizeMW: 100})
	require.NoError(t, err)
	entries := logs.FilterMessage("ranked nodes").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "data_center_always_on", entries[0].ContextMap()["load_type"])

	// a zero Dependencies logger falls back to a no-op
	deps.Logger = nil
	_, err = RankNodes(context.Background(), deps, ScenarioInput{LoadType: "dc", LoadSizeMW: 100})
	require.NoError(t, err)
	out, err := DatasetInfo(context.Background(), deps, DatasetInfoInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Validation.DroppedRows)
	assert.NotEmpty(t, out.Warnings)
}

func TestRankNodesRejectsNonPositiveTopN(t *testing.T) {
	deps, _ := testDeps(t)
	for _, n := range []int{0, -2} {
		_, err := RankNodes(context.Background(), deps, ScenarioInput{LoadType: "dc", LoadSizeMW: 100, TopN: ptr(n)})
		require.Error(t, err, "top_n %d", n)
		assert.True(t, serr.IsConfiguration(err), "top_n %d: %v", n, err)
	}

	out, err := RankNodes(context.Background(), deps, ScenarioInput{LoadType: "dc", LoadSizeMW: 100, TopN: ptr(2)})
	require.NoError(t, err)
	assert.Len(t, out.Results, 2)
}
