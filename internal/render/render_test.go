package render

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridsite/internal/nodes"
	"gridsite/internal/siting"
)

func sampleRanking() siting.Ranking {
	d := 4.4
	return siting.Ranking{
		Scenario: siting.Scenario{
			LoadType:            siting.LoadDataCenterAlwaysOn,
			LoadSizeMW:          100,
			EmissionsPreference: 50,
			ResourceConfig:      siting.ResourceBattery,
			TopN:                2,
		},
		Results: []siting.Result{
			{
				Node:                             nodes.Node{Node: "WEST_TX", State: "TX", ISO: "ERCOT", Latitude: nodes.Val(31.99), Longitude: nodes.Val(-102.08)},
				Components:                       siting.Components{Cost: 1, Land: 1, Emissions: 0.5, Policy: 0.6, Queue: 0.3, PriceVariabilityPenalty: 0.2},
				EffectivePriceVariabilityPenalty: 0.48,
				ScoreScenario:                    0.71,
				ScoreBaseline:                    0.66,
				RankScenario:                     1,
				RankBaseline:                     3,
				DistanceKM:                       &d,
			},
			{
				Node:          nodes.Node{Node: "NYC", State: "NY", ISO: "NYISO"},
				ScoreScenario: 0.4,
				ScoreBaseline: 0.5,
				RankScenario:  2,
				RankBaseline:  1,
			},
		},
		Stats: siting.Stats{InputRows: 8, ValidRows: 8, FilteredRows: 3, ReturnedRows: 2},
	}
}

func TestRankings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Rankings(&buf, sampleRanking()))
	out := buf.String()
	assert.Contains(t, out, "data_center_always_on, 100 MW, emissions 50, battery")
	assert.Contains(t, out, "8 input rows, 8 valid, 3 after filter, 2 shown")
	assert.Contains(t, out, "WEST_TX")
	assert.Contains(t, out, "+2")
	assert.Contains(t, out, "-1")
	assert.Contains(t, out, "4.4")
	assert.Contains(t, out, "0.480")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[3], "WEST_TX")
	assert.Contains(t, lines[4], "NYC")
}

func TestRankingsEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := sampleRanking()
	r.Results = nil
	require.NoError(t, Rankings(&buf, r))
	assert.Contains(t, buf.String(), "no nodes matched")
}

func TestLoadTypeWeights(t *testing.T) {
	rows, err := siting.WeightsByLoadType(100, 50)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, LoadTypeWeights(&buf, rows))
	out := buf.String()
	for _, lt := range siting.LoadTypes {
		assert.Contains(t, out, string(lt))
	}
	for _, c := range siting.AllComponents {
		assert.Contains(t, out, string(c))
	}
}

func TestComparisonAndSweep(t *testing.T) {
	r := sampleRanking()
	var buf bytes.Buffer
	require.NoError(t, Comparison(&buf, []siting.ResourceComparison{
		{ResourceConfig: siting.ResourceNone, Ranking: siting.Ranking{}},
		{ResourceConfig: siting.ResourceFirmGen, Ranking: r},
	}))
	assert.Contains(t, buf.String(), "85.0%")
	assert.Contains(t, buf.String(), "WEST_TX")

	buf.Reset()
	require.NoError(t, Sweep(&buf, []siting.EmissionsPoint{{Preference: 75, Weights: siting.Weights{Emissions: 0.3}, Ranking: r}}))
	assert.Contains(t, buf.String(), "0.300")
	assert.Contains(t, buf.String(), "0.710")
}

func TestExplanationAndSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Explanation(&buf, siting.Explanation{
		Node:          "WEST_TX",
		State:         "TX",
		Contributions: []siting.Contribution{{Component: siting.CompCost, Weight: 0.25, Score: 1, Contribution: 0.25}},
		Summary:       "WEST_TX ranks #1.",
	}))
	assert.Contains(t, buf.String(), "WEST_TX (TX)")
	assert.Contains(t, buf.String(), "0.250")
	assert.Contains(t, buf.String(), "WEST_TX ranks #1.")

	buf.Reset()
	require.NoError(t, Summary(&buf, siting.Summarize(sampleRanking().Results)))
	assert.Contains(t, buf.String(), "2 results")
	assert.Contains(t, buf.String(), "50.0%")
	assert.Contains(t, buf.String(), "ERCOT")
	assert.Contains(t, buf.String(), "component leaders")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRanking().Results))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "WEST_TX", records[1][2])
	assert.Equal(t, "4.400000", records[1][len(csvHeader)-1])
	assert.Equal(t, "0.480000", records[1][16])
	assert.Equal(t, "", records[2][6], "null latitude")
	assert.Equal(t, "", records[2][len(csvHeader)-1])
}
