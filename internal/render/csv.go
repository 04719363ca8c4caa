package render

import (
	"encoding/csv"
	"io"
	"strconv"

	"gridsite/internal/siting"
)

var csvHeader = []string{
	"rank", "rank_baseline", "node", "state", "county", "iso", "latitude", "longitude",
	"score_scenario", "score_baseline",
	"cost_score", "land_score", "emissions_score", "policy_score", "queue_score",
	"price_variability_penalty_score", "effective_price_variability_penalty_score",
	"distance_km",
}

// WriteCSV writes results as CSV, one row per node in rank order. Null
// coordinates and distances are left empty.
func WriteCSV(w io.Writer, results []siting.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		n := r.Node
		c := r.Components
		row := []string{
			strconv.Itoa(r.RankScenario),
			strconv.Itoa(r.RankBaseline),
			n.Node, n.State, n.County, n.ISO,
			nullable(n.Latitude.Float64, n.Latitude.Valid),
			nullable(n.Longitude.Float64, n.Longitude.Valid),
			num(r.ScoreScenario), num(r.ScoreBaseline),
			num(c.Cost), num(c.Land), num(c.Emissions), num(c.Policy), num(c.Queue),
			num(c.PriceVariabilityPenalty), num(r.EffectivePriceVariabilityPenalty),
			"",
		}
		if r.DistanceKM != nil {
			row[len(row)-1] = num(*r.DistanceKM)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

func nullable(v float64, ok bool) string {
	if !ok {
		return ""
	}
	return num(v)
}
