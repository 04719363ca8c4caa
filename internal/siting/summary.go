package siting

import (
	"sort"
)

// Count is the number of results sharing one key.
type Count struct {
	Key   string  `json:"key"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// Summary describes the distribution of a result set.
type Summary struct {
	Results           int      `json:"results"`
	ByState           []Count  `json:"by_state"`
	ByISO             []Count  `json:"by_iso"`
	MeanLMP           float64  `json:"mean_avg_lmp"`
	MeanEmissions     float64  `json:"mean_emissions_intensity"`
	MeanPricePerAcre  float64  `json:"mean_price_per_acre"`
	MeanScoreScenario float64  `json:"mean_score_scenario"`
	Leaders           []Leader `json:"leaders"`
}

// Leader is the best scoring result on one component.
type Leader struct {
	Component Component `json:"component"`
	Node      string    `json:"node"`
	State     string    `json:"state"`
	Score     float64   `json:"score"`
}

// Summarize counts results per state and ISO and averages the raw cost,
// emissions and land price of the set. Counts are ordered by count
// descending, then key.
func Summarize(results []Result) Summary {
	s := Summary{Results: len(results), ByState: []Count{}, ByISO: []Count{}, Leaders: []Leader{}}
	if len(results) == 0 {
		return s
	}
	states := map[string]int{}
	isos := map[string]int{}
	for _, r := range results {
		states[r.Node.State]++
		iso := r.Node.ISO
		if iso == "" {
			iso = "unknown"
		}
		isos[iso]++
		s.MeanLMP += r.Node.AvgLMP.Float64
		s.MeanEmissions += r.Node.EmissionsIntensity.Float64
		s.MeanPricePerAcre += r.Node.AvgPricePerAcre.Float64
		s.MeanScoreScenario += r.ScoreScenario
	}
	n := float64(len(results))
	s.MeanLMP /= n
	s.MeanEmissions /= n
	s.MeanPricePerAcre /= n
	s.MeanScoreScenario /= n
	s.ByState = counts(states, n)
	s.ByISO = counts(isos, n)
	for _, c := range AllComponents {
		best := TopBy(results, c, 1)[0]
		s.Leaders = append(s.Leaders, Leader{Component: c, Node: best.Node.Node, State: best.Node.State, Score: best.scenarioComponent(c)})
	}
	return s
}

func counts(m map[string]int, total float64) []Count {
	out := make([]Count, 0, len(m))
	for k, c := range m {
		out = append(out, Count{Key: k, Count: c, Share: float64(c) / total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// TopBy returns up to n results ordered by component c descending. The
// variability component uses the effective score.
func TopBy(results []Result, c Component, n int) []Result {
	out := append([]Result(nil), results...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].scenarioComponent(c) > out[j].scenarioComponent(c)
	})
	return truncate(out, n)
}
