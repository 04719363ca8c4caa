package siting

import (
	"fmt"
	"sort"
	"strings"

	serr "gridsite/internal/errors"
	"gridsite/internal/nodes"
)

// Thresholds for calling a component a strength or a weakness.
const (
	strengthThreshold = 0.7
	weaknessThreshold = 0.3
)

// Contribution is one component's share of a node's scenario score.
type Contribution struct {
	Component    Component `json:"component"`
	Weight       float64   `json:"weight"`
	Score        float64   `json:"score"`
	Contribution float64   `json:"contribution"`
}

// Explanation breaks down why a node landed where it did.
type Explanation struct {
	Node           string         `json:"node"`
	State          string         `json:"state"`
	RankScenario   int            `json:"rank_scenario"`
	RankBaseline   int            `json:"rank_baseline"`
	RankShift      int            `json:"rank_shift"`
	ScoreScenario  float64        `json:"score_scenario"`
	ScoreBaseline  float64        `json:"score_baseline"`
	Contributions  []Contribution `json:"contributions"`
	Strengths      []Component    `json:"strengths"`
	Weaknesses     []Component    `json:"weaknesses"`
	MitigationGain float64        `json:"mitigation_gain"`
	Summary        string         `json:"summary"`
}

// Explain describes the result for nodeID within r. The node must be
// among r.Results.
func Explain(r Ranking, nodeID string) (Explanation, error) {
	for _, res := range r.Results {
		if res.Node.Node == nodeID {
			return explainResult(res, r.ScenarioWeights, r.Scenario.ResourceConfig), nil
		}
	}
	return Explanation{}, serr.NewNotFound("node", nodeID)
}

// ExplainNode ranks the whole filtered set for s and explains nodeID,
// so nodes outside the top N can be explained too.
func ExplainNode(t nodes.Table, s Scenario, nodeID string) (Explanation, error) {
	s.TopN = t.Len()
	if s.TopN == 0 {
		s.TopN = 1
	}
	r, err := RankNodes(t, s)
	if err != nil {
		return Explanation{}, err
	}
	return Explain(r, nodeID)
}

func explainResult(res Result, w Weights, rc ResourceConfig) Explanation {
	ex := Explanation{
		Node:           res.Node.Node,
		State:          res.Node.State,
		RankScenario:   res.RankScenario,
		RankBaseline:   res.RankBaseline,
		RankShift:      res.RankBaseline - res.RankScenario,
		ScoreScenario:  res.ScoreScenario,
		ScoreBaseline:  res.ScoreBaseline,
		MitigationGain: res.EffectivePriceVariabilityPenalty - res.Components.PriceVariabilityPenalty,
		Strengths:      []Component{},
		Weaknesses:     []Component{},
	}
	for _, c := range AllComponents {
		score := res.scenarioComponent(c)
		ex.Contributions = append(ex.Contributions, Contribution{
			Component:    c,
			Weight:       w.Get(c),
			Score:        score,
			Contribution: w.Get(c) * score,
		})
		switch {
		case score >= strengthThreshold:
			ex.Strengths = append(ex.Strengths, c)
		case score <= weaknessThreshold:
			ex.Weaknesses = append(ex.Weaknesses, c)
		}
	}
	sort.SliceStable(ex.Contributions, func(i, j int) bool {
		return ex.Contributions[i].Contribution > ex.Contributions[j].Contribution
	})
	ex.Summary = summarize(ex, rc)
	return ex
}

func summarize(ex Explanation, rc ResourceConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s ranks #%d (baseline #%d) with score %.3f.", ex.Node, ex.RankScenario, ex.RankBaseline, ex.ScoreScenario)
	if len(ex.Contributions) > 0 {
		top := ex.Contributions[0]
		fmt.Fprintf(&b, " Largest contribution: %s (%.3f).", top.Component, top.Contribution)
	}
	if len(ex.Strengths) > 0 {
		fmt.Fprintf(&b, " Strengths: %s.", joinComponents(ex.Strengths))
	}
	if len(ex.Weaknesses) > 0 {
		fmt.Fprintf(&b, " Weaknesses: %s.", joinComponents(ex.Weaknesses))
	}
	if ex.MitigationGain > 0 {
		fmt.Fprintf(&b, " On-site %s raises the variability score by %.3f.", rc, ex.MitigationGain)
	}
	switch {
	case ex.RankShift > 0:
		fmt.Fprintf(&b, " The scenario moves it up %d places.", ex.RankShift)
	case ex.RankShift < 0:
		fmt.Fprintf(&b, " The scenario moves it down %d places.", -ex.RankShift)
	}
	return b.String()
}

func joinComponents(cs []Component) string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
