package render

import (
	"fmt"
	"io"
	"strconv"

	"gridsite/internal/siting"
)

// Rankings writes the ranked results of r with a one-line header
// describing the scenario and the row counts.
func Rankings(w io.Writer, r siting.Ranking) error {
	s := r.Scenario
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("%s, %.0f MW, emissions %d, %s", s.LoadType, s.LoadSizeMW, s.EmissionsPreference, s.ResourceConfig)))
	fmt.Fprintln(w, styleNote.Render(fmt.Sprintf("%d input rows, %d valid, %d after filter, %d shown",
		r.Stats.InputRows, r.Stats.ValidRows, r.Stats.FilteredRows, r.Stats.ReturnedRows)))
	if len(r.Results) == 0 {
		_, err := fmt.Fprintln(w, styleNote.Render("no nodes matched"))
		return err
	}
	withDist := r.Results[0].DistanceKM != nil
	t := &table{
		headers: []string{"#", "node", "state", "iso", "score", "base", "shift", "cost", "land", "emis", "policy", "queue", "var"},
		right:   map[int]bool{0: true, 4: true, 5: true, 6: true, 7: true, 8: true, 9: true, 10: true, 11: true, 12: true},
	}
	if withDist {
		t.headers = append(t.headers, "km")
		t.right[len(t.headers)-1] = true
	}
	for _, res := range r.Results {
		c := res.Components
		cells := []string{
			strconv.Itoa(res.RankScenario),
			res.Node.Node,
			res.Node.State,
			res.Node.ISO,
			f3(res.ScoreScenario),
			f3(res.ScoreBaseline),
			shift(res.RankBaseline - res.RankScenario),
			f3(c.Cost), f3(c.Land), f3(c.Emissions), f3(c.Policy), f3(c.Queue),
			f3(res.EffectivePriceVariabilityPenalty),
		}
		if withDist {
			km := ""
			if res.DistanceKM != nil {
				km = fmt.Sprintf("%.1f", *res.DistanceKM)
			}
			cells = append(cells, km)
		}
		t.add(cells...)
	}
	return t.write(w)
}

func shift(n int) string {
	switch {
	case n > 0:
		return styleUp.Render("+" + strconv.Itoa(n))
	case n < 0:
		return styleDown.Render(strconv.Itoa(n))
	}
	return "0"
}

// Weights writes one row per labelled weight vector.
func Weights(w io.Writer, title string, labels []string, vectors []siting.Weights) error {
	t := &table{title: title, headers: []string{""}, right: map[int]bool{}}
	for i, c := range siting.AllComponents {
		t.headers = append(t.headers, string(c))
		t.right[i+1] = true
	}
	for i, v := range vectors {
		cells := []string{labels[i]}
		for _, c := range siting.AllComponents {
			cells = append(cells, f3(v.Get(c)))
		}
		t.add(cells...)
	}
	return t.write(w)
}

// LoadTypeWeights writes the scenario weights of every load type.
func LoadTypeWeights(w io.Writer, rows []siting.LoadTypeWeights) error {
	labels := make([]string, len(rows))
	vectors := make([]siting.Weights, len(rows))
	for i, r := range rows {
		labels[i] = string(r.LoadType)
		vectors[i] = r.Weights
	}
	return Weights(w, "weights by load type", labels, vectors)
}

// Comparison writes the leader of each resource config.
func Comparison(w io.Writer, cmp []siting.ResourceComparison) error {
	t := &table{
		title:   "resource configurations",
		headers: []string{"config", "mitigation", "top node", "state", "score", "var"},
		right:   map[int]bool{1: true, 4: true, 5: true},
	}
	for _, c := range cmp {
		m, _ := siting.Mitigation(c.ResourceConfig)
		top, ok := c.TopResult()
		if !ok {
			t.add(string(c.ResourceConfig), pct(m), "-", "", "", "")
			continue
		}
		t.add(string(c.ResourceConfig), pct(m), top.Node.Node, top.Node.State, f3(top.ScoreScenario), f3(top.EffectivePriceVariabilityPenalty))
	}
	return t.write(w)
}

// Sweep writes the emissions weight and the leading node per preference.
func Sweep(w io.Writer, points []siting.EmissionsPoint) error {
	t := &table{
		title:   "emissions preference sweep",
		headers: []string{"preference", "emissions weight", "top node", "score"},
		right:   map[int]bool{0: true, 1: true, 3: true},
	}
	for _, p := range points {
		if len(p.Ranking.Results) == 0 {
			t.add(strconv.Itoa(p.Preference), f3(p.Weights.Emissions), "-", "")
			continue
		}
		top := p.Ranking.Results[0]
		t.add(strconv.Itoa(p.Preference), f3(p.Weights.Emissions), top.Node.Node, f3(top.ScoreScenario))
	}
	return t.write(w)
}

// Explanation writes the contribution breakdown of one node.
func Explanation(w io.Writer, ex siting.Explanation) error {
	t := &table{
		title:   fmt.Sprintf("%s (%s)", ex.Node, ex.State),
		headers: []string{"component", "weight", "score", "contribution"},
		right:   map[int]bool{1: true, 2: true, 3: true},
	}
	for _, c := range ex.Contributions {
		t.add(string(c.Component), f3(c.Weight), f3(c.Score), f3(c.Contribution))
	}
	if err := t.write(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, ex.Summary)
	return err
}

// Summary writes the state and ISO breakdown of a result set.
func Summary(w io.Writer, s siting.Summary) error {
	fmt.Fprintln(w, styleNote.Render(fmt.Sprintf("%d results, mean score %.3f, mean LMP %.2f, mean emissions %.1f, mean land %.0f/acre",
		s.Results, s.MeanScoreScenario, s.MeanLMP, s.MeanEmissions, s.MeanPricePerAcre)))
	for _, part := range []struct {
		title  string
		counts []siting.Count
	}{{"by state", s.ByState}, {"by iso", s.ByISO}} {
		t := &table{title: part.title, headers: []string{"key", "count", "share"}, right: map[int]bool{1: true, 2: true}}
		for _, c := range part.counts {
			t.add(c.Key, strconv.Itoa(c.Count), pct(c.Share))
		}
		if err := t.write(w); err != nil {
			return err
		}
	}
	if len(s.Leaders) == 0 {
		return nil
	}
	t := &table{title: "component leaders", headers: []string{"component", "node", "state", "score"}, right: map[int]bool{3: true}}
	for _, l := range s.Leaders {
		t.add(string(l.Component), l.Node, l.State, f3(l.Score))
	}
	return t.write(w)
}
