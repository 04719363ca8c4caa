package adapter

import (
	"database/sql"

	"gridsite/internal/siting"
)

// ResponseItem is one ranked node in the flat frontend response.
type ResponseItem struct {
	Node          string              `json:"node"`
	State         string              `json:"state"`
	County        string              `json:"county,omitempty"`
	Location      string              `json:"location,omitempty"`
	ISO           string              `json:"iso,omitempty"`
	Latitude      float64             `json:"latitude"`
	Longitude     float64             `json:"longitude"`
	Score         float64             `json:"score"`
	ScoreBaseline float64             `json:"score_baseline"`
	Rank          int                 `json:"rank"`
	RankBaseline  int                 `json:"rank_baseline"`
	DistanceKM    *float64            `json:"distance_km,omitempty"`
	Components    ComponentScores     `json:"components"`
	Raw           map[string]*float64 `json:"raw"`
}

// ComponentScores lists the component scores; variability is the
// resource-adjusted value the scenario score used.
type ComponentScores struct {
	Cost        float64 `json:"cost"`
	Land        float64 `json:"land"`
	Emissions   float64 `json:"emissions"`
	Policy      float64 `json:"policy"`
	Queue       float64 `json:"queue"`
	Variability float64 `json:"variability"`
}

// FormatResponse flattens a ranking into the frontend array, in rank
// order. An empty ranking yields an empty, non-nil slice.
func FormatResponse(r siting.Ranking) []ResponseItem {
	out := make([]ResponseItem, 0, len(r.Results))
	for _, res := range r.Results {
		n := res.Node
		out = append(out, ResponseItem{
			Node:          n.Node,
			State:         n.State,
			County:        n.County,
			Location:      n.CountyStatePairs,
			ISO:           n.ISO,
			Latitude:      n.Latitude.Float64,
			Longitude:     n.Longitude.Float64,
			Score:         res.ScoreScenario,
			ScoreBaseline: res.ScoreBaseline,
			Rank:          res.RankScenario,
			RankBaseline:  res.RankBaseline,
			DistanceKM:    res.DistanceKM,
			Components: ComponentScores{
				Cost:        res.Components.Cost,
				Land:        res.Components.Land,
				Emissions:   res.Components.Emissions,
				Policy:      res.Components.Policy,
				Queue:       res.Components.Queue,
				Variability: res.EffectivePriceVariabilityPenalty,
			},
			Raw: map[string]*float64{
				"avg_lmp":              ptr(n.AvgLMP),
				"avg_price_per_acre":   ptr(n.AvgPricePerAcre),
				"emissions_intensity":  ptr(n.EmissionsIntensity),
				"queue_pending_mw":     ptr(n.QueuePendingMW),
				"queue_pressure_index": ptr(n.QueuePressureIndex),
				"price_variance_score": ptr(n.PriceVarianceScore),
			},
		})
	}
	return out
}

// ptr turns a nullable value into a JSON-friendly pointer; null stays nil.
func ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
