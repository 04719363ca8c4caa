package siting

import (
	"database/sql"
	"math"

	"gridsite/internal/nodes"
)

// resourceMitigation is the share of the remaining variability penalty an
// on-site resource removes. Firm generation nearly insulates the load from
// grid price volatility.
var resourceMitigation = map[ResourceConfig]float64{
	ResourceNone:         0.00,
	ResourceSolar:        0.15,
	ResourceBattery:      0.35,
	ResourceSolarBattery: 0.50,
	ResourceFirmGen:      0.85,
}

// policyBlend weights the policy indicators for one load-type family.
type policyBlend struct {
	FitElectrolyzer float64
	FitDatacenter   float64
	H2Hub           float64
	DCIncentive     float64
	CleanEnergy     float64
	HostingMap      float64
}

var (
	electrolyzerPolicy = policyBlend{FitElectrolyzer: 0.50, H2Hub: 0.25, CleanEnergy: 0.15, HostingMap: 0.10}
	datacenterPolicy   = policyBlend{FitDatacenter: 0.50, DCIncentive: 0.25, CleanEnergy: 0.15, HostingMap: 0.10}
	generalPolicy      = policyBlend{FitDatacenter: 0.25, FitElectrolyzer: 0.20, DCIncentive: 0.20, CleanEnergy: 0.20, HostingMap: 0.15}
)

// Queue score blend.
const (
	queuePendingWeight     = 0.6
	queuePressureWeight    = 0.4
	queueCongestionWeight  = 0.8
	queueCompositionWeight = 0.2
)

// Mitigation returns the mitigation factor for rc.
func Mitigation(rc ResourceConfig) (float64, error) {
	m, ok := resourceMitigation[rc]
	if !ok {
		_, err := ParseResourceConfig(string(rc))
		return 0, err
	}
	return m, nil
}

// EffectiveVariability applies resource mitigation to an unadjusted price
// variability penalty score, moving it toward 1 by the mitigation factor.
func EffectiveVariability(score float64, rc ResourceConfig) (float64, error) {
	m, err := Mitigation(rc)
	if err != nil {
		return 0, err
	}
	s := clamp(score, 0, 1)
	return clamp(s+(1-s)*m, 0, 1), nil
}

// ScoreComponents computes the component scores of every row relative to
// the rows given, plus the resource-adjusted variability score.
func ScoreComponents(rows []nodes.Node, lt LoadType, rc ResourceConfig) ([]Components, []float64, error) {
	if _, err := ParseLoadType(string(lt)); err != nil {
		return nil, nil, err
	}
	m, err := Mitigation(rc)
	if err != nil {
		return nil, nil, err
	}

	cost := InvertScores(RobustMinMax(column(rows, func(n nodes.Node) sql.NullFloat64 { return n.AvgLMP })))
	land := InvertScores(RobustMinMax(column(rows, func(n nodes.Node) sql.NullFloat64 { return n.AvgPricePerAcre })))
	emissions := InvertScores(RobustMinMax(column(rows, func(n nodes.Node) sql.NullFloat64 { return n.EmissionsIntensity })))
	variability := InvertScores(RobustMinMax(column(rows, func(n nodes.Node) sql.NullFloat64 { return n.PriceVarianceScore })))
	pending := RobustMinMax(column(rows, func(n nodes.Node) sql.NullFloat64 { return n.QueuePendingMW }))
	pressure := RobustMinMax(column(rows, func(n nodes.Node) sql.NullFloat64 { return n.QueuePressureIndex }))

	blend := policyBlendFor(lt)
	comps := make([]Components, len(rows))
	effective := make([]float64, len(rows))
	for i, n := range rows {
		comps[i] = Components{
			Cost:                    clamp(cost[i], 0, 1),
			Land:                    clamp(land[i], 0, 1),
			Emissions:               clamp(emissions[i], 0, 1),
			Policy:                  policyScore(n, blend),
			Queue:                   queueScore(n, pending[i], pressure[i]),
			PriceVariabilityPenalty: clamp(variability[i], 0, 1),
		}
		pv := comps[i].PriceVariabilityPenalty
		effective[i] = clamp(pv+(1-pv)*m, 0, 1)
	}
	return comps, effective, nil
}

func policyBlendFor(lt LoadType) policyBlend {
	switch {
	case lt.isElectrolyzer():
		return electrolyzerPolicy
	case lt.isDataCenter():
		return datacenterPolicy
	default:
		return generalPolicy
	}
}

// policyScore combines the policy indicators; null indicators contribute 0.
func policyScore(n nodes.Node, b policyBlend) float64 {
	ind := func(v sql.NullFloat64) float64 { return clamp(nodes.ValueOr(v, 0), 0, 1) }
	s := b.FitElectrolyzer*ind(n.PolicyFitElectrolyzer) +
		b.FitDatacenter*ind(n.PolicyFitDatacenter) +
		b.H2Hub*ind(n.IsH2HubState) +
		b.DCIncentive*ind(n.StateDCIncentiveLevel) +
		b.CleanEnergy*ind(n.StateCleanEnergyFriendly) +
		b.HostingMap*ind(n.HasHostingCapacityMap)
	return clamp(s, 0, 1)
}

// queueScore falls with congestion and rises with a favourable queue mix.
// pending and pressure are already robust-normalized; a null composition
// share counts as neutral.
func queueScore(n nodes.Node, pending, pressure float64) float64 {
	congestion := queuePendingWeight*pending + queuePressureWeight*pressure
	share := func(v sql.NullFloat64) float64 { return clamp(nodes.ValueOr(v, neutralScore), 0, 1) }
	composition := (share(n.QueueAdvancedShare) + share(n.QueueRenewableStorageShare)) / 2
	return clamp(queueCongestionWeight*(1-congestion)+queueCompositionWeight*composition, 0, 1)
}

// column extracts one numeric field, NaN marking nulls.
func column(rows []nodes.Node, get func(nodes.Node) sql.NullFloat64) []float64 {
	out := make([]float64, len(rows))
	for i, n := range rows {
		v := get(n)
		if !v.Valid {
			out[i] = math.NaN()
			continue
		}
		out[i] = v.Float64
	}
	return out
}
