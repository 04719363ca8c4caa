// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// Baseline and scenario weight computation.

package siting

// baseWeights is the reference weighting. It doubles as the baseline
// vector used for the unmitigated comparison score.
var baseWeights = Weights{
	Cost:        0.25,
	Land:        0.10,
	Emissions:   0.20,
	Policy:      0.15,
	Queue:       0.15,
	Variability: 0.15,
}

// loadTypeMultipliers scales the base weights per load profile.
// Electrolyzers care about emissions and queue position and little about
// land; always-on data centers need land and price stability; flexible
// loads can ride through price swings.
var loadTypeMultipliers = map[LoadType]Weights{
	LoadDataCenterAlwaysOn:   {Cost: 1.00, Land: 1.30, Emissions: 1.00, Policy: 1.10, Queue: 1.10, Variability: 1.30},
	LoadDataCenterFlexible:   {Cost: 1.10, Land: 1.20, Emissions: 1.00, Policy: 1.10, Queue: 1.00, Variability: 0.60},
	LoadH2ElectrolyzerFirm:   {Cost: 1.20, Land: 0.60, Emissions: 1.50, Policy: 1.30, Queue: 1.30, Variability: 1.00},
	LoadIndustrialContinuous: {Cost: 1.20, Land: 1.00, Emissions: 0.90, Policy: 0.90, Queue: 1.20, Variability: 1.10},
	LoadIndustrialFlexible:   {Cost: 1.20, Land: 1.00, Emissions: 0.90, Policy: 0.90, Queue: 1.10, Variability: 0.60},
	LoadCommercialCampus:     {Cost: 1.00, Land: 1.10, Emissions: 1.10, Policy: 1.00, Queue: 0.80, Variability: 0.90},
}

// SizeBracket classifies a load by its interconnection request size.
type SizeBracket string

const (
	SizeSmall  SizeBracket = "small"
	SizeMedium SizeBracket = "medium"
	SizeLarge  SizeBracket = "large"
)

// Bracket boundaries in MW; lower bound inclusive.
const (
	mediumLoadMW = 50.0
	largeLoadMW  = 200.0
)

// sizeMultipliers scales queue and variability exposure by bracket.
var sizeMultipliers = map[SizeBracket]Weights{
	SizeSmall:  {Cost: 1, Land: 1, Emissions: 1, Policy: 1, Queue: 0.80, Variability: 0.90},
	SizeMedium: {Cost: 1, Land: 1, Emissions: 1, Policy: 1, Queue: 1.00, Variability: 1.00},
	SizeLarge:  {Cost: 1, Land: 1, Emissions: 1, Policy: 1, Queue: 1.30, Variability: 1.20},
}

// Emissions preference blending.
const (
	emissionsFloorFactor   = 0.3
	emissionsCeilingFactor = 1.7
	emissionsMaxShare      = 0.6
)

// BaselineWeights returns the fixed reference weight vector.
func BaselineWeights() Weights { return baseWeights }

// LoadTypeMultipliers returns the multiplier row for lt.
func LoadTypeMultipliers(lt LoadType) (Weights, error) {
	m, ok := loadTypeMultipliers[lt]
	if !ok {
		_, err := ParseLoadType(string(lt))
		return Weights{}, err
	}
	return m, nil
}

// BracketFor returns the size bracket of a load.
func BracketFor(sizeMW float64) SizeBracket {
	switch {
	case sizeMW < mediumLoadMW:
		return SizeSmall
	case sizeMW < largeLoadMW:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// SizeMultipliers returns the multiplier row for a load of sizeMW.
func SizeMultipliers(sizeMW float64) Weights {
	return sizeMultipliers[BracketFor(sizeMW)]
}

// ComputeFinalWeights derives the scenario weight vector: base weights
// scaled by load type and size bracket, then the emissions share moved
// between its floor and ceiling by the 0-100 preference slider.
func ComputeFinalWeights(lt LoadType, sizeMW float64, emissionsPreference int) (Weights, error) {
	ltm, err := LoadTypeMultipliers(lt)
	if err != nil {
		return Weights{}, err
	}
	sm := SizeMultipliers(sizeMW)

	var w Weights
	for _, c := range AllComponents {
		w.set(c, baseWeights.Get(c)*ltm.Get(c)*sm.Get(c))
	}
	w = normalize(w)
	return applyEmissionsPreference(w, emissionsPreference), nil
}

// applyEmissionsPreference interpolates the emissions share and spreads
// the difference over the other components in proportion to their share.
func applyEmissionsPreference(w Weights, pref int) Weights {
	p := clamp(float64(pref), 0, 100) / 100
	e0 := w.Emissions
	floor := emissionsFloorFactor * e0
	ceiling := emissionsCeilingFactor * e0
	if ceiling > emissionsMaxShare {
		ceiling = emissionsMaxShare
	}
	target := floor + (ceiling-floor)*p

	rest := 1 - e0
	var out Weights
	for _, c := range AllComponents {
		if c == CompEmissions {
			out.set(c, target)
			continue
		}
		if rest <= 0 {
			out.set(c, (1-target)/float64(len(AllComponents)-1))
			continue
		}
		out.set(c, w.Get(c)*(1-target)/rest)
	}
	return normalize(out)
}

func normalize(w Weights) Weights {
	sum := w.Sum()
	if sum <= 0 {
		return baseWeights
	}
	var out Weights
	for _, c := range AllComponents {
		out.set(c, w.Get(c)/sum)
	}
	return out
}
