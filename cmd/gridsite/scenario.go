package main

import (
	"github.com/spf13/cobra"

	"gridsite/internal/adapter"
	"gridsite/internal/siting"
)

// addScenarioFlags declares the scenario flags shared by rank, compare,
// sweep and explain.
func addScenarioFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("scenario", "", "scenario file (.yaml, .toml or .json); other scenario flags except --top-n are ignored")
	f.String("load-type", string(siting.LoadDataCenterAlwaysOn), "load type or free text such as \"data center\"")
	f.String("sub-type", "", "subtype for free-text load types, e.g. flexible")
	f.Float64("size-mw", 100, "load size in MW")
	f.Int("emissions-pref", adapter.DefaultEmissionsPreference, "emissions preference 0-100")
	f.String("resource", string(siting.ResourceNone), "on-site resource: none, solar, battery, solar_battery, firm_gen")
	f.StringSlice("states", nil, "restrict to states, e.g. CA,TX")
	f.Float64("lat", 0, "latitude of a radial filter point")
	f.Float64("lon", 0, "longitude of a radial filter point")
	f.Float64("radius-km", 0, "radial filter radius (default point_radius_km)")
	f.Int("top-n", 0, "results to return (default default_top_n)")
}

func scenarioFromFlags(cmd *cobra.Command, opts adapter.Options) (siting.Scenario, error) {
	f := cmd.Flags()
	var sf adapter.ScenarioFile
	if path, _ := f.GetString("scenario"); path != "" {
		var err error
		if sf, err = adapter.ReadScenarioFile(path); err != nil {
			return siting.Scenario{}, err
		}
	} else {
		sf.LoadType, _ = f.GetString("load-type")
		sf.SubType, _ = f.GetString("sub-type")
		sf.LoadSizeMW, _ = f.GetFloat64("size-mw")
		pref, _ := f.GetInt("emissions-pref")
		sf.EmissionsPreference = &pref
		sf.ResourceConfig, _ = f.GetString("resource")
		sf.States, _ = f.GetStringSlice("states")
		if f.Changed("lat") || f.Changed("lon") {
			p := adapter.PointSpec{}
			p.Lat, _ = f.GetFloat64("lat")
			p.Lon, _ = f.GetFloat64("lon")
			if f.Changed("radius-km") {
				r, _ := f.GetFloat64("radius-km")
				p.RadiusKM = &r
			}
			sf.Points = []adapter.PointSpec{p}
		}
	}
	// An explicit --top-n wins over the file and is validated like any other.
	if f.Changed("top-n") {
		n, _ := f.GetInt("top-n")
		sf.TopN = &n
	}
	return sf.Scenario(opts)
}
