package siting

import (
	"gridsite/internal/nodes"
)

type row struct {
	id        string
	state     string
	lat, lon  float64
	lmp       float64
	land      float64
	emissions float64
	variance  float64
	pending   float64
	pressure  float64
}

func mkNode(r row) nodes.Node {
	return nodes.Node{
		Node:                       r.id,
		State:                      r.state,
		ISO:                        isoFor(r.state),
		Latitude:                   nodes.Val(r.lat),
		Longitude:                  nodes.Val(r.lon),
		AvgLMP:                     nodes.Val(r.lmp),
		AvgPricePerAcre:            nodes.Val(r.land),
		EmissionsIntensity:         nodes.Val(r.emissions),
		PriceVarianceScore:         nodes.Val(r.variance),
		QueuePendingMW:             nodes.Val(r.pending),
		QueuePressureIndex:         nodes.Val(r.pressure),
		QueueAdvancedShare:         nodes.Val(0.4),
		QueueRenewableStorageShare: nodes.Val(0.6),
		PolicyFitElectrolyzer:      nodes.Val(0.5),
		PolicyFitDatacenter:        nodes.Val(0.7),
		IsH2HubState:               nodes.Val(0),
		StateDCIncentiveLevel:      nodes.Val(0.5),
		StateCleanEnergyFriendly:   nodes.Val(1),
		HasHostingCapacityMap:      nodes.Val(1),
	}
}

func isoFor(state string) string {
	switch state {
	case "CA":
		return "CAISO"
	case "TX":
		return "ERCOT"
	case "NY":
		return "NYISO"
	}
	return "PJM"
}

func allColumns() []string {
	return append(append([]string{}, nodes.RequiredColumns...), nodes.OptionalColumns...)
}

func fixtureTable() nodes.Table {
	rows := []row{
		{"SF_BAY", "CA", 37.77, -122.42, 42.1, 45000, 210, 35, 1200, 0.8},
		{"LA_BASIN", "CA", 34.05, -118.24, 48.3, 38000, 260, 40, 2500, 0.9},
		{"SAC_VALLEY", "CA", 38.58, -121.49, 39.5, 12000, 230, 30, 800, 0.5},
		{"HOUSTON", "TX", 29.76, -95.37, 31.2, 6000, 420, 55, 4000, 0.95},
		{"AUSTIN", "TX", 30.27, -97.74, 33.8, 9000, 390, 50, 3000, 0.7},
		{"WEST_TX", "TX", 31.99, -102.08, 24.6, 1500, 350, 70, 5200, 0.85},
		{"NYC", "NY", 40.71, -74.01, 55.0, 90000, 280, 25, 1500, 0.6},
		{"PITTSBURGH", "PA", 40.44, -79.99, 36.4, 8000, 520, 20, 600, 0.3},
	}
	t := nodes.Table{Columns: allColumns()}
	for _, r := range rows {
		t.Rows = append(t.Rows, mkNode(r))
	}
	return t
}

func scenario() Scenario {
	return Scenario{
		LoadType:            LoadDataCenterAlwaysOn,
		LoadSizeMW:          100,
		Location:            NoFilter(),
		EmissionsPreference: 50,
		ResourceConfig:      ResourceNone,
		TopN:                10,
	}
}
