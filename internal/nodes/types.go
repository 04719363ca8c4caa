// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// Node record and in-memory node table.

package nodes

import "database/sql"

// Column names of the node dataset.
const (
	ColNode                       = "node"
	ColLatitude                   = "latitude"
	ColLongitude                  = "longitude"
	ColState                      = "state"
	ColCounty                     = "county"
	ColCountyStatePairs           = "county_state_pairs"
	ColISO                        = "iso"
	ColAvgLMP                     = "avg_lmp"
	ColAvgPricePerAcre            = "avg_price_per_acre"
	ColEmissionsIntensity         = "county_emissions_intensity_kg_per_mwh"
	ColQueuePendingMW             = "queue_pending_mw"
	ColQueueAdvancedShare         = "queue_advanced_share"
	ColQueueRenewableStorageShare = "queue_renewable_storage_share"
	ColQueuePressureIndex         = "queue_pressure_index"
	ColPriceVarianceScore         = "price_variance_score"
	ColPolicyFitElectrolyzer      = "policy_fit_electrolyzer"
	ColPolicyFitDatacenter        = "policy_fit_datacenter"
	ColIsH2HubState               = "is_h2_hub_state"
	ColStateDCIncentiveLevel      = "state_dc_incentive_level"
	ColStateCleanEnergyFriendly   = "state_clean_energy_friendly"
	ColHasHostingCapacityMap      = "has_hosting_capacity_map"
)

// RequiredColumns must exist in every node table. A table lacking one of
// them is a schema error, not a per-row drop.
var RequiredColumns = []string{
	ColNode,
	ColState,
	ColLatitude,
	ColLongitude,
	ColAvgLMP,
	ColAvgPricePerAcre,
	ColEmissionsIntensity,
}

// OptionalColumns are read when present; nulls score neutrally.
var OptionalColumns = []string{
	ColCounty,
	ColCountyStatePairs,
	ColISO,
	ColQueuePendingMW,
	ColQueueAdvancedShare,
	ColQueueRenewableStorageShare,
	ColQueuePressureIndex,
	ColPriceVarianceScore,
	ColPolicyFitElectrolyzer,
	ColPolicyFitDatacenter,
	ColIsH2HubState,
	ColStateDCIncentiveLevel,
	ColStateCleanEnergyFriendly,
	ColHasHostingCapacityMap,
}

// Node is one interconnection node row.
type Node struct {
	Node             string `json:"node"`
	State            string `json:"state"`
	County           string `json:"county,omitempty"`
	CountyStatePairs string `json:"county_state_pairs,omitempty"`
	ISO              string `json:"iso,omitempty"`

	Latitude  sql.NullFloat64 `json:"-"`
	Longitude sql.NullFloat64 `json:"-"`

	AvgLMP             sql.NullFloat64 `json:"-"`
	AvgPricePerAcre    sql.NullFloat64 `json:"-"`
	EmissionsIntensity sql.NullFloat64 `json:"-"`

	QueuePendingMW             sql.NullFloat64 `json:"-"`
	QueueAdvancedShare         sql.NullFloat64 `json:"-"`
	QueueRenewableStorageShare sql.NullFloat64 `json:"-"`
	QueuePressureIndex         sql.NullFloat64 `json:"-"`

	PriceVarianceScore sql.NullFloat64 `json:"-"`

	PolicyFitElectrolyzer    sql.NullFloat64 `json:"-"`
	PolicyFitDatacenter      sql.NullFloat64 `json:"-"`
	IsH2HubState             sql.NullFloat64 `json:"-"`
	StateDCIncentiveLevel    sql.NullFloat64 `json:"-"`
	StateCleanEnergyFriendly sql.NullFloat64 `json:"-"`
	HasHostingCapacityMap    sql.NullFloat64 `json:"-"`
}

// Table is an ordered node set plus the columns its source provided.
// Row order is meaningful: it is the tie-break order for ranking.
type Table struct {
	Columns []string
	Rows    []Node
}

// HasColumn reports whether the source provided the named column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the row count.
func (t Table) Len() int { return len(t.Rows) }

// Val wraps v as a present numeric value.
func Val(v float64) sql.NullFloat64 { return sql.NullFloat64{Float64: v, Valid: true} }

// Null is a missing numeric value.
var Null = sql.NullFloat64{}

// ValueOr returns the value of n, or def when n is null.
func ValueOr(n sql.NullFloat64, def float64) float64 {
	if !n.Valid {
		return def
	}
	return n.Float64
}
