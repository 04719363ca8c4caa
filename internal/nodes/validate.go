// gridsite: interconnection node siting engine and MCP server
// SPDX-License-Identifier: MIT
//
// Node table validation and cleaning.

package nodes

import (
	"database/sql"
	"strings"

	serr "gridsite/internal/errors"
)

// Report summarises rows dropped during validation. Drops are recovered
// locally; they are never returned as errors.
type Report struct {
	InputRows   int            `json:"input_rows"`
	ValidRows   int            `json:"valid_rows"`
	DroppedRows int            `json:"dropped_rows"`
	MissingBy   map[string]int `json:"missing_by_field,omitempty"`
	ClippedRows int            `json:"clipped_rows"`
}

// Validate checks the schema of t and returns a cleaned copy. The input
// table is not modified.
func Validate(t Table) (Table, Report, error) {
	for _, col := range RequiredColumns {
		if !t.HasColumn(col) {
			return Table{}, Report{}, serr.NewSchema(col)
		}
	}

	rep := Report{InputRows: len(t.Rows), MissingBy: map[string]int{}}
	out := Table{Columns: append([]string(nil), t.Columns...), Rows: make([]Node, 0, len(t.Rows))}
	for _, n := range t.Rows {
		if missing := missingCritical(n); missing != "" {
			rep.DroppedRows++
			rep.MissingBy[missing]++
			continue
		}
		n.State = NormalizeState(n.State)
		if clipIndicators(&n) {
			rep.ClippedRows++
		}
		out.Rows = append(out.Rows, n)
	}
	rep.ValidRows = len(out.Rows)
	if len(rep.MissingBy) == 0 {
		rep.MissingBy = nil
	}
	return out, rep, nil
}

// NormalizeState upper-cases and trims a state code.
func NormalizeState(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// missingCritical returns the first critical field n lacks, or "".
func missingCritical(n Node) string {
	switch {
	case strings.TrimSpace(n.State) == "":
		return ColState
	case !n.Latitude.Valid || n.Latitude.Float64 < -90 || n.Latitude.Float64 > 90:
		return ColLatitude
	case !n.Longitude.Valid || n.Longitude.Float64 < -180 || n.Longitude.Float64 > 180:
		return ColLongitude
	case !n.AvgLMP.Valid:
		return ColAvgLMP
	case !n.AvgPricePerAcre.Valid:
		return ColAvgPricePerAcre
	case !n.EmissionsIntensity.Valid:
		return ColEmissionsIntensity
	}
	return ""
}

// clipIndicators clamps the bounded indicator fields into [0,1]. Source
// data encodes state_clean_energy_friendly as an ordinal that can reach 2.
func clipIndicators(n *Node) bool {
	clipped := false
	for _, f := range []*sql.NullFloat64{
		&n.StateCleanEnergyFriendly,
		&n.QueueAdvancedShare,
		&n.QueueRenewableStorageShare,
		&n.PolicyFitElectrolyzer,
		&n.PolicyFitDatacenter,
		&n.IsH2HubState,
		&n.StateDCIncentiveLevel,
		&n.HasHostingCapacityMap,
	} {
		if !f.Valid {
			continue
		}
		if f.Float64 < 0 {
			f.Float64 = 0
			clipped = true
		} else if f.Float64 > 1 {
			f.Float64 = 1
			clipped = true
		}
	}
	return clipped
}
