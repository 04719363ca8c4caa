package nodes

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Getter returns the raw value of a column for the current row and
// whether the row had that column at all.
type Getter func(column string) (any, bool)

// DecodeRow builds a Node from loosely typed column values. Strings such as
// "", "NA", "nan" and "null" decode as missing. Unparseable numbers are an
// error so a corrupt source is not silently scored as all-null.
func DecodeRow(get Getter) (Node, error) {
	var n Node
	var err error
	str := func(col string) string {
		v, ok := get(col)
		if !ok || v == nil {
			return ""
		}
		s := strings.TrimSpace(toString(v))
		if isNullToken(s) {
			return ""
		}
		return s
	}
	num := func(col string) sql.NullFloat64 {
		if err != nil {
			return Null
		}
		v, ok := get(col)
		if !ok {
			return Null
		}
		f, perr := toFloat(v)
		if perr != nil {
			err = fmt.Errorf("column %s: %w", col, perr)
			return Null
		}
		return f
	}

	n.Node = str(ColNode)
	n.State = str(ColState)
	n.County = str(ColCounty)
	n.CountyStatePairs = str(ColCountyStatePairs)
	n.ISO = str(ColISO)
	n.Latitude = num(ColLatitude)
	n.Longitude = num(ColLongitude)
	n.AvgLMP = num(ColAvgLMP)
	n.AvgPricePerAcre = num(ColAvgPricePerAcre)
	n.EmissionsIntensity = num(ColEmissionsIntensity)
	n.QueuePendingMW = num(ColQueuePendingMW)
	n.QueueAdvancedShare = num(ColQueueAdvancedShare)
	n.QueueRenewableStorageShare = num(ColQueueRenewableStorageShare)
	n.QueuePressureIndex = num(ColQueuePressureIndex)
	n.PriceVarianceScore = num(ColPriceVarianceScore)
	n.PolicyFitElectrolyzer = num(ColPolicyFitElectrolyzer)
	n.PolicyFitDatacenter = num(ColPolicyFitDatacenter)
	n.IsH2HubState = num(ColIsH2HubState)
	n.StateDCIncentiveLevel = num(ColStateDCIncentiveLevel)
	n.StateCleanEnergyFriendly = num(ColStateCleanEnergyFriendly)
	n.HasHostingCapacityMap = num(ColHasHostingCapacityMap)
	if err != nil {
		return Node{}, err
	}
	return n, nil
}

// KnownColumns filters a source header down to the columns this package reads.
func KnownColumns(header []string) []string {
	known := make(map[string]struct{}, len(RequiredColumns)+len(OptionalColumns))
	for _, c := range RequiredColumns {
		known[c] = struct{}{}
	}
	for _, c := range OptionalColumns {
		known[c] = struct{}{}
	}
	out := make([]string, 0, len(header))
	for _, h := range header {
		h = NormalizeColumn(h)
		if _, ok := known[h]; ok {
			out = append(out, h)
		}
	}
	return out
}

// NormalizeColumn lower-cases and trims a header cell.
func NormalizeColumn(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}

func isNullToken(s string) bool {
	switch strings.ToLower(s) {
	case "", "na", "n/a", "nan", "null", "none":
		return true
	}
	return false
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

func toFloat(v any) (sql.NullFloat64, error) {
	switch x := v.(type) {
	case nil:
		return Null, nil
	case float64:
		return finite(x), nil
	case float32:
		return finite(float64(x)), nil
	case int:
		return Val(float64(x)), nil
	case int16:
		return Val(float64(x)), nil
	case int32:
		return Val(float64(x)), nil
	case int64:
		return Val(float64(x)), nil
	case bool:
		if x {
			return Val(1), nil
		}
		return Val(0), nil
	case sql.NullFloat64:
		return x, nil
	case []byte:
		return parseFloat(string(x))
	case string:
		return parseFloat(x)
	case driver.Valuer:
		// pgtype.Numeric and friends
		dv, err := x.Value()
		if err != nil {
			return Null, err
		}
		if _, again := dv.(driver.Valuer); again {
			return Null, fmt.Errorf("unsupported value type %T", v)
		}
		return toFloat(dv)
	case fmt.Stringer:
		return parseFloat(x.String())
	default:
		return Null, fmt.Errorf("unsupported value type %T", v)
	}
}

func parseFloat(s string) (sql.NullFloat64, error) {
	s = strings.TrimSpace(s)
	if isNullToken(s) {
		return Null, nil
	}
	switch strings.ToLower(s) {
	case "true", "yes":
		return Val(1), nil
	case "false", "no":
		return Val(0), nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return Null, fmt.Errorf("parse %q: %w", s, err)
	}
	return finite(f), nil
}

func finite(f float64) sql.NullFloat64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null
	}
	return Val(f)
}
