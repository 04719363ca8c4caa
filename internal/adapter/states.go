package adapter

import (
	"strings"

	serr "gridsite/internal/errors"
)

var stateCodes = map[string]string{
	"alabama":              "AL",
	"alaska":               "AK",
	"arizona":              "AZ",
	"arkansas":             "AR",
	"california":           "CA",
	"colorado":             "CO",
	"connecticut":          "CT",
	"delaware":             "DE",
	"district of columbia": "DC",
	"florida":              "FL",
	"georgia":              "GA",
	"hawaii":               "HI",
	"idaho":                "ID",
	"illinois":             "IL",
	"indiana":              "IN",
	"iowa":                 "IA",
	"kansas":               "KS",
	"kentucky":             "KY",
	"louisiana":            "LA",
	"maine":                "ME",
	"maryland":             "MD",
	"massachusetts":        "MA",
	"michigan":             "MI",
	"minnesota":            "MN",
	"mississippi":          "MS",
	"missouri":             "MO",
	"montana":              "MT",
	"nebraska":             "NE",
	"nevada":               "NV",
	"new hampshire":        "NH",
	"new jersey":           "NJ",
	"new mexico":           "NM",
	"new york":             "NY",
	"north carolina":       "NC",
	"north dakota":         "ND",
	"ohio":                 "OH",
	"oklahoma":             "OK",
	"oregon":               "OR",
	"pennsylvania":         "PA",
	"rhode island":         "RI",
	"south carolina":       "SC",
	"south dakota":         "SD",
	"tennessee":            "TN",
	"texas":                "TX",
	"utah":                 "UT",
	"vermont":              "VT",
	"virginia":             "VA",
	"washington":           "WA",
	"west virginia":        "WV",
	"wisconsin":            "WI",
	"wyoming":              "WY",
}

var knownCodes = func() map[string]struct{} {
	m := make(map[string]struct{}, len(stateCodes))
	for _, c := range stateCodes {
		m[c] = struct{}{}
	}
	return m
}()

// StateCode maps a full state name or a two-letter code to the code.
func StateCode(s string) (string, error) {
	key := strings.Join(strings.Fields(strings.ToLower(s)), " ")
	if code, ok := stateCodes[key]; ok {
		return code, nil
	}
	if code := strings.ToUpper(key); len(code) == 2 {
		if _, ok := knownCodes[code]; ok {
			return code, nil
		}
	}
	return "", serr.NewConfiguration("unknown state "+quote(s), "use a US state name or two-letter code", map[string]any{"state": s})
}
