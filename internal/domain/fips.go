package domain

import "strings"

// stateToFIPS maps 2-letter state codes to the 2-digit FIPS codes used by
// TopoJSON for choropleth rendering. Territories are included for
// completeness even though standard TopoJSON files may omit them.
var stateToFIPS = map[string]string{
	"AL": "01", "AK": "02", "AZ": "04", "AR": "05", "CA": "06",
	"CO": "08", "CT": "09", "DE": "10", "DC": "11", "FL": "12",
	"GA": "13", "HI": "15", "ID": "16", "IL": "17", "IN": "18",
	"IA": "19", "KS": "20", "KY": "21", "LA": "22", "ME": "23",
	"MD": "24", "MA": "25", "MI": "26", "MN": "27", "MS": "28",
	"MO": "29", "MT": "30", "NE": "31", "NV": "32", "NH": "33",
	"NJ": "34", "NM": "35", "NY": "36", "NC": "37", "ND": "38",
	"OH": "39", "OK": "40", "OR": "41", "PA": "42", "RI": "44",
	"SC": "45", "SD": "46", "TN": "47", "TX": "48", "UT": "49",
	"VT": "50", "VA": "51", "WA": "53", "WV": "54", "WI": "55",
	"WY": "56",
	"AS": "60", "GU": "66", "MP": "69", "PR": "72", "VI": "78",
}

var fipsToState = func() map[string]string {
	m := make(map[string]string, len(stateToFIPS))
	for code, fips := range stateToFIPS {
		m[fips] = code
	}
	return m
}()

// StateToFIPS converts a 2-letter state code to its 2-digit FIPS code.
// Used only for map rendering, never in the canonical schema.
func StateToFIPS(stateCode string) (string, bool) {
	fips, ok := stateToFIPS[strings.ToUpper(stateCode)]
	return fips, ok
}

// FIPSToState converts a 2-digit FIPS code back to a 2-letter state code.
// Single-digit input is zero-padded ("6" resolves as "06").
func FIPSToState(fipsCode string) (string, bool) {
	if len(fipsCode) == 1 {
		fipsCode = "0" + fipsCode
	}
	code, ok := fipsToState[fipsCode]
	return code, ok
}
