package domain

import "strings"

// Geographic classification of a reporting area.
const (
	GeoUnitState    = "state"
	GeoUnitRegion   = "region"
	GeoUnitNational = "national"
)

// nationalSlugs are national-level reporting areas, slugified. Includes
// no-space variants because the feed formats "U.S.Residents" inconsistently.
var nationalSlugs = map[string]struct{}{
	"us-residents":     {},
	"usresidents":      {},
	"non-us-residents": {},
	"nonusresidents":   {},
	"total":            {},
}

// regionSlugs are the nine US Census regions plus the territories rollup,
// slugified.
var regionSlugs = map[string]struct{}{
	"new-england":        {},
	"middle-atlantic":    {},
	"east-north-central": {},
	"west-north-central": {},
	"south-atlantic":     {},
	"east-south-central": {},
	"west-south-central": {},
	"mountain":           {},
	"pacific":            {},
	"us-territories":     {},
}

// stateCodes maps uppercase full state names to 2-letter codes. Covers the
// 50 states, DC, and the 5 reporting territories. "NEW YORK CITY" maps to
// "NYC" (not "NY"): NNDSS reports it as its own jurisdiction.
var stateCodes = map[string]string{
	"ALABAMA":                  "AL",
	"ALASKA":                   "AK",
	"ARIZONA":                  "AZ",
	"ARKANSAS":                 "AR",
	"CALIFORNIA":               "CA",
	"COLORADO":                 "CO",
	"CONNECTICUT":              "CT",
	"DELAWARE":                 "DE",
	"FLORIDA":                  "FL",
	"GEORGIA":                  "GA",
	"HAWAII":                   "HI",
	"IDAHO":                    "ID",
	"ILLINOIS":                 "IL",
	"INDIANA":                  "IN",
	"IOWA":                     "IA",
	"KANSAS":                   "KS",
	"KENTUCKY":                 "KY",
	"LOUISIANA":                "LA",
	"MAINE":                    "ME",
	"MARYLAND":                 "MD",
	"MASSACHUSETTS":            "MA",
	"MICHIGAN":                 "MI",
	"MINNESOTA":                "MN",
	"MISSISSIPPI":              "MS",
	"MISSOURI":                 "MO",
	"MONTANA":                  "MT",
	"NEBRASKA":                 "NE",
	"NEVADA":                   "NV",
	"NEW HAMPSHIRE":            "NH",
	"NEW JERSEY":               "NJ",
	"NEW MEXICO":               "NM",
	"NEW YORK":                 "NY",
	"NEW YORK CITY":            "NYC",
	"NORTH CAROLINA":           "NC",
	"NORTH DAKOTA":             "ND",
	"OHIO":                     "OH",
	"OKLAHOMA":                 "OK",
	"OREGON":                   "OR",
	"PENNSYLVANIA":             "PA",
	"RHODE ISLAND":             "RI",
	"SOUTH CAROLINA":           "SC",
	"SOUTH DAKOTA":             "SD",
	"TENNESSEE":                "TN",
	"TEXAS":                    "TX",
	"UTAH":                     "UT",
	"VERMONT":                  "VT",
	"VIRGINIA":                 "VA",
	"WASHINGTON":               "WA",
	"WEST VIRGINIA":            "WV",
	"WISCONSIN":                "WI",
	"WYOMING":                  "WY",
	"DISTRICT OF COLUMBIA":     "DC",
	"AMERICAN SAMOA":           "AS",
	"GUAM":                     "GU",
	"NORTHERN MARIANA ISLANDS": "MP",
	"PUERTO RICO":              "PR",
	"VIRGIN ISLANDS":           "VI",
}

// ClassifyGeoUnit classifies a raw reporting-area string as national,
// region, or state. Matching runs on the slugified value so punctuation and
// casing variants ("U.S. Residents", "US RESIDENTS", "U.S.Residents") all
// classify identically. Anything unrecognized defaults to state.
func ClassifyGeoUnit(reportingArea string) string {
	slug := Slugify(reportingArea)
	if slug == "" {
		return GeoUnitState
	}
	if _, ok := nationalSlugs[slug]; ok {
		return GeoUnitNational
	}
	if _, ok := regionSlugs[slug]; ok {
		return GeoUnitRegion
	}
	return GeoUnitState
}

// StateNameToCode maps a full state name to its 2-letter code. Unknown
// names pass through unchanged so unexpected jurisdictions stay visible in
// the data rather than erroring the batch.
func StateNameToCode(name string) string {
	if code, ok := stateCodes[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return code
	}
	return name
}
