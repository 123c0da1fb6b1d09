package domain

import (
	"regexp"
	"strings"
)

// nndssToTrackerSlug maps slugified NNDSS base disease names to the
// tracker's canonical vocabulary so the same disease reported by both
// sources collapses to one slug. Unmapped NNDSS slugs pass through as-is.
var nndssToTrackerSlug = map[string]string{
	"meningococcal-disease": "meningococcus",
	"measles":               "measles",
	"pertussis":             "pertussis",
}

// aggregateSubtypeSlugs are subtype texts (slugified) that mark a row as an
// aggregate or classification rollup rather than a genuine stratum.
// "all serogroups" is the total row for meningococcal disease; "imported"
// and "indigenous" are measles classification metadata, not subtypes.
var aggregateSubtypeSlugs = map[string]struct{}{
	"all-serogroups": {},
	"total":          {},
	"all":            {},
	"imported":       {},
	"indigenous":     {},
}

// subtypeCanonical normalizes residual subtype spellings to canonical
// values after prefix/suffix stripping. Keys are lowercase.
var subtypeCanonical = map[string]string{
	"other":   "unspecified",
	"na":      "unspecified",
	"unknown": "unknown",
}

// diseaseAliases merges known same-disease variants regardless of source,
// applied as a post-processing replace over disease_name in the pipeline.
var diseaseAliases = map[string]string{
	"Hansen's Disease": "Leprosy (Hansen's Disease)",
}

// nullPlaceholders are tracker cell values that mean "no value".
// Comparison runs on the lowercased, whitespace-trimmed cell.
var nullPlaceholders = map[string]struct{}{
	"not specified": {},
	"unknown":       {},
	"n/a":           {},
	"na":            {},
	"":              {},
}

var serogroupSuffixRe = regexp.MustCompile(`(?i)\s*serogroups?\s*$`)

// serogroup prefixes stripped from NNDSS subtype text ("Serogroup B" -> "B").
var serogroupPrefixes = []string{"serogroup ", "serogroups "}

// ParseNNDSSLabel splits an NNDSS disease label of the form
// "<Disease>[, <SubtypeInfo>]" into a base name and an optional subtype.
//
// The subtype is nil when the label carries none, when the subtype text is
// an aggregate marker ("All serogroups", "Total", "Imported", ...), or when
// nothing remains after stripping serogroup prefixes/suffixes. Residual
// subtypes pass through the canonicalization table ("Other" becomes
// "unspecified").
func ParseNNDSSLabel(label string) (base string, subtype *string) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", nil
	}

	base, rest, found := strings.Cut(label, ",")
	base = strings.TrimSpace(base)
	if !found {
		return base, nil
	}

	raw := strings.TrimSpace(rest)
	if raw == "" {
		return base, nil
	}
	if _, ok := aggregateSubtypeSlugs[Slugify(raw)]; ok {
		return base, nil
	}

	lower := strings.ToLower(raw)
	for _, prefix := range serogroupPrefixes {
		if strings.HasPrefix(lower, prefix) {
			raw = raw[len(prefix):]
			break
		}
	}
	raw = strings.TrimSpace(serogroupSuffixRe.ReplaceAllString(raw, ""))
	if raw == "" {
		return base, nil
	}
	if canonical, ok := subtypeCanonical[strings.ToLower(raw)]; ok {
		raw = canonical
	}

	return base, &raw
}

// ResolveNNDSSDisease maps an NNDSS base disease name to the canonical
// cross-source slug: slugify, then remap through the NNDSS-to-tracker
// table. Both disease_name and disease_slug store this lowercase token;
// display casing is a presentation concern outside the core.
func ResolveNNDSSDisease(base string) string {
	slug := Slugify(base)
	if slug == "" {
		return ""
	}
	if mapped, ok := nndssToTrackerSlug[slug]; ok {
		return mapped
	}
	return slug
}

// ApplyDiseaseAlias replaces known same-disease variant names with their
// canonical form. Names without an alias pass through unchanged.
func ApplyDiseaseAlias(name string) string {
	if canonical, ok := diseaseAliases[name]; ok {
		return canonical
	}
	return name
}

// CleanNullable converts tracker placeholder strings ("Not Specified",
// "Unknown", "N/A", "na", empty) to nil and trims everything else.
func CleanNullable(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if _, ok := nullPlaceholders[strings.ToLower(trimmed)]; ok {
		return nil
	}
	return &trimmed
}

// NormalizeTrackerSubtype cleans a tracker disease_subtype cell: placeholder
// values become nil, survivors are uppercased and then remapped through the
// subtype canonicalization table ("OTHER" becomes "unspecified").
func NormalizeTrackerSubtype(raw string) *string {
	cleaned := CleanNullable(raw)
	if cleaned == nil {
		return nil
	}
	v := strings.ToUpper(*cleaned)
	if canonical, ok := subtypeCanonical[strings.ToLower(v)]; ok {
		v = canonical
	}
	return &v
}
