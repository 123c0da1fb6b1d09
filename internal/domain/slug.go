package domain

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// slugStripRe removes everything except letters, digits, whitespace,
	// underscores, and hyphens. Underscores survive here so they can be
	// folded into hyphens together with whitespace runs below.
	slugStripRe = regexp.MustCompile(`[^\p{L}\p{N}\s_-]+`)

	slugSeparatorRe = regexp.MustCompile(`[\s_]+`)
	slugCollapseRe  = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a display string to its canonical machine key: NFC
// normalization, lowercasing, punctuation stripping, whitespace and
// underscore runs folded to single hyphens, repeated hyphens collapsed,
// leading/trailing hyphens trimmed.
//
// Slugify is idempotent: Slugify(Slugify(s)) == Slugify(s). Empty or
// whitespace-only input yields the empty string, which callers treat as
// null.
//
//	Slugify("Meningococcal disease") == "meningococcal-disease"
//	Slugify("U.S. Residents") == "us-residents"
//	Slugify("Serogroup B") == "serogroup-b"
func Slugify(value string) string {
	v := norm.NFC.String(value)
	v = strings.ToLower(strings.TrimSpace(v))
	v = slugStripRe.ReplaceAllString(v, "")
	v = slugSeparatorRe.ReplaceAllString(v, "-")
	v = slugCollapseRe.ReplaceAllString(v, "-")
	return strings.Trim(v, "-")
}

// SlugifyPtr slugifies a nullable value. Nil in, nil out; a value that
// slugifies to the empty string also yields nil.
func SlugifyPtr(value *string) *string {
	if value == nil {
		return nil
	}
	s := Slugify(*value)
	if s == "" {
		return nil
	}
	return &s
}
