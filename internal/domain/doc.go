// Package domain models normalized disease case-count surveillance data.
//
// # Data Sources
//
// Two feeds are reconciled into one canonical schema:
//
//	Tracker: state-submitted CSV snapshots under data/states/<STATE>/, one
//	file per upload with a sortable YYYYMMDD-HHMMSS filename prefix. Periods
//	are explicit date columns; time unit is monthly.
//
//	NNDSS: the CDC's National Notifiable Diseases Surveillance System weekly
//	CSV (NNDSS_Weekly_Data_*.csv). Periods are MMWR (year, week) pairs;
//	counts arrive as strings with sentinel values like "-" and "N".
//
// # Naming Conventions
//
// Every identity-bearing column carries a parallel slug column. Slugs are
// lowercase, hyphenated, punctuation-free keys so grouping and joining work
// across sources regardless of display casing ("U.S. Residents" and
// "US RESIDENTS" both slug to "us-residents"). See [Slugify].
//
// Disease identity converges on the tracker's lowercase vocabulary: NNDSS
// labels are parsed into (base disease, subtype), the base slug is remapped
// through a fixed NNDSS-to-tracker table ("meningococcal-disease" becomes
// "meningococcus"), and aggregate subtype markers such as "All serogroups"
// are discarded rather than stored as fake strata.
//
// # MMWR Weeks
//
// MMWR weeks run Sunday through Saturday. Week 1 begins on the first Sunday
// on or after January 1; when January 1 falls on Thursday, Friday, or
// Saturday the partial opening week is skipped entirely. Week 1 of 2022
// therefore spans January 2-8. Invalid (year, week) inputs yield a zero
// time so the offending row is dropped downstream instead of failing the
// batch. See [MMWRWeekStart] and [MMWRWeekEnd].
//
// # Geography
//
// Reporting areas classify as "state", "region" (the nine US Census regions
// plus US territories), or "national". NNDSS publishes pre-aggregated
// regional and national rollups that would double-count against state rows,
// so only state-level rows survive transformation. Full state names map to
// 2-letter codes; "New York City" intentionally maps to the non-standard
// code "NYC" because NNDSS reports it separately from New York state.
package domain
