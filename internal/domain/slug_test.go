package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple words", "Meningococcal disease", "meningococcal-disease"},
		{"punctuation stripped", "U.S. Residents", "us-residents"},
		{"no-space punctuation", "U.S.Residents", "usresidents"},
		{"apostrophe", "Hansen's Disease", "hansens-disease"},
		{"parentheses", "Leprosy (Hansen's Disease)", "leprosy-hansens-disease"},
		{"underscores fold", "report_period_start", "report-period-start"},
		{"interior whitespace run", "New   England", "new-england"},
		{"leading and trailing space", "  Pertussis  ", "pertussis"},
		{"existing hyphens kept", "non-US residents", "non-us-residents"},
		{"comma", "Measles, Imported", "measles-imported"},
		{"digits", "Influenza A H5N1", "influenza-a-h5n1"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"punctuation only", "...", ""},
		{"accented letters survive", "Café", "café"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Meningococcal disease, Serogroup B",
		"U.S. Residents",
		"NEW YORK CITY",
		"west-north-central",
	}
	for _, input := range inputs {
		once := Slugify(input)
		assert.Equal(t, once, Slugify(once), "input %q", input)
	}
}

func TestSlugifyPtr(t *testing.T) {
	t.Run("nil in nil out", func(t *testing.T) {
		assert.Nil(t, SlugifyPtr(nil))
	})

	t.Run("empty slug becomes nil", func(t *testing.T) {
		empty := "  "
		assert.Nil(t, SlugifyPtr(&empty))
	})

	t.Run("value slugified", func(t *testing.T) {
		v := "Serogroup B"
		got := SlugifyPtr(&v)
		if assert.NotNil(t, got) {
			assert.Equal(t, "serogroup-b", *got)
		}
	})
}
