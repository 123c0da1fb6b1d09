package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNNDSSLabel(t *testing.T) {
	tests := []struct {
		name        string
		label       string
		wantBase    string
		wantSubtype *string
	}{
		{"no subtype", "Pertussis", "Pertussis", nil},
		{"serogroup prefix stripped", "Meningococcal disease, Serogroup B", "Meningococcal disease", ptr("B")},
		{"serogroup suffix stripped", "Meningococcal disease, B serogroup", "Meningococcal disease", ptr("B")},
		{"all serogroups is aggregate", "Meningococcal disease, All serogroups", "Meningococcal disease", nil},
		{"other serogroups canonicalized", "Meningococcal disease, Other serogroups", "Meningococcal disease", ptr("unspecified")},
		{"unknown serogroup canonicalized", "Meningococcal disease, Unknown serogroup", "Meningococcal disease", ptr("unknown")},
		{"imported is classification not subtype", "Measles, Imported", "Measles", nil},
		{"indigenous is classification not subtype", "Measles, Indigenous", "Measles", nil},
		{"total is aggregate", "Hepatitis B, Total", "Hepatitis B", nil},
		{"genuine subtype kept", "Hepatitis, B acute", "Hepatitis", ptr("B acute")},
		{"trailing comma only", "Pertussis,", "Pertussis", nil},
		{"empty label", "", "", nil},
		{"whitespace around parts", "  Measles ,  Imported  ", "Measles", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, subtype := ParseNNDSSLabel(tt.label)
			assert.Equal(t, tt.wantBase, base)
			if tt.wantSubtype == nil {
				assert.Nil(t, subtype)
			} else {
				require.NotNil(t, subtype)
				assert.Equal(t, *tt.wantSubtype, *subtype)
			}
		})
	}
}

func TestResolveNNDSSDisease(t *testing.T) {
	tests := []struct {
		name string
		base string
		want string
	}{
		{"remapped to tracker vocabulary", "Meningococcal disease", "meningococcus"},
		{"shared name slugified", "Pertussis", "pertussis"},
		{"unmapped passes through slugified", "Q Fever", "q-fever"},
		{"empty stays empty", "", ""},
		{"punctuation only stays empty", "...", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveNNDSSDisease(tt.base))
		})
	}
}

func TestApplyDiseaseAlias(t *testing.T) {
	assert.Equal(t, "Leprosy (Hansen's Disease)", ApplyDiseaseAlias("Hansen's Disease"))
	assert.Equal(t, "pertussis", ApplyDiseaseAlias("pertussis"))
}

func TestCleanNullable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *string
	}{
		{"empty", "", nil},
		{"whitespace", "   ", nil},
		{"not specified", "Not Specified", nil},
		{"unknown", "UNKNOWN", nil},
		{"n/a", "n/a", nil},
		{"na", "NA", nil},
		{"real value trimmed", "  0-4 years ", ptr("0-4 years")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanNullable(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestNormalizeTrackerSubtype(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *string
	}{
		{"placeholder nil", "Not Specified", nil},
		{"empty nil", "", nil},
		{"uppercased", "b", ptr("B")},
		{"other becomes unspecified", "other", ptr("unspecified")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTrackerSubtype(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func ptr(s string) *string { return &s }
