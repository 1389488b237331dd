package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Dr. O'Brien-Smith", "dr obriensmith"},
		{"obrien smith", "obrien smith"},
		{"O'Brien Smith", "obrien smith"},
		{"  Jane   DOE  ", "jane doe"},
		{"Jane\tDoe\n", "jane doe"},
		{"Smith, J.", "smith j"},
		{"José Núñez", "jos nez"},
		{"3rd Person", "rd person"},
		{"", ""},
		{"...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.input))
		})
	}
}

func TestNormalizeNameMatchesAcrossPunctuation(t *testing.T) {
	assert.Equal(t, NormalizeName("O'BRIEN, Smith"), NormalizeName("obrien smith"))
	assert.Equal(t, NormalizeName("Mary-Ann Lee"), NormalizeName("maryann   lee"))
}
