package importing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Tubo  rame   Ø22", "Tubo rame Ø22"},
		{"  Valvola \t a sfera\n ", "Valvola a sfera"},
		{"Però è già così", "Pero e gia cosi"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeText(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeUnit(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"pz", "PZ"},
		{"PCS", "PZ"},
		{"Nr.", "PZ"},
		{"m", "MT"},
		{"ML", "MT"},
		{"kg", "KG"},
		{"conf", "CF"},
		{"", "PZ"},
		{"SCATOLA", "PZ"}, // sconosciuta: ricade su PZ
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeUnit(tc.in), "input %q", tc.in)
	}
}

func TestCodePrefix(t *testing.T) {
	assert.Equal(t, "IDR", codePrefix("Idraulica Rossi S.r.l."))
	assert.Equal(t, "ERR", codePrefix("érre elle"))
	assert.Equal(t, "3MI", codePrefix("3M Italia"))
	assert.Equal(t, "AB", codePrefix("A.B."))
	assert.Equal(t, "IMP", codePrefix("---"))
	assert.Equal(t, "IMP", codePrefix(""))
}
