package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripNonASCII(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Deliver item (Inb)", "Deliver item (Inb)"},
		{"nbsp", "NEW YORK", "NEWYORK"},
		{"accent dropped entirely", "Montréal", "Montral"},
		{"newlines kept", "a\nb\n", "a\nb\n"},
		{"empty", "", ""},
		{"invalid utf8", "ok\xffok", "okok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripNonASCII(tt.in))
		})
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "Montreal", Fold("Montréal"))
	assert.Equal(t, "Sao Paulo", Fold("São Paulo"))
	assert.Equal(t, "fi", Fold("ﬁ"))
	assert.Equal(t, "NotFound", Fold("NotFound"))
}
