package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		region string
		want   string
	}{
		{"national number in default region", "(650) 253-0000", "US", "+16502530000"},
		{"international number ignores region", "+41 44 668 1800", "US", "+41446681800"},
		{"unparseable kept trimmed", "  call me maybe ", "US", "call me maybe"},
		{"too short kept trimmed", " 12 ", "US", "12"},
		{"empty", "   ", "US", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.raw, tt.region))
		})
	}
}
