package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsObjectKey(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"doctors/sarah-johnson.jpg", true},
		{"/doctors/sarah-johnson.jpg", true},
		{"https://cdn.example.com/sarah.jpg", false},
		{"HTTP://cdn.example.com/sarah.jpg", false},
		{"data:image/png;base64,AAAA", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsObjectKey(tt.in), tt.in)
	}
}
