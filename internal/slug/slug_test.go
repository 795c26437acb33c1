package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "Chair", "chair"},
		{"spaces become hyphens", "Office Chair", "office-chair"},
		{"punctuation collapses", "Chair -- Deluxe!", "chair-deluxe"},
		{"leading and trailing noise trimmed", "  Chair  ", "chair"},
		{"digits kept", "Model 3000", "model-3000"},
		{"empty name", "", ""},
		{"only punctuation", "!!!", ""},
		{"deterministic", "Wooden Desk", "wooden-desk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Make(tt.input))
		})
	}
}
