package scoring_test

import (
	"testing"

	"github.com/mkallas/flashdeck/internal/scoring"
	"github.com/stretchr/testify/assert"
)

func TestCheck_ExactMatch(t *testing.T) {
	assert.True(t, scoring.Check("Paris", "Paris"))
}

func TestCheck_TrimAndCase(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		canonical string
		correct   bool
	}{
		{name: "leading and trailing whitespace", submitted: " Paris ", canonical: "paris", correct: true},
		{name: "mixed case", submitted: "pArIs", canonical: "Paris", correct: true},
		{name: "tabs and newlines", submitted: "\tParis\n", canonical: "paris", correct: true},
		{name: "both sides padded", submitted: "  paris", canonical: "Paris  ", correct: true},
		{name: "wrong answer", submitted: "London", canonical: "Paris", correct: false},
		{name: "no partial credit", submitted: "Par", canonical: "Paris", correct: false},
		{name: "interior whitespace matters", submitted: "Pa ris", canonical: "Paris", correct: false},
		{name: "both empty", submitted: "", canonical: "", correct: true},
		{name: "whitespace only vs empty", submitted: "   ", canonical: "", correct: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.correct, scoring.Check(tt.submitted, tt.canonical))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "paris", scoring.Normalize(" Paris "))
	assert.Equal(t, "la paz", scoring.Normalize("La Paz"))
	assert.Equal(t, "", scoring.Normalize("   "))
}
