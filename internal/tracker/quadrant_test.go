package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	cases := []struct {
		text string
		want Quadrant
	}{
		{"URGENT: finish project ASAP", QuadrantDoFirst}, // urgent + important
		{"study for the exam", QuadrantSchedule},         // important only
		{"reply today", QuadrantDelegate},                // urgent only
		{"organize desk", QuadrantSchedule},              // neither: default
		{"deadline for the critical release", QuadrantDoFirst},
		{"", QuadrantSchedule},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Categorize(tc.text), "text %q", tc.text)
	}
}

func TestParseQuadrant(t *testing.T) {
	q, err := ParseQuadrant("Do-First")
	assert.NoError(t, err)
	assert.Equal(t, QuadrantDoFirst, q)

	q, err = ParseQuadrant(" schedule ")
	assert.NoError(t, err)
	assert.Equal(t, QuadrantSchedule, q)

	_, err = ParseQuadrant("someday")
	assert.Error(t, err)
}

func TestQuadrantLabels(t *testing.T) {
	assert.Equal(t, "Do First", QuadrantDoFirst.Label())
	assert.Equal(t, "Eliminate", QuadrantEliminate.Label())
	assert.False(t, Quadrant("later").IsValid())
}
