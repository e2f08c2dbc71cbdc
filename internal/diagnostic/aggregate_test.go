package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-diagnostic/internal/questionnaire"
)

func questions() []questionnaire.BehavioralQuestion {
	return []questionnaire.BehavioralQuestion{
		{ID: "g1", Dimension: "Governance"},
		{ID: "d1", Dimension: "documentation"},
		{ID: "g2", Dimension: "governance"},
		{ID: "d2", Dimension: "Documentation"},
		{ID: "a1", Dimension: "adoption"},
	}
}

func TestAggregateDimensions_AveragesAnsweredOnly(t *testing.T) {
	dims := AggregateDimensions(Responses{"g1": 3, "g2": 1, "d1": 2}, questions())
	require.Len(t, dims, 3)

	assert.Equal(t, []string{"governance", "documentation", "adoption"},
		[]string{dims[0].Name, dims[1].Name, dims[2].Name})

	g, ok := dims.Get("GOVERNANCE")
	require.True(t, ok)
	assert.Equal(t, 2.0, g.Avg)
	assert.InDelta(t, 66.667, g.Score100, 1e-3)
	assert.Equal(t, 2, g.Answered)
	assert.Equal(t, 2, g.Total)

	d, _ := dims.Get("documentation")
	assert.Equal(t, 2.0, d.Avg)
	assert.Equal(t, 1, d.Answered)
	assert.Equal(t, 2, d.Total)
}

func TestAggregateDimensions_UnansweredDimensionIsKept(t *testing.T) {
	dims := AggregateDimensions(Responses{}, questions())
	require.Len(t, dims, 3)
	for _, d := range dims {
		assert.Equal(t, 0.0, d.Avg)
		assert.Equal(t, 0.0, d.Score100)
		assert.Equal(t, 0, d.Answered)
	}
	a, ok := dims.Get("adoption")
	require.True(t, ok)
	assert.Equal(t, 1, a.Total)
}

func TestAggregateDimensions_ClampsAnswers(t *testing.T) {
	dims := AggregateDimensions(Responses{"a1": 7}, questions())
	a, _ := dims.Get("adoption")
	assert.Equal(t, 3.0, a.Avg)
	assert.Equal(t, 100.0, a.Score100)
}

func TestAggregateDimensions_IgnoresUnknownAnswers(t *testing.T) {
	dims := AggregateDimensions(Responses{"nope": 3}, questions())
	for _, d := range dims {
		assert.Equal(t, 0, d.Answered)
	}
	_, ok := dims.Get("nope")
	assert.False(t, ok)
}
