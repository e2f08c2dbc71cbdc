package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactors_WeightsSumToOne(t *testing.T) {
	require.NoError(t, ValidateWeights(Factors()))

	sum := 0.0
	for _, f := range Factors() {
		sum += f.Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestValidateWeights_Rejects(t *testing.T) {
	assert.Error(t, ValidateWeights([]Factor{{Name: "a", Weight: 0.5}}))
	assert.Error(t, ValidateWeights([]Factor{{Name: "a", Weight: 1.5}, {Name: "b", Weight: -0.5}}))
}

func TestFactors_ReturnsCopy(t *testing.T) {
	f := Factors()
	f[0].Weight = 9
	f[0].Keys[0] = "mutated"
	assert.Equal(t, 0.25, Factors()[0].Weight)
	assert.Equal(t, FactorTeamSize, Factors()[0].Keys[0])
}

func TestComputePressure_EmptyContextIsZero(t *testing.T) {
	op := ComputePressure(Responses{})
	assert.Equal(t, 0.0, op.Index)
	require.Len(t, op.Breakdown, 5)
	for _, c := range op.Breakdown {
		assert.Equal(t, ContextMin, c.Raw, c.Factor)
		assert.Equal(t, 0.0, c.Contribution, c.Factor)
	}
}

func TestComputePressure_MaxContextIsHundred(t *testing.T) {
	op := ComputePressure(Responses{
		"teamSize": 4, "productComplexity": 4, "aiUsage": 4, "releaseFrequency": 4, "toolingFragmentation": 4,
	})
	assert.InDelta(t, 100.0, op.Index, 1e-9)
}

func TestComputePressure_Breakdown(t *testing.T) {
	op := ComputePressure(Responses{"teamSize": 4, "aiUsage": 2})
	assert.InDelta(t, 25+100.0/3*0.2, op.Index, 1e-9)

	team := op.Breakdown[0]
	assert.Equal(t, FactorTeamSize, team.Factor)
	assert.Equal(t, 4.0, team.Raw)
	assert.Equal(t, 100.0, team.Score100)
	assert.Equal(t, 25.0, team.Contribution)
}

func TestComputePressure_AliasesFirstMatchWins(t *testing.T) {
	legacy := ComputePressure(Responses{"team_size": 4, "complexity": 3, "tooling": 2})
	canonical := ComputePressure(Responses{"teamSize": 4, "productComplexity": 3, "toolingFragmentation": 2})
	assert.Equal(t, canonical, legacy)

	// canonical key shadows the legacy one
	both := ComputePressure(Responses{"teamSize": 2, "team_size": 4})
	assert.Equal(t, 2.0, both.Breakdown[0].Raw)
}

func TestComputePressure_IndexStaysInRange(t *testing.T) {
	for _, v := range []float64{-10, 0, 1, 2.5, 4, 100} {
		op := ComputePressure(Responses{"teamSize": v, "aiUsage": v, "releaseFrequency": v})
		assert.GreaterOrEqual(t, op.Index, 0.0)
		assert.LessOrEqual(t, op.Index, 100.0)
	}
}

func TestCanonicalContextKey(t *testing.T) {
	k, ok := CanonicalContextKey("releaseCadence")
	assert.True(t, ok)
	assert.Equal(t, FactorReleaseFrequency, k)

	_, ok = CanonicalContextKey("shoeSize")
	assert.False(t, ok)
}

func TestResolveFactor(t *testing.T) {
	assert.Equal(t, 3.0, ResolveFactor(Responses{"ai_usage": 3}, FactorAIUsage))
	assert.Equal(t, ContextMin, ResolveFactor(Responses{}, FactorAIUsage))
	assert.Equal(t, ContextMin, ResolveFactor(Responses{"x": 3}, "unknown"))
}

func TestCanonicalContext(t *testing.T) {
	got := CanonicalContext(Responses{
		"teamSize":  4,
		"team_size": 1,
		"tooling":   2,
		"extra":     3,
	})
	assert.Equal(t, Responses{"teamSize": 4, "toolingFragmentation": 2, "extra": 3}, got)

	in := Responses{"team_size": 3}
	assert.Equal(t, Responses{"teamSize": 3}, CanonicalContext(in))
	assert.Equal(t, Responses{"team_size": 3}, in, "input must not be modified")
	assert.Empty(t, CanonicalContext(nil))
}
