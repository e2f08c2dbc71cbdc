package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRisk_DimensionThreshold(t *testing.T) {
	ra := ClassifyRisk([]DimensionGap{
		{Dimension: "governance", Gap: -15},
		{Dimension: "adoption", Gap: -15.01},
		{Dimension: "components", Gap: 20},
	}, RiskContext{GovernanceAvg: 3, DistributionAvg: 3})

	assert.False(t, ra.ByDimension["governance"].Risk)
	assert.True(t, ra.ByDimension["adoption"].Risk)
	assert.Equal(t, -15.01, ra.ByDimension["adoption"].Gap)
	assert.False(t, ra.ByDimension["components"].Risk)
	assert.Equal(t, []string{"adoption risk (gap < -15)"}, ra.Flags)
	assert.True(t, ra.HasRisk)
}

func TestClassifyRisk_CrossCuttingRules(t *testing.T) {
	tests := []struct {
		name string
		rc   RiskContext
		want []string
	}{
		{"none", RiskContext{TeamSize: 1, AIUsage: 1}, []string{}},
		{"entropy", RiskContext{AIUsage: 3, GovernanceAvg: 1.9, DistributionAvg: 3}, []string{EntropyRiskFlag}},
		{"entropy needs weak governance", RiskContext{AIUsage: 4, GovernanceAvg: 2}, []string{}},
		{"drift", RiskContext{TeamSize: 3, DistributionAvg: 0, GovernanceAvg: 3}, []string{DriftRiskFlag}},
		{"both", RiskContext{TeamSize: 4, AIUsage: 4}, []string{EntropyRiskFlag, DriftRiskFlag}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ra := ClassifyRisk(nil, tc.rc)
			assert.Equal(t, tc.want, ra.Flags)
			assert.Equal(t, len(tc.want) > 0, ra.HasRisk)
		})
	}
}

func TestClassifyRisk_DimensionFlagsPrecedeCrossCutting(t *testing.T) {
	ra := ClassifyRisk(
		[]DimensionGap{{Dimension: "distribution", Gap: -40}, {Dimension: "governance", Gap: -30}},
		RiskContext{TeamSize: 4, AIUsage: 4},
	)
	assert.Equal(t, []string{
		"distribution risk (gap < -15)",
		"governance risk (gap < -15)",
		EntropyRiskFlag,
		DriftRiskFlag,
	}, ra.Flags)
}

func TestRiskRules_Inspectable(t *testing.T) {
	rules := RiskRules()
	if assert.Len(t, rules, 2) {
		assert.Equal(t, EntropyRiskFlag, rules[0].Flag)
		assert.Equal(t, DriftRiskFlag, rules[1].Flag)
		assert.True(t, rules[0].Applies(RiskContext{AIUsage: 3}))
		assert.False(t, rules[1].Applies(RiskContext{TeamSize: 2}))
	}
}
