package diagnostic

import "fmt"

// GapRiskThreshold is the dimension gap below which a dimension is flagged.
const GapRiskThreshold = -15.0

const (
	EntropyRiskFlag = "Entropy risk (AI velocity > governance)"
	DriftRiskFlag   = "Drift risk (scale > release discipline)"
)

// RiskContext is the read-only input of the cross-cutting risk rules.
// TeamSize and AIUsage are raw 1..4 context levels; the averages are raw
// 0..3 dimension averages, 0 when the dimension does not exist.
type RiskContext struct {
	TeamSize        float64 `json:"teamSize"`
	AIUsage         float64 `json:"aiUsage"`
	GovernanceAvg   float64 `json:"governanceAvg"`
	DistributionAvg float64 `json:"distributionAvg"`
}

// RiskRule pairs a flag with the predicate that raises it.
type RiskRule struct {
	Flag    string
	Applies func(RiskContext) bool
}

var crossCuttingRules = []RiskRule{
	{
		Flag:    EntropyRiskFlag,
		Applies: func(c RiskContext) bool { return c.AIUsage >= 3 && c.GovernanceAvg < 2 },
	},
	{
		Flag:    DriftRiskFlag,
		Applies: func(c RiskContext) bool { return c.TeamSize >= 3 && c.DistributionAvg < 2 },
	},
}

// RiskRules returns the cross-cutting rules in evaluation order.
func RiskRules() []RiskRule {
	return append([]RiskRule(nil), crossCuttingRules...)
}

type DimensionRisk struct {
	Gap  float64 `json:"gap"`
	Risk bool    `json:"risk"`
}

type RiskAssessment struct {
	ByDimension map[string]DimensionRisk `json:"byDimension"`
	Flags       []string                 `json:"flags"`
	HasRisk     bool                     `json:"hasRisk"`
}

// DimensionRiskFlag is the flag text for a dimension whose gap breaches
// GapRiskThreshold.
func DimensionRiskFlag(dimension string) string {
	return fmt.Sprintf("%s risk (gap < -15)", dimension)
}

// ClassifyRisk evaluates every rule; flags accumulate in order (dimension
// flags in dimension order, then the cross-cutting rules).
func ClassifyRisk(gaps []DimensionGap, rc RiskContext) RiskAssessment {
	ra := RiskAssessment{
		ByDimension: make(map[string]DimensionRisk, len(gaps)),
		Flags:       []string{},
	}
	for _, g := range gaps {
		risky := g.Gap < GapRiskThreshold
		ra.ByDimension[g.Dimension] = DimensionRisk{Gap: g.Gap, Risk: risky}
		if risky {
			ra.Flags = append(ra.Flags, DimensionRiskFlag(g.Dimension))
		}
	}
	for _, rule := range crossCuttingRules {
		if rule.Applies(rc) {
			ra.Flags = append(ra.Flags, rule.Flag)
		}
	}
	ra.HasRisk = len(ra.Flags) > 0
	return ra
}
