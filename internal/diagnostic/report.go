package diagnostic

import (
	"strings"

	"github.com/mind-engage/mindengage-diagnostic/internal/questionnaire"
)

// Dimension names the cross-cutting risk rules read.
const (
	DimensionGovernance   = "governance"
	DimensionDistribution = "distribution"
)

// ContextProfile holds one value per pressure factor.
type ContextProfile struct {
	TeamSize             float64 `json:"teamSize"`
	ProductComplexity    float64 `json:"productComplexity"`
	AIUsage              float64 `json:"aiUsage"`
	ReleaseFrequency     float64 `json:"releaseFrequency"`
	ToolingFragmentation float64 `json:"toolingFragmentation"`
}

func (p *ContextProfile) set(factor string, v float64) {
	switch factor {
	case FactorTeamSize:
		p.TeamSize = v
	case FactorProductComplexity:
		p.ProductComplexity = v
	case FactorAIUsage:
		p.AIUsage = v
	case FactorReleaseFrequency:
		p.ReleaseFrequency = v
	case FactorToolingFragmentation:
		p.ToolingFragmentation = v
	}
}

// Report is the full derived snapshot of one pair of response maps.
type Report struct {
	Context       ContextProfile      `json:"context"`    // raw 1..4
	Normalized    ContextProfile      `json:"normalized"` // 0..100
	Pressure      OperationalPressure `json:"pressure"`
	Dimensions    DimensionScores     `json:"dimensions"`
	SSI           float64             `json:"ssi"`
	OPI           float64             `json:"opi"`
	AdequacyGap   float64             `json:"adequacyGap"`
	DimensionGaps []DimensionGap      `json:"dimensionGaps"`
	Risk          RiskAssessment      `json:"risk"`
}

// ComputeReport runs the whole pipeline. Missing or malformed answers
// degrade to defaults; the schema is assumed to have passed Validate.
func ComputeReport(context, maturity Responses, schema questionnaire.Schema) Report {
	pressure := ComputePressure(context)

	var raw, norm ContextProfile
	for _, c := range pressure.Breakdown {
		raw.set(c.Factor, c.Raw)
		norm.set(c.Factor, c.Score100)
	}

	dims := AggregateDimensions(maturity, schema.StructuralMaturity.Questions)
	ssi := StructuralStrength(dims)
	gaps := DimensionGaps(dims, pressure.Index)

	rc := RiskContext{
		TeamSize: raw.TeamSize,
		AIUsage:  raw.AIUsage,
	}
	if d, ok := dims.Get(DimensionGovernance); ok {
		rc.GovernanceAvg = d.Avg
	}
	if d, ok := dims.Get(DimensionDistribution); ok {
		rc.DistributionAvg = d.Avg
	}

	return Report{
		Context:       raw,
		Normalized:    norm,
		Pressure:      pressure,
		Dimensions:    dims,
		SSI:           ssi,
		OPI:           pressure.Index,
		AdequacyGap:   ssi - pressure.Index,
		DimensionGaps: gaps,
		Risk:          ClassifyRisk(gaps, rc),
	}
}

// HasFlag reports whether the risk classification raised flag.
func (r Report) HasFlag(flag string) bool {
	for _, f := range r.Risk.Flags {
		if strings.EqualFold(f, flag) {
			return true
		}
	}
	return false
}
