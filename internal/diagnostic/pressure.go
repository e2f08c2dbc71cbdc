package diagnostic

import (
	"fmt"
	"math"
)

// Context factor names. These are also the canonical response keys.
const (
	FactorTeamSize             = "teamSize"
	FactorProductComplexity    = "productComplexity"
	FactorAIUsage              = "aiUsage"
	FactorReleaseFrequency     = "releaseFrequency"
	FactorToolingFragmentation = "toolingFragmentation"
)

// Factor is one weighted input of the operational pressure index. Keys are
// tried in order; the first key present in the responses wins.
type Factor struct {
	Name   string
	Keys   []string
	Weight float64
}

var pressureFactors = []Factor{
	{Name: FactorTeamSize, Keys: []string{"teamSize", "team_size"}, Weight: 0.25},
	{Name: FactorProductComplexity, Keys: []string{"productComplexity", "complexity"}, Weight: 0.25},
	{Name: FactorAIUsage, Keys: []string{"aiUsage", "ai_usage"}, Weight: 0.20},
	{Name: FactorReleaseFrequency, Keys: []string{"releaseFrequency", "releaseCadence"}, Weight: 0.15},
	{Name: FactorToolingFragmentation, Keys: []string{"toolingFragmentation", "tooling"}, Weight: 0.15},
}

// Factors returns a copy of the pressure factors in evaluation order.
func Factors() []Factor {
	out := make([]Factor, len(pressureFactors))
	for i, f := range pressureFactors {
		f.Keys = append([]string(nil), f.Keys...)
		out[i] = f
	}
	return out
}

// ValidateWeights checks that factor weights are non-negative and sum to 1.
func ValidateWeights(factors []Factor) error {
	sum := 0.0
	for _, f := range factors {
		if f.Weight < 0 {
			return fmt.Errorf("factor %s: negative weight %f", f.Name, f.Weight)
		}
		sum += f.Weight
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("factor weights sum to %.6f, must sum to 1.0", sum)
	}
	return nil
}

// CanonicalContextKey maps any accepted alias to its factor name.
func CanonicalContextKey(key string) (string, bool) {
	for _, f := range pressureFactors {
		for _, k := range f.Keys {
			if k == key {
				return f.Name, true
			}
		}
	}
	return "", false
}

// CanonicalContext folds factor aliases onto the factor name using the same
// precedence as the pressure calculation: the first present alias wins and
// the others are dropped. Keys that are not factor aliases are kept as is.
func CanonicalContext(context Responses) Responses {
	out := make(Responses, len(context))
	for k, v := range context {
		if _, ok := CanonicalContextKey(k); !ok {
			out[k] = v
		}
	}
	for _, f := range pressureFactors {
		for _, k := range f.Keys {
			if v, ok := context[k]; ok {
				out[f.Name] = v
				break
			}
		}
	}
	return out
}

// resolve returns the first present alias value bounded to 1..4, or the
// scale minimum when no alias is present.
func resolve(context Responses, keys []string) float64 {
	for _, k := range keys {
		if v, ok := context[k]; ok {
			return ClampContext(v)
		}
	}
	return ContextMin
}

// ResolveFactor returns the raw value for a factor name, honouring aliases.
func ResolveFactor(context Responses, name string) float64 {
	for _, f := range pressureFactors {
		if f.Name == name {
			return resolve(context, f.Keys)
		}
	}
	return ContextMin
}

// FactorContribution explains one factor's share of the OPI.
type FactorContribution struct {
	Factor       string  `json:"factor"`
	Raw          float64 `json:"raw"`
	Score100     float64 `json:"score100"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

type OperationalPressure struct {
	Index     float64              `json:"index"`
	Breakdown []FactorContribution `json:"breakdown"`
}

// ComputePressure weights the normalized context factors into the OPI (0..100).
func ComputePressure(context Responses) OperationalPressure {
	op := OperationalPressure{Breakdown: make([]FactorContribution, 0, len(pressureFactors))}
	for _, f := range pressureFactors {
		raw := resolve(context, f.Keys)
		s := NormalizeOneFour(raw)
		c := FactorContribution{
			Factor:       f.Name,
			Raw:          raw,
			Score100:     s,
			Weight:       f.Weight,
			Contribution: s * f.Weight,
		}
		op.Index += c.Contribution
		op.Breakdown = append(op.Breakdown, c)
	}
	return op
}
