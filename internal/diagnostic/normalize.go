// Package diagnostic turns questionnaire responses into the maturity/pressure
// report: normalized scores, the operational pressure index (OPI), the
// structural strength index (SSI), gaps, risk flags and narrative guidance.
//
// Everything in this package is a pure function of its inputs. There is no
// I/O and no shared state, so callers may recompute as often as they like.
package diagnostic

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Responses maps a question ID to its raw score.
type Responses map[string]float64

// Scale bounds for the two kinds of questions.
const (
	MaturityMin = 0.0
	MaturityMax = 3.0
	ContextMin  = 1.0
	ContextMax  = 4.0
)

// clamp bounds x to [lo, hi]. NaN and ±Inf collapse to lo.
func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return lo
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ClampMaturity bounds a behavioral answer to 0..3.
func ClampMaturity(x float64) float64 { return clamp(x, MaturityMin, MaturityMax) }

// ClampContext bounds a context answer to 1..4.
func ClampContext(x float64) float64 { return clamp(x, ContextMin, ContextMax) }

// NormalizeZeroThree maps 0..3 onto 0..100.
func NormalizeZeroThree(x float64) float64 {
	return ClampMaturity(x) / 3 * 100
}

// NormalizeOneFour maps 1..4 onto 0..100.
func NormalizeOneFour(x float64) float64 {
	return (ClampContext(x) - 1) / 3 * 100
}

// Score coerces a loosely typed answer (decoded JSON, YAML, form values)
// into a float. Anything that is not a number comes back as NaN, which the
// clamps above treat as the bottom of the scale.
func Score(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int8:
		return float64(t)
	case int16:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case uint8:
		return float64(t)
	case uint16:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f
		}
	}
	return math.NaN()
}

// ResponsesFrom converts a decoded answer map into Responses using Score.
func ResponsesFrom(raw map[string]any) Responses {
	out := make(Responses, len(raw))
	for k, v := range raw {
		out[k] = Score(v)
	}
	return out
}
