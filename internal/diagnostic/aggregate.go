package diagnostic

import (
	"strings"

	"github.com/mind-engage/mindengage-diagnostic/internal/questionnaire"
)

// DimensionScore is the roll-up of one maturity dimension.
type DimensionScore struct {
	Name     string  `json:"name"` // lower-cased
	Avg      float64 `json:"avg"`  // 0..3
	Score100 float64 `json:"score100"`
	Answered int     `json:"answered"`
	Total    int     `json:"total"`
}

// DimensionScores keeps dimensions in order of first appearance in the
// question list. That order is the tie-breaker for ranking.
type DimensionScores []DimensionScore

// Get looks a dimension up case-insensitively.
func (d DimensionScores) Get(name string) (DimensionScore, bool) {
	key := strings.ToLower(name)
	for _, s := range d {
		if s.Name == key {
			return s, true
		}
	}
	return DimensionScore{}, false
}

// AggregateDimensions averages the answered behavioral questions of every
// dimension. A dimension referenced by at least one question is always
// present, with Avg 0 when nothing has been answered yet.
func AggregateDimensions(maturity Responses, questions []questionnaire.BehavioralQuestion) DimensionScores {
	type acc struct {
		sum   float64
		count int
		total int
	}
	var order []string
	sums := map[string]*acc{}

	for _, q := range questions {
		key := strings.ToLower(q.Dimension)
		a, ok := sums[key]
		if !ok {
			a = &acc{}
			sums[key] = a
			order = append(order, key)
		}
		a.total++
		if v, answered := maturity[q.ID]; answered {
			a.sum += ClampMaturity(v)
			a.count++
		}
	}

	out := make(DimensionScores, 0, len(order))
	for _, key := range order {
		a := sums[key]
		avg := 0.0
		if a.count > 0 {
			avg = a.sum / float64(a.count)
		}
		out = append(out, DimensionScore{
			Name:     key,
			Avg:      avg,
			Score100: NormalizeZeroThree(avg),
			Answered: a.count,
			Total:    a.total,
		})
	}
	return out
}
