package diagnostic

// DimensionGap is a dimension's score minus the OPI.
type DimensionGap struct {
	Dimension string  `json:"dimension"`
	Gap       float64 `json:"gap"`
}

// StructuralStrength is the unweighted mean of dimension scores, 0 when
// there are no dimensions.
func StructuralStrength(dims DimensionScores) float64 {
	if len(dims) == 0 {
		return 0
	}
	sum := 0.0
	for _, d := range dims {
		sum += d.Score100
	}
	return sum / float64(len(dims))
}

// DimensionGaps computes score100 - opi for every dimension, in dimension order.
func DimensionGaps(dims DimensionScores, opi float64) []DimensionGap {
	out := make([]DimensionGap, 0, len(dims))
	for _, d := range dims {
		out = append(out, DimensionGap{Dimension: d.Name, Gap: d.Score100 - opi})
	}
	return out
}
