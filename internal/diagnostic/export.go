package diagnostic

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// ExportDimension is the per-dimension entry of an export.
type ExportDimension struct {
	Avg      float64 `json:"avg"`
	Score100 float64 `json:"score100"`
}

// Export is the persisted/downloaded report artifact. Its JSON layout is
// consumed outside this repo; keep field names stable.
type Export struct {
	Timestamp        string                     `json:"timestamp"`
	ContextResponses map[string]float64         `json:"contextResponses"`
	DimensionScores  map[string]ExportDimension `json:"dimensionScores"`
	SSI              float64                    `json:"SSI"`
	OPI              float64                    `json:"OPI"`
	AdequacyGap      float64                    `json:"adequacyGap"`
	RiskFlags        []string                   `json:"riskFlags"`
	GuidanceTips     []string                   `json:"guidanceTips"`
}

// BuildExport snapshots a report. Context responses are copied as given,
// except non-finite values, which become the scale minimum so the artifact
// always encodes. Range clamping is not done here: callers that want the
// effective 1..4 levels recorded pass sanitized answers, as
// assessment.Service.Export does.
func BuildExport(r Report, context Responses, tips []string, now time.Time) Export {
	ctx := make(map[string]float64, len(context))
	for k, v := range context {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = ContextMin
		}
		ctx[k] = v
	}
	dims := make(map[string]ExportDimension, len(r.Dimensions))
	for _, d := range r.Dimensions {
		dims[d.Name] = ExportDimension{Avg: d.Avg, Score100: d.Score100}
	}
	flags := append([]string{}, r.Risk.Flags...)
	if tips == nil {
		tips = []string{}
	}
	return Export{
		Timestamp:        now.UTC().Format(time.RFC3339),
		ContextResponses: ctx,
		DimensionScores:  dims,
		SSI:              r.SSI,
		OPI:              r.OPI,
		AdequacyGap:      r.AdequacyGap,
		RiskFlags:        flags,
		GuidanceTips:     append([]string{}, tips...),
	}
}

// Marshal encodes the export as indented JSON.
func (e Export) Marshal() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// ParseExport decodes an export artifact and checks its timestamp.
func ParseExport(b []byte) (Export, error) {
	var e Export
	if err := json.Unmarshal(b, &e); err != nil {
		return Export{}, fmt.Errorf("decode export: %w", err)
	}
	if _, err := time.Parse(time.RFC3339, e.Timestamp); err != nil {
		return Export{}, fmt.Errorf("export timestamp: %w", err)
	}
	return e, nil
}
