package diagnostic

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fixed guidance texts.
var (
	entropyTips = []string{
		"Introduce lightweight review gates for AI-generated UI before it reaches the shared library.",
		"Publish explicit contribution rules so high-velocity teams extend the system instead of forking it.",
	}
	driftTips = []string{
		"Adopt semantic versioning with a changelog so many teams can track the same release line.",
		"Schedule regular releases and announce them; drift grows fastest when upgrades are ad hoc.",
	}
	fallbackTip = "Keep reassessing each quarter and revisit the lowest-scoring dimension first."

	// weaknessTips is evaluated in this order.
	weaknessTips = []struct {
		dimension string
		tip       string
	}{
		{"governance", "Name an owner for the system and a visible decision process for changes."},
		{"distribution", "Ship the system as versioned packages with release notes and a predictable cadence."},
		{"documentation", "Document usage guidelines next to every component, with live examples."},
		{"components", "Consolidate duplicated components behind one tested, well-typed API."},
		{"foundations", "Codify color, spacing and type as design tokens shared by design and code."},
		{"adoption", "Track where the system is used and collect feedback from consuming teams."},
	}
)

// Narrative is the human-readable side of a report.
type Narrative struct {
	Summary    string   `json:"summary"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Tips       []string `json:"tips"`
}

// Narrate derives all narrative parts from r.
func Narrate(r Report) Narrative {
	weaknesses := Weaknesses(r)
	return Narrative{
		Summary:    Summary(r),
		Strengths:  Strengths(r),
		Weaknesses: weaknesses,
		Tips:       guidance(r, weaknesses),
	}
}

func gapBand(gap float64) string {
	switch {
	case gap >= 10:
		return "tends to sit above"
	case gap >= 0:
		return "slightly above"
	case gap >= -10:
		return "slightly below"
	default:
		return "may indicate a notable gap"
	}
}

// Summary renders the one-sentence overview.
func Summary(r Report) string {
	return fmt.Sprintf(
		"Structural strength (SSI %.1f) %s relative to operational pressure (OPI %.1f), an adequacy gap of %.1f points, for a team-size level of %.0f and an AI-usage level of %.0f.",
		r.SSI, gapBand(r.AdequacyGap), r.OPI, r.AdequacyGap, r.Context.TeamSize, r.Context.AIUsage,
	)
}

// ranked returns the dimensions sorted by Score100 descending. Equal scores
// keep their aggregation order.
func ranked(r Report) []DimensionScore {
	out := append([]DimensionScore(nil), r.Dimensions...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score100 > out[j].Score100 })
	return out
}

func titleNames(ds []DimensionScore) []string {
	c := cases.Title(language.English)
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, c.String(d.Name))
	}
	return out
}

// Strengths returns the two highest-scoring dimensions, title-cased.
func Strengths(r Report) []string {
	s := ranked(r)
	if len(s) > 2 {
		s = s[:2]
	}
	return titleNames(s)
}

// Weaknesses returns the two lowest-scoring dimensions, lowest first. With
// fewer than four dimensions it can share entries with Strengths.
func Weaknesses(r Report) []string {
	s := ranked(r)
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	if len(s) > 2 {
		s = s[:2]
	}
	return titleNames(s)
}

// Guidance selects tips from the risk flags and the weakest dimensions.
func Guidance(r Report) []string {
	return guidance(r, Weaknesses(r))
}

func guidance(r Report, weaknesses []string) []string {
	var tips []string
	if r.HasFlag(EntropyRiskFlag) {
		tips = append(tips, entropyTips...)
	}
	if r.HasFlag(DriftRiskFlag) {
		tips = append(tips, driftTips...)
	}

	weak := make(map[string]bool, len(weaknesses))
	for _, w := range weaknesses {
		weak[strings.ToLower(w)] = true
	}
	for _, wt := range weaknessTips {
		if weak[wt.dimension] {
			tips = append(tips, wt.tip)
		}
	}

	if len(tips) == 0 {
		tips = append(tips, fallbackTip)
	}
	return dedupe(tips)
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
