package questionnaire

import "strings"

type SectionProgress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

// Progress reports how much of a questionnaire has been answered. Responses
// are collected incrementally; Complete is the gate callers check before
// treating a report as final.
type Progress struct {
	Context    SectionProgress            `json:"context"`
	Maturity   SectionProgress            `json:"maturity"`
	Dimensions map[string]SectionProgress `json:"dimensions"`
	Unanswered []string                   `json:"unanswered,omitempty"`
	Complete   bool                       `json:"complete"`
}

func (s Schema) Progress(context, maturity map[string]float64) Progress {
	p := Progress{Dimensions: map[string]SectionProgress{}}

	for _, q := range s.OperationalContext.Questions {
		p.Context.Total++
		if _, ok := context[q.ID]; ok {
			p.Context.Answered++
			continue
		}
		p.Unanswered = append(p.Unanswered, q.ID)
	}

	for _, q := range s.StructuralMaturity.Questions {
		key := strings.ToLower(q.Dimension)
		dp := p.Dimensions[key]
		dp.Total++
		p.Maturity.Total++
		if _, ok := maturity[q.ID]; ok {
			dp.Answered++
			p.Maturity.Answered++
		} else {
			p.Unanswered = append(p.Unanswered, q.ID)
		}
		p.Dimensions[key] = dp
	}

	p.Complete = len(p.Unanswered) == 0
	return p
}
