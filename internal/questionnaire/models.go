package questionnaire

import "strings"

type Option struct {
	Label string `json:"label" yaml:"label"`
	Score int    `json:"score" yaml:"score"` // 1..4
}

// ContextQuestion describes one situational factor (team size, AI usage, ...).
// Its ID is the key used in context responses.
type ContextQuestion struct {
	ID      string   `json:"id" yaml:"id"`
	Prompt  string   `json:"prompt" yaml:"prompt"`
	Options []Option `json:"options" yaml:"options"`
}

// BehavioralQuestion is scored 0..3 and rolls up into its Dimension.
type BehavioralQuestion struct {
	ID            string         `json:"id" yaml:"id"`
	Dimension     string         `json:"dimension" yaml:"dimension"`
	Prompt        string         `json:"prompt" yaml:"prompt"`
	HelpText      string         `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	ScoringLabels map[int]string `json:"scoringLabels" yaml:"scoringLabels"` // 0..3 -> label
}

type ContextSection struct {
	Questions []ContextQuestion `json:"questions" yaml:"questions"`
}

type MaturitySection struct {
	Dimensions []string             `json:"dimensions" yaml:"dimensions"`
	Questions  []BehavioralQuestion `json:"questions" yaml:"questions"`
}

type Schema struct {
	Version            string          `json:"version,omitempty" yaml:"version,omitempty"`
	OperationalContext ContextSection  `json:"operationalContext" yaml:"operationalContext"`
	StructuralMaturity MaturitySection `json:"structuralMaturity" yaml:"structuralMaturity"`
}

func (s Schema) ContextQuestion(id string) (ContextQuestion, bool) {
	for _, q := range s.OperationalContext.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return ContextQuestion{}, false
}

func (s Schema) BehavioralQuestion(id string) (BehavioralQuestion, bool) {
	for _, q := range s.StructuralMaturity.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return BehavioralQuestion{}, false
}

// QuestionsFor returns the behavioral questions of one dimension, matched
// case-insensitively, in schema order.
func (s Schema) QuestionsFor(dimension string) []BehavioralQuestion {
	var out []BehavioralQuestion
	for _, q := range s.StructuralMaturity.Questions {
		if strings.EqualFold(q.Dimension, dimension) {
			out = append(out, q)
		}
	}
	return out
}

// OptionLabel returns the label of the option whose score matches, or "".
func (q ContextQuestion) OptionLabel(score int) string {
	for _, o := range q.Options {
		if o.Score == score {
			return o.Label
		}
	}
	return ""
}
