package assessment

import "errors"

var (
	ErrNotFound        = errors.New("assessment not found")
	ErrUnknownQuestion = errors.New("unknown question")
)

// Assessment is one respondent's answer state. Context and Maturity hold
// the latest answer per question id.
type Assessment struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	Title     string             `json:"title,omitempty"`
	Context   map[string]float64 `json:"context"`
	Maturity  map[string]float64 `json:"maturity"`
	CreatedAt int64              `json:"created_at"`
	UpdatedAt int64              `json:"updated_at"`
}

// ExportRecord indexes an export artifact written to blob storage.
type ExportRecord struct {
	AssessmentID string  `json:"assessment_id"`
	BlobKey      string  `json:"blob_key"`
	SSI          float64 `json:"ssi"`
	OPI          float64 `json:"opi"`
	CreatedAt    int64   `json:"created_at"`
}

func copyScores(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (a Assessment) clone() Assessment {
	a.Context = copyScores(a.Context)
	a.Maturity = copyScores(a.Maturity)
	return a
}
