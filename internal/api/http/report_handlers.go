package http

import (
	"net/http"

	"github.com/mind-engage/mindengage-diagnostic/internal/assessment"
	"github.com/mind-engage/mindengage-diagnostic/internal/diagnostic"
)

type previewReq struct {
	Context  map[string]any `json:"context" validate:"max=100"`
	Maturity map[string]any `json:"maturity" validate:"max=500"`
}

// GET /questionnaire
func GetQuestionnaireHandler(svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Schema())
	}
}

// POST /reports/preview computes a report for answers that are not stored.
func PreviewReportHandler(svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req previewReq
		if err := decode(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		v := svc.Preview(diagnostic.ResponsesFrom(req.Context), diagnostic.ResponsesFrom(req.Maturity))
		writeJSON(w, http.StatusOK, v)
	}
}

func GetReportHandler(svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := loadOwned(r, svc)
		if err != nil {
			writeError(w, r, err)
			return
		}
		v, err := svc.Report(r.Context(), a.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// POST /assessments/{id}/exports
func CreateExportHandler(svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := loadOwned(r, svc)
		if err != nil {
			writeError(w, r, err)
			return
		}
		res, err := svc.Export(r.Context(), a.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
	}
}

// GET /assessments/{id}/exports
func ListExportsHandler(svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := loadOwned(r, svc)
		if err != nil {
			writeError(w, r, err)
			return
		}
		recs, err := svc.Exports(r.Context(), a.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": recs})
	}
}
