package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-diagnostic/internal/assessment"
	auth "github.com/mind-engage/mindengage-diagnostic/internal/auth/middleware"
)

type createAssessmentReq struct {
	Title  string `json:"title" validate:"max=200"`
	UserID string `json:"user_id" validate:"omitempty,max=200"` // facilitators may create on behalf of someone
}

type answersReq struct {
	Answers map[string]any `json:"answers" validate:"required,min=1,max=200"`
}

// loadOwned fetches the assessment named in the URL and checks the caller
// may see it.
func loadOwned(r *http.Request, svc *assessment.Service) (assessment.Assessment, error) {
	a, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return assessment.Assessment{}, err
	}
	if err := checkOwner(r, a.UserID); err != nil {
		return assessment.Assessment{}, err
	}
	return a, nil
}

func checkOwner(r *http.Request, owner string) error {
	p := auth.PrincipalFromContext(r.Context())
	if p.SeesAll() || (p.Subject != "" && p.Subject == owner) {
		return nil
	}
	return fmt.Errorf("%w: not your assessment", errForbidden)
}

func CreateAssessmentHandler(svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAssessmentReq
		if err := decode(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		p := auth.PrincipalFromContext(r.Context())
		owner := p.Subject
		if req.UserID != "" && req.UserID != p.Subject {
			if !p.SeesAll() {
				writeError(w, r, fmt.Errorf("%w: cannot create for another user", errForbidden))
				return
			}
			owner = req.UserID
		}
		a, err := svc.Create(r.Context(), owner, req.Title)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, a)
	}
}

// GET /assessments?user_id=&limit=&offset=
func ListAssessmentsHandler(svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		opts := assessment.ListOpts{UserID: q.Get("user_id")}
		opts.Limit, _ = strconv.Atoi(q.Get("limit"))
		opts.Offset, _ = strconv.Atoi(q.Get("offset"))

		p := auth.PrincipalFromContext(r.Context())
		if !p.SeesAll() {
			opts.UserID = p.Subject
		}
		items, err := svc.List(r.Context(), opts)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	}
}

func GetAssessmentHandler(svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := loadOwned(r, svc)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func SaveContextHandler(svc *assessment.Service) http.HandlerFunc {
	return saveAnswers(svc, svc.SaveContext)
}

func SaveMaturityHandler(svc *assessment.Service) http.HandlerFunc {
	return saveAnswers(svc, svc.SaveMaturity)
}

type saveFunc func(ctx context.Context, id string, raw map[string]any) (assessment.Assessment, error)

func saveAnswers(svc *assessment.Service, save saveFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := loadOwned(r, svc)
		if err != nil {
			writeError(w, r, err)
			return
		}
		var req answersReq
		if err := decode(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		a, err = save(r.Context(), a.ID, req.Answers)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// DELETE /assessments/{id}/responses
func ResetResponsesHandler(svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := loadOwned(r, svc)
		if err != nil {
			writeError(w, r, err)
			return
		}
		a, err = svc.Reset(r.Context(), a.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func DeleteAssessmentHandler(svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := loadOwned(r, svc)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := svc.Delete(r.Context(), a.ID); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ProgressHandler(svc *assessment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := loadOwned(r, svc)
		if err != nil {
			writeError(w, r, err)
			return
		}
		p, err := svc.Progress(r.Context(), a.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}
