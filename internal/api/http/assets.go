package http

import (
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-diagnostic/internal/assessment"
	"github.com/mind-engage/mindengage-diagnostic/internal/storage"
	syncx "github.com/mind-engage/mindengage-diagnostic/internal/sync"
)

// MountExports serves export artifacts. Keys look like
// <assessmentID>/<timestamp>.json below /exports/.
func MountExports(r chi.Router, bs storage.BlobStore, svc *assessment.Service) {
	// GET /exports/*   -> returns the blob at whatever follows /exports/
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		assessmentID, _, ok := strings.Cut(rest, "/")
		if !ok || assessmentID == "" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		a, err := svc.Get(r.Context(), assessmentID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := checkOwner(r, a.UserID); err != nil {
			writeError(w, r, err)
			return
		}
		key := path.Join("exports", rest)
		if !strings.HasPrefix(key, "exports/"+assessmentID+"/") {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		rc, err := bs.Get(key)
		if err != nil {
			writeError(w, r, err)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(key)+`"`)
		_, _ = io.Copy(w, rc)
	})
}

// GET /events?after=&limit=
func ListEventsHandler(events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		after, _ := strconv.ParseInt(q.Get("after"), 10, 64)
		limit, _ := strconv.Atoi(q.Get("limit"))
		evs, err := events.Since(r.Context(), after, limit)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if evs == nil {
			evs = []syncx.Event{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": evs})
	}
}
