package assessment

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mind-engage/mindengage-diagnostic/internal/diagnostic"
	"github.com/mind-engage/mindengage-diagnostic/internal/questionnaire"
	"github.com/mind-engage/mindengage-diagnostic/internal/storage"
	syncx "github.com/mind-engage/mindengage-diagnostic/internal/sync"
)

// EventLog receives domain events; *syncx.EventRepo satisfies it.
type EventLog interface {
	Append(ctx context.Context, e syncx.Event) error
}

type Service struct {
	store  Store
	schema questionnaire.Schema
	blobs  storage.BlobStore
	events EventLog
	log    *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

func WithBlobStore(b storage.BlobStore) Option { return func(s *Service) { s.blobs = b } }
func WithEventLog(e EventLog) Option         { return func(s *Service) { s.events = e } }
func WithLogger(l *slog.Logger) Option       { return func(s *Service) { s.log = l } }
func WithClock(now func() time.Time) Option  { return func(s *Service) { s.now = now } }

func NewService(store Store, schema questionnaire.Schema, opts ...Option) *Service {
	s := &Service{
		store:  store,
		schema: schema,
		log:    slog.Default(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Schema() questionnaire.Schema { return s.schema }

// ReportView is a computed report with its narrative and completeness.
type ReportView struct {
	AssessmentID string                 `json:"assessmentId,omitempty"`
	Report       diagnostic.Report      `json:"report"`
	Narrative    diagnostic.Narrative   `json:"narrative"`
	Progress     questionnaire.Progress `json:"progress"`
}

// ExportResult describes a written export artifact.
type ExportResult struct {
	Export diagnostic.Export `json:"export"`
	Key    string            `json:"key,omitempty"`
	URL    string            `json:"url,omitempty"`
}

func (s *Service) Create(ctx context.Context, userID, title string) (Assessment, error) {
	a, err := s.store.Create(ctx, Assessment{
		UserID:    userID,
		Title:     title,
		CreatedAt: s.now().Unix(),
	})
	if err != nil {
		return Assessment{}, fmt.Errorf("create assessment: %w", err)
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id string) (Assessment, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, opts ListOpts) ([]Assessment, error) {
	return s.store.List(ctx, opts)
}

// SanitizeContext maps aliases to canonical factor keys and clamps values
// to 1..4. When several aliases of one factor are sent, the canonical key
// wins, as in the pressure calculation. Keys that are neither a factor alias nor a context question of
// the schema are rejected.
func (s *Service) SanitizeContext(raw map[string]any) (map[string]float64, error) {
	in := make(diagnostic.Responses, len(raw))
	for k, v := range raw {
		if _, ok := diagnostic.CanonicalContextKey(k); !ok {
			if _, known := s.schema.ContextQuestion(k); !known {
				return nil, fmt.Errorf("%w: %s", ErrUnknownQuestion, k)
			}
		}
		in[k] = diagnostic.Score(v)
	}
	out := diagnostic.CanonicalContext(in)
	for k, v := range out {
		out[k] = diagnostic.ClampContext(v)
	}
	return out, nil
}

// SanitizeMaturity clamps behavioral answers to 0..3 and rejects ids the
// schema does not define.
func (s *Service) SanitizeMaturity(raw map[string]any) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		if _, known := s.schema.BehavioralQuestion(k); !known {
			return nil, fmt.Errorf("%w: %s", ErrUnknownQuestion, k)
		}
		out[k] = diagnostic.ClampMaturity(diagnostic.Score(v))
	}
	return out, nil
}

func (s *Service) SaveContext(ctx context.Context, id string, raw map[string]any) (Assessment, error) {
	resp, err := s.SanitizeContext(raw)
	if err != nil {
		return Assessment{}, err
	}
	return s.store.SaveContext(ctx, id, resp)
}

func (s *Service) SaveMaturity(ctx context.Context, id string, raw map[string]any) (Assessment, error) {
	resp, err := s.SanitizeMaturity(raw)
	if err != nil {
		return Assessment{}, err
	}
	return s.store.SaveMaturity(ctx, id, resp)
}

// Reset clears both answer maps and records a ResponsesReset event.
func (s *Service) Reset(ctx context.Context, id string) (Assessment, error) {
	a, err := s.store.Reset(ctx, id)
	if err != nil {
		return Assessment{}, err
	}
	s.emit(ctx, syncx.TypeResponsesReset, id, map[string]any{"at": a.UpdatedAt})
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) Progress(ctx context.Context, id string) (questionnaire.Progress, error) {
	a, err := s.store.Get(ctx, id)
	if err != nil {
		return questionnaire.Progress{}, err
	}
	return s.schema.Progress(a.Context, a.Maturity), nil
}

func (s *Service) view(answers, maturity diagnostic.Responses) ReportView {
	r := diagnostic.ComputeReport(answers, maturity, s.schema)
	return ReportView{
		Report:    r,
		Narrative: diagnostic.Narrate(r),
		Progress:  s.schema.Progress(answers, maturity),
	}
}

// Preview computes a report for answers that are not stored.
func (s *Service) Preview(answers, maturity diagnostic.Responses) ReportView {
	v := s.view(diagnostic.CanonicalContext(answers), maturity)
	observeReport(sourcePreview, v.Report)
	return v
}

func (s *Service) Report(ctx context.Context, id string) (ReportView, error) {
	a, err := s.store.Get(ctx, id)
	if err != nil {
		return ReportView{}, err
	}
	v := s.view(a.Context, a.Maturity)
	v.AssessmentID = a.ID
	observeReport(sourceStored, v.Report)
	s.log.Debug("report computed",
		"assessment_id", a.ID, "ssi", v.Report.SSI, "opi", v.Report.OPI, "flags", len(v.Report.Risk.Flags))
	return v, nil
}

// Export snapshots the current report. With a blob store configured the
// artifact is written, indexed and announced as ReportExported.
func (s *Service) Export(ctx context.Context, id string) (ExportResult, error) {
	a, err := s.store.Get(ctx, id)
	if err != nil {
		return ExportResult{}, err
	}
	v := s.view(a.Context, a.Maturity)
	observeReport(sourceStored, v.Report)

	now := s.now()
	res := ExportResult{Export: diagnostic.BuildExport(v.Report, a.Context, v.Narrative.Tips, now)}
	if s.blobs == nil {
		return res, nil
	}

	body, err := res.Export.Marshal()
	if err != nil {
		return ExportResult{}, fmt.Errorf("encode export: %w", err)
	}
	key, err := s.blobs.Put(storage.ExportKey(a.ID, now), bytes.NewReader(body))
	if err != nil {
		return ExportResult{}, fmt.Errorf("write export: %w", err)
	}
	res.Key = key
	if u, err := s.blobs.SignedURL(key); err == nil {
		res.URL = u
	}
	if err := s.store.AddExport(ctx, ExportRecord{
		AssessmentID: a.ID,
		BlobKey:      key,
		SSI:          v.Report.SSI,
		OPI:          v.Report.OPI,
		CreatedAt:    now.Unix(),
	}); err != nil {
		return ExportResult{}, fmt.Errorf("index export: %w", err)
	}
	exportsWritten.Inc()
	s.emit(ctx, syncx.TypeReportExported, a.ID, map[string]any{
		"key": key, "ssi": v.Report.SSI, "opi": v.Report.OPI, "flags": v.Report.Risk.Flags,
	})
	s.log.Info("report exported", "assessment_id", a.ID, "key", key)
	return res, nil
}

func (s *Service) Exports(ctx context.Context, id string) ([]ExportRecord, error) {
	return s.store.ListExports(ctx, id)
}

// emit appends an event; failures are logged, not returned.
func (s *Service) emit(ctx context.Context, typ, ref string, data any) {
	if s.events == nil {
		return
	}
	e, err := syncx.NewEvent(typ, ref, data)
	if err == nil {
		err = s.events.Append(ctx, e)
	}
	if err != nil {
		s.log.Warn("event append failed", "type", typ, "assessment_id", ref, "err", err)
	}
}
