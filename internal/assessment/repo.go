package assessment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type ListOpts struct {
	UserID string // empty: all users
	Limit  int
	Offset int
}

func (o ListOpts) normalized() ListOpts {
	if o.Limit <= 0 || o.Limit > 200 {
		o.Limit = 50
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}

// Store persists answer state. SaveContext and SaveMaturity merge the given
// answers into the stored ones, last write wins per question id.
type Store interface {
	Create(ctx context.Context, a Assessment) (Assessment, error)
	Get(ctx context.Context, id string) (Assessment, error)
	List(ctx context.Context, opts ListOpts) ([]Assessment, error)
	SaveContext(ctx context.Context, id string, resp map[string]float64) (Assessment, error)
	SaveMaturity(ctx context.Context, id string, resp map[string]float64) (Assessment, error)
	Reset(ctx context.Context, id string) (Assessment, error)
	Delete(ctx context.Context, id string) error

	AddExport(ctx context.Context, rec ExportRecord) error
	ListExports(ctx context.Context, assessmentID string) ([]ExportRecord, error)
}

// prepare fills the defaults Create applies in every store.
func prepare(a Assessment, now time.Time) Assessment {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt == 0 {
		a.CreatedAt = now.Unix()
	}
	a.UpdatedAt = a.CreatedAt
	a = a.clone()
	return a
}

type memoryStore struct {
	mu          sync.RWMutex
	assessments map[string]Assessment
	exports     map[string][]ExportRecord
}

func NewInMemoryStore() Store {
	return &memoryStore{
		assessments: map[string]Assessment{},
		exports:     map[string][]ExportRecord{},
	}
}

func (m *memoryStore) Create(_ context.Context, a Assessment) (Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a = prepare(a, time.Now())
	m.assessments[a.ID] = a
	return a.clone(), nil
}

func (m *memoryStore) Get(_ context.Context, id string) (Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.assessments[id]
	if !ok {
		return Assessment{}, ErrNotFound
	}
	return a.clone(), nil
}

func (m *memoryStore) List(_ context.Context, opts ListOpts) ([]Assessment, error) {
	opts = opts.normalized()
	m.mu.RLock()
	out := make([]Assessment, 0, len(m.assessments))
	for _, a := range m.assessments {
		if opts.UserID != "" && a.UserID != opts.UserID {
			continue
		}
		out = append(out, a.clone())
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	if opts.Offset >= len(out) {
		return []Assessment{}, nil
	}
	out = out[opts.Offset:]
	if len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *memoryStore) save(id string, apply func(*Assessment)) (Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assessments[id]
	if !ok {
		return Assessment{}, ErrNotFound
	}
	apply(&a)
	a.UpdatedAt = time.Now().Unix()
	m.assessments[id] = a
	return a.clone(), nil
}

func (m *memoryStore) SaveContext(_ context.Context, id string, resp map[string]float64) (Assessment, error) {
	return m.save(id, func(a *Assessment) {
		if a.Context == nil {
			a.Context = map[string]float64{}
		}
		for k, v := range resp {
			a.Context[k] = v
		}
	})
}

func (m *memoryStore) SaveMaturity(_ context.Context, id string, resp map[string]float64) (Assessment, error) {
	return m.save(id, func(a *Assessment) {
		if a.Maturity == nil {
			a.Maturity = map[string]float64{}
		}
		for k, v := range resp {
			a.Maturity[k] = v
		}
	})
}

func (m *memoryStore) Reset(_ context.Context, id string) (Assessment, error) {
	return m.save(id, func(a *Assessment) {
		a.Context = map[string]float64{}
		a.Maturity = map[string]float64{}
	})
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assessments[id]; !ok {
		return ErrNotFound
	}
	delete(m.assessments, id)
	delete(m.exports, id)
	return nil
}

func (m *memoryStore) AddExport(_ context.Context, rec ExportRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assessments[rec.AssessmentID]; !ok {
		return ErrNotFound
	}
	m.exports[rec.AssessmentID] = append(m.exports[rec.AssessmentID], rec)
	return nil
}

func (m *memoryStore) ListExports(_ context.Context, assessmentID string) ([]ExportRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.assessments[assessmentID]; !ok {
		return nil, ErrNotFound
	}
	return append([]ExportRecord{}, m.exports[assessmentID]...), nil
}
