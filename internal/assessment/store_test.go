package assessment

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-diagnostic/internal/db"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	conn, err := db.Open(context.Background(), db.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "a.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return map[string]Store{
		"memory": NewInMemoryStore(),
		"sqlite": NewSQLStore(conn, "sqlite"),
	}
}

func TestStore_CreateGet(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			a, err := s.Create(ctx, Assessment{UserID: "u1", Title: "Q1"})
			require.NoError(t, err)
			assert.NotEmpty(t, a.ID)
			assert.NotZero(t, a.CreatedAt)
			assert.Empty(t, a.Context)

			got, err := s.Get(ctx, a.ID)
			require.NoError(t, err)
			assert.Equal(t, "u1", got.UserID)
			assert.Equal(t, "Q1", got.Title)
			assert.NotNil(t, got.Maturity)

			_, err = s.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_SaveMergesLastWriteWins(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			a, err := s.Create(ctx, Assessment{UserID: "u1"})
			require.NoError(t, err)

			_, err = s.SaveContext(ctx, a.ID, map[string]float64{"teamSize": 2, "aiUsage": 3})
			require.NoError(t, err)
			got, err := s.SaveContext(ctx, a.ID, map[string]float64{"teamSize": 4})
			require.NoError(t, err)
			assert.Equal(t, map[string]float64{"teamSize": 4, "aiUsage": 3}, got.Context)

			got, err = s.SaveMaturity(ctx, a.ID, map[string]float64{"gov-ownership": 1})
			require.NoError(t, err)
			assert.Equal(t, map[string]float64{"gov-ownership": 1}, got.Maturity)
			assert.Len(t, got.Context, 2)

			reread, err := s.Get(ctx, a.ID)
			require.NoError(t, err)
			assert.Equal(t, got.Context, reread.Context)
			assert.Equal(t, got.Maturity, reread.Maturity)

			_, err = s.SaveMaturity(ctx, "missing", map[string]float64{"x": 1})
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_ResetDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			a, err := s.Create(ctx, Assessment{UserID: "u1"})
			require.NoError(t, err)
			_, err = s.SaveContext(ctx, a.ID, map[string]float64{"teamSize": 2})
			require.NoError(t, err)

			got, err := s.Reset(ctx, a.ID)
			require.NoError(t, err)
			assert.Empty(t, got.Context)
			assert.Empty(t, got.Maturity)

			require.NoError(t, s.AddExport(ctx, ExportRecord{AssessmentID: a.ID, BlobKey: "k1", SSI: 10, OPI: 20, CreatedAt: 1}))
			require.NoError(t, s.Delete(ctx, a.ID))
			_, err = s.Get(ctx, a.ID)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, s.Delete(ctx, a.ID), ErrNotFound)
		})
	}
}

func TestStore_ListFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for i, u := range []string{"u1", "u2", "u1"} {
				_, err := s.Create(ctx, Assessment{UserID: u, CreatedAt: int64(100 + i)})
				require.NoError(t, err)
			}

			all, err := s.List(ctx, ListOpts{})
			require.NoError(t, err)
			assert.Len(t, all, 3)
			assert.Equal(t, int64(102), all[0].CreatedAt)

			mine, err := s.List(ctx, ListOpts{UserID: "u1"})
			require.NoError(t, err)
			assert.Len(t, mine, 2)
			for _, a := range mine {
				assert.Equal(t, "u1", a.UserID)
			}

			page, err := s.List(ctx, ListOpts{Limit: 1, Offset: 1})
			require.NoError(t, err)
			require.Len(t, page, 1)
			assert.Equal(t, int64(101), page[0].CreatedAt)

			none, err := s.List(ctx, ListOpts{UserID: "nobody"})
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestStore_Exports(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			a, err := s.Create(ctx, Assessment{UserID: "u1"})
			require.NoError(t, err)

			recs, err := s.ListExports(ctx, a.ID)
			require.NoError(t, err)
			assert.Empty(t, recs)

			require.NoError(t, s.AddExport(ctx, ExportRecord{AssessmentID: a.ID, BlobKey: "k1", SSI: 50, OPI: 40, CreatedAt: 1}))
			require.NoError(t, s.AddExport(ctx, ExportRecord{AssessmentID: a.ID, BlobKey: "k2", SSI: 60, OPI: 40, CreatedAt: 2}))
			recs, err = s.ListExports(ctx, a.ID)
			require.NoError(t, err)
			require.Len(t, recs, 2)
			assert.Equal(t, "k1", recs[0].BlobKey)
			assert.Equal(t, 60.0, recs[1].SSI)

			assert.ErrorIs(t, s.AddExport(ctx, ExportRecord{AssessmentID: "missing", BlobKey: "k"}), ErrNotFound)
			_, err = s.ListExports(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	a, err := s.Create(ctx, Assessment{UserID: "u1"})
	require.NoError(t, err)
	got, err := s.SaveContext(ctx, a.ID, map[string]float64{"teamSize": 2})
	require.NoError(t, err)

	got.Context["teamSize"] = 4
	again, err := s.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, again.Context["teamSize"])
}
