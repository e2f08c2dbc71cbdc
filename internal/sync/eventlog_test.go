package syncx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-diagnostic/internal/db"
)

func TestEventRepo_AppendSince(t *testing.T) {
	ctx := context.Background()
	conn, err := db.Open(ctx, db.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "ev.db"))
	require.NoError(t, err)
	defer conn.Close()

	repo := NewEventRepo(conn)
	e1, err := NewEvent(TypeReportExported, "a1", map[string]any{"key": "exports/a1/x.json"})
	require.NoError(t, err)
	e2, err := NewEvent(TypeResponsesReset, "a1", map[string]any{})
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, e1))
	require.NoError(t, repo.Append(ctx, e2))

	all, err := repo.Since(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, TypeReportExported, all[0].Type)
	assert.Equal(t, "a1", all[0].Ref)
	assert.JSONEq(t, `{"key":"exports/a1/x.json"}`, all[0].DataJSON)
	assert.Equal(t, "local", all[0].SiteID)

	rest, err := repo.Since(ctx, all[0].Seq, 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, TypeResponsesReset, rest[0].Type)
}
