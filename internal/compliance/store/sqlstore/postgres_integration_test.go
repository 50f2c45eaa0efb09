//go:build integration

package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"qara/internal/compliance/models"
	"qara/internal/platform/config"
	"qara/internal/platform/database"
	"qara/pkg/testutil/containers"
)

func TestPostgresStore(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()

	db, err := database.Open(ctx, config.DatabaseConfig{URL: pg.DSN, MaxOpenConns: 4})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(ctx, db))

	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	_, err = db.ExecContext(ctx, `INSERT INTO audits (id, user_id, title, status, start_date, score, process_ids, referential_ids)
		VALUES (1, 1, 'Supplier', 'closed', $1, 80, '[1,2]', '[3]'),
		       (2, 1, 'Design', 'draft', NULL, NULL, 'oops', NULL),
		       (3, 2, 'Other tenant', 'closed', $1, 40, '[1]', '[3]')`, start)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO processes (id, code, name) VALUES (1, 'PUR', 'Purchasing'), (2, 'DES', 'Design')`)
	require.NoError(t, err)

	store := New(db)

	audits, err := store.ListAudits(ctx, models.Query{
		Predicates: []models.Predicate{
			models.Eq(models.EntityAudit, models.FieldUserID, int64(1)),
			{Entity: models.EntityAudit, Field: models.FieldStartDate, Op: models.OpGte, Value: start},
			{Entity: models.EntityAudit, Field: models.FieldReferentialIDs, Op: models.OpOverlaps, Value: []int64{3}},
		},
	})
	require.NoError(t, err)
	require.Len(t, audits, 1)
	require.Equal(t, []int64{1, 2}, audits[0].ProcessIDs)

	all, err := store.ListAudits(ctx, models.Query{
		Predicates: []models.Predicate{models.Eq(models.EntityAudit, models.FieldUserID, int64(1))},
		OrderBy:    []models.OrderBy{{Field: models.FieldStartDate, Desc: true}},
	})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, int64(2), all[0].ID, "NULL start dates sort first when descending")
	require.Empty(t, all[0].ProcessIDs)

	procs, err := store.ProcessesByIDs(ctx, []int64{2, 1})
	require.NoError(t, err)
	require.Equal(t, "Purchasing", procs[0].Name)
}
