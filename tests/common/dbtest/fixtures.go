//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CountAuditRecords(t *testing.T, db DBLike, number, outcome string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM audit_records WHERE document_number = $1 AND ($2 = '' OR outcome = $2)",
		number, outcome).Scan(&n)
	require.NoError(t, err)
	return n
}

func DocumentVersion(t *testing.T, db DBLike, number string) (status string, version int64) {
	t.Helper()

	err := db.QueryRow(context.Background(),
		"SELECT status, version FROM documents WHERE number = $1", number).Scan(&status, &version)
	require.NoError(t, err)
	return status, version
}

// BackdateDocument moves status_since into the past so time windows can be crossed without a fake clock.
func BackdateDocument(t *testing.T, db DBLike, number string, by time.Duration) {
	t.Helper()

	tag, err := db.Exec(context.Background(),
		"UPDATE documents SET status_since = status_since - make_interval(secs => $2), created_at = created_at - make_interval(secs => $2) WHERE number = $1",
		number, by.Seconds())
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected())
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
