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

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestUser(t *testing.T, db DBLike, name, email string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, name, email) VALUES ($1, $2, $3) ON CONFLICT (email) DO NOTHING",
		userID, name, email)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestItem(t *testing.T, db DBLike, ownerID uuid.UUID, name string, available bool) uuid.UUID {
	t.Helper()

	itemID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO items (id, owner_id, name, description, available, request_id) VALUES ($1, $2, $3, $4, $5, NULL)",
		itemID, ownerID, name, name+" description", available)
	require.NoError(t, err)

	return itemID
}

func CreateTestBooking(t *testing.T, db DBLike, itemID, bookerID uuid.UUID, start, end time.Time, status string) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO bookings (id, item_id, booker_id, start_at, end_at, status) VALUES ($1, $2, $3, $4, $5, $6)",
		bookingID, itemID, bookerID, start, end, status)
	require.NoError(t, err)

	return bookingID
}

func CreateTestComment(t *testing.T, db DBLike, itemID, authorID uuid.UUID, text string, createdAt time.Time) uuid.UUID {
	t.Helper()

	commentID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO comments (id, item_id, author_id, text, created_at) VALUES ($1, $2, $3, $4, $5)",
		commentID, itemID, authorID, text, createdAt)
	require.NoError(t, err)

	return commentID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between tests
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
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
