//go:build unit

package readstore_test

import (
	"strings"
	"testing"
	"time"

	"lendkit/internal/domain/booking"
	"lendkit/internal/infra/readstore"
	"lendkit/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildBookingQuery(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	bookerID := uuid.New()
	itemIDs := []uuid.UUID{uuid.New(), uuid.New()}

	testCases := []struct {
		name          string
		filter        queries.BookingFilter
		wantConds     []string
		unwantedConds []string
		wantOrder     string
		wantArgs      []any
	}{
		{
			name:      "empty filter selects everything newest first",
			filter:    queries.BookingFilter{},
			wantOrder: "ORDER BY b.start_at DESC",
			unwantedConds: []string{
				"WHERE", "LIMIT", "OFFSET",
			},
		},
		{
			name: "booker scope",
			filter: queries.BookingFilter{
				BookerID: &bookerID,
			},
			wantConds: []string{"b.booker_id = $1"},
			wantOrder: "ORDER BY b.start_at DESC",
			wantArgs:  []any{bookerID},
		},
		{
			name: "owner scope over many items",
			filter: queries.BookingFilter{
				ItemIDs: itemIDs,
			},
			wantConds: []string{"b.item_id = ANY($1)"},
			wantOrder: "ORDER BY b.start_at DESC",
			wantArgs:  []any{itemIDs},
		},
		{
			name: "current window uses inclusive comparisons",
			filter: queries.BookingFilter{
				StartAtOrBefore: &now,
				EndAtOrAfter:    &now,
			},
			wantConds: []string{"b.start_at <= $1", "b.end_at >= $2"},
			wantOrder: "ORDER BY b.start_at DESC",
			wantArgs:  []any{now, now},
		},
		{
			name: "past window uses strict end comparison and settled statuses",
			filter: queries.BookingFilter{
				Statuses:  []booking.Status{booking.StatusCanceled, booking.StatusApproved},
				EndBefore: &now,
			},
			wantConds: []string{"b.status = ANY($1)", "b.end_at < $2"},
			wantOrder: "ORDER BY b.start_at DESC",
			wantArgs:  []any{[]string{"CANCELED", "APPROVED"}, now},
		},
		{
			name: "future window uses strict start comparison",
			filter: queries.BookingFilter{
				StartAfter: &now,
			},
			wantConds: []string{"b.start_at > $1"},
			wantOrder: "ORDER BY b.start_at DESC",
			wantArgs:  []any{now},
		},
		{
			name: "next booking lookup sorts ascending with limit",
			filter: queries.BookingFilter{
				ItemIDs:    itemIDs[:1],
				StartAfter: &now,
				Sort:       queries.SortStartAsc,
				Limit:      1,
			},
			wantConds: []string{"b.item_id = ANY($1)", "b.start_at > $2", "LIMIT $3"},
			wantOrder: "ORDER BY b.start_at ASC",
			wantArgs:  []any{itemIDs[:1], now, int32(1)},
		},
		{
			name: "pagination window",
			filter: queries.BookingFilter{
				BookerID: &bookerID,
				Limit:    20,
				Offset:   40,
			},
			wantConds: []string{"b.booker_id = $1", "LIMIT $2", "OFFSET $3"},
			wantOrder: "ORDER BY b.start_at DESC",
			wantArgs:  []any{bookerID, int32(20), int32(40)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sql, args := readstore.BuildBookingQuery(tc.filter)

			for _, cond := range tc.wantConds {
				assert.Contains(t, sql, cond)
			}
			for _, cond := range tc.unwantedConds {
				assert.NotContains(t, sql, cond)
			}
			assert.Contains(t, sql, tc.wantOrder)

			if tc.wantArgs == nil {
				assert.Empty(t, args)
			} else if diff := cmp.Diff(tc.wantArgs, args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ORDER BY must come after the WHERE clause and before LIMIT/OFFSET.
func TestBuildBookingQuery_ClauseOrdering(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	bookerID := uuid.New()

	sql, _ := readstore.BuildBookingQuery(queries.BookingFilter{
		BookerID:   &bookerID,
		StartAfter: &now,
		Limit:      10,
		Offset:     20,
	})

	whereIdx := strings.Index(sql, "WHERE")
	orderIdx := strings.Index(sql, "ORDER BY")
	limitIdx := strings.Index(sql, "LIMIT")
	offsetIdx := strings.Index(sql, "OFFSET")

	assert.True(t, whereIdx >= 0 && whereIdx < orderIdx)
	assert.True(t, orderIdx < limitIdx)
	assert.True(t, limitIdx < offsetIdx)
}
