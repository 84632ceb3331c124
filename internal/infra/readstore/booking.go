package readstore

import (
	"context"
	"fmt"
	"strings"

	"lendkit/internal/infra"
	"lendkit/internal/infra/db"
	"lendkit/internal/pkg/pgconv"
	"lendkit/internal/usecase/queries"

	"github.com/google/uuid"
)

const bookingSelect = `
SELECT b.id, b.start_at, b.end_at, b.status, b.created_at,
       i.id, i.name, i.owner_id,
       u.id, u.name
FROM bookings b
JOIN items i ON i.id = b.item_id
JOIN users u ON u.id = b.booker_id`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, bookingSelect+" WHERE b.id = $1", id)

	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) FindFiltered(ctx context.Context, f queries.BookingFilter) ([]*queries.BookingView, error) {
	sql, args := BuildBookingQuery(f)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query bookings", err)
	}
	defer rows.Close()

	result := []*queries.BookingView{}
	for rows.Next() {
		view, serr := scanBookingView(rows)
		if serr != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", serr)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return result, nil
}

// BuildBookingQuery compiles a filter into SQL. Kept free of the
// connection so the translation is testable on its own.
func BuildBookingQuery(f queries.BookingFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.BookerID != nil {
		conds = append(conds, "b.booker_id = "+arg(*f.BookerID))
	}
	if len(f.ItemIDs) > 0 {
		conds = append(conds, "b.item_id = ANY("+arg(f.ItemIDs)+")")
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		conds = append(conds, "b.status = ANY("+arg(statuses)+")")
	}
	if f.StartAtOrBefore != nil {
		conds = append(conds, "b.start_at <= "+arg(*f.StartAtOrBefore))
	}
	if f.StartAfter != nil {
		conds = append(conds, "b.start_at > "+arg(*f.StartAfter))
	}
	if f.EndAtOrAfter != nil {
		conds = append(conds, "b.end_at >= "+arg(*f.EndAtOrAfter))
	}
	if f.EndBefore != nil {
		conds = append(conds, "b.end_at < "+arg(*f.EndBefore))
	}

	var sb strings.Builder
	sb.WriteString(bookingSelect)
	if len(conds) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}

	switch f.Sort {
	case queries.SortStartAsc:
		sb.WriteString("\nORDER BY b.start_at ASC")
	default:
		sb.WriteString("\nORDER BY b.start_at DESC")
	}

	if f.Limit > 0 {
		sb.WriteString(" LIMIT " + arg(f.Limit))
	}
	if f.Offset > 0 {
		sb.WriteString(" OFFSET " + arg(f.Offset))
	}

	return sb.String(), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingView(row rowScanner) (*queries.BookingView, error) {
	var v queries.BookingView
	err := row.Scan(
		&v.ID, &v.Start, &v.End, &v.Status, &v.CreatedAt,
		&v.Item.ID, &v.Item.Name, &v.Item.OwnerID,
		&v.Booker.ID, &v.Booker.Name,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
