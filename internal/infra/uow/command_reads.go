package uow

import (
	"context"

	"lendkit/internal/domain/booking"
	"lendkit/internal/infra"
	"lendkit/internal/infra/db"
	"lendkit/internal/pkg/pgconv"
	"lendkit/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// commandReads serves the write side's validation reads. Bound to a
// transaction it sees that transaction's uncommitted rows; bound to the
// pool it runs as plain single statements.
type commandReads struct {
	dbtx db.DBTX
}

func (r *commandReads) UserByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	var snap shared.UserSnapshot
	err := r.dbtx.QueryRow(ctx, `SELECT id, name, email FROM users WHERE id = $1`, id).
		Scan(&snap.ID, &snap.Name, &snap.Email)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read user snapshot", err)
	}
	return &snap, nil
}

func (r *commandReads) ItemByID(ctx context.Context, id uuid.UUID) (*shared.ItemSnapshot, error) {
	var (
		snap      shared.ItemSnapshot
		requestID pgtype.UUID
	)
	err := r.dbtx.QueryRow(ctx,
		`SELECT id, owner_id, name, description, available, request_id FROM items WHERE id = $1`, id).
		Scan(&snap.ID, &snap.OwnerID, &snap.Name, &snap.Description, &snap.Available, &requestID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read item snapshot", err)
	}
	snap.RequestID = pgconv.UUIDPtrFromPgtype(requestID)
	return &snap, nil
}

func (r *commandReads) RequestByID(ctx context.Context, id uuid.UUID) (*shared.RequestSnapshot, error) {
	var snap shared.RequestSnapshot
	err := r.dbtx.QueryRow(ctx,
		`SELECT id, requester_id, description, created_at FROM requests WHERE id = $1`, id).
		Scan(&snap.ID, &snap.RequesterID, &snap.Description, &snap.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read request snapshot", err)
	}
	return &snap, nil
}

func (r *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	return r.bookingByID(ctx, id, false)
}

func (r *commandReads) BookingByIDForUpdate(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	return r.bookingByID(ctx, id, true)
}

func (r *commandReads) bookingByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*shared.BookingSnapshot, error) {
	sql := `
SELECT b.id, b.item_id, i.owner_id, b.booker_id, b.start_at, b.end_at, b.status, b.created_at
FROM bookings b
JOIN items i ON i.id = b.item_id
WHERE b.id = $1`
	if forUpdate {
		// Lock only the booking row; the item row stays free for
		// concurrent bookings of the same item.
		sql += " FOR UPDATE OF b"
	}

	var (
		snap   shared.BookingSnapshot
		status string
	)
	err := r.dbtx.QueryRow(ctx, sql, id).Scan(
		&snap.ID, &snap.ItemID, &snap.ItemOwnerID, &snap.BookerID,
		&snap.Start, &snap.End, &status, &snap.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read booking snapshot", err)
	}
	snap.Status = booking.Status(status)
	return &snap, nil
}
