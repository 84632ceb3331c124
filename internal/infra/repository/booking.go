package repository

import (
	"context"

	"lendkit/internal/domain/booking"
	"lendkit/internal/infra"
	"lendkit/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	_, err := dbtx.Exec(ctx,
		`INSERT INTO bookings (id, item_id, booker_id, start_at, end_at, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID(), b.ItemID(), b.BookerID(),
		b.Period().Start(), b.Period().End(), string(b.Status()), b.CreatedAt())
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return b.ID(), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status booking.Status) error {
	tag, err := dbtx.Exec(ctx,
		`UPDATE bookings SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
