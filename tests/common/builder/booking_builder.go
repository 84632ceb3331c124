//go:build unit || e2e

package builder

import (
	"time"

	"lendkit/internal/domain/booking"
	reqdto "lendkit/internal/handler/dto/request"
	"lendkit/internal/usecase/commands"
	"lendkit/internal/usecase/queries"
	"lendkit/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID          uuid.UUID
	ItemID      uuid.UUID
	ItemName    string
	ItemOwnerID uuid.UUID
	BookerID    uuid.UUID
	BookerName  string
	Start       time.Time
	End         time.Time
	Status      booking.Status
	CreatedAt   time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now().Truncate(time.Second)
	return &BookingBuilder{
		ID:          uuid.New(),
		ItemID:      uuid.New(),
		ItemName:    "Cordless Drill",
		ItemOwnerID: uuid.New(),
		BookerID:    uuid.New(),
		BookerName:  "Alice",
		Start:       now.Add(24 * time.Hour),
		End:         now.Add(48 * time.Hour),
		Status:      booking.StatusWaiting,
		CreatedAt:   now,
	}
}

// Build methods
func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ItemID: b.ItemID,
		Start:  b.Start,
		End:    b.End,
	}
}

func (b *BookingBuilder) BuildCreateInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ItemID: b.ItemID,
		Start:  b.Start,
		End:    b.End,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Item: queries.ItemRef{
			ID:      b.ItemID,
			Name:    b.ItemName,
			OwnerID: b.ItemOwnerID,
		},
		Booker: queries.UserRef{
			ID:   b.BookerID,
			Name: b.BookerName,
		},
		CreatedAt: b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:          b.ID,
		ItemID:      b.ItemID,
		ItemOwnerID: b.ItemOwnerID,
		BookerID:    b.BookerID,
		Start:       b.Start,
		End:         b.End,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithID(id uuid.UUID) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithItemID(itemID uuid.UUID) *BookingBuilder {
	b.ItemID = itemID
	return b
}

func (b *BookingBuilder) WithItemOwnerID(ownerID uuid.UUID) *BookingBuilder {
	b.ItemOwnerID = ownerID
	return b
}

func (b *BookingBuilder) WithBookerID(bookerID uuid.UUID) *BookingBuilder {
	b.BookerID = bookerID
	return b
}

func (b *BookingBuilder) WithPeriod(start, end time.Time) *BookingBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) AsApproved() *BookingBuilder {
	b.Status = booking.StatusApproved
	return b
}

func (b *BookingBuilder) AsRejected() *BookingBuilder {
	b.Status = booking.StatusRejected
	return b
}
