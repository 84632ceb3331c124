package queries

import (
	"time"

	"lendkit/internal/domain/booking"

	"github.com/google/uuid"
)

// Read models (DTO for read side). Bookings are always delivered fully
// hydrated: the store resolves item and booker while selecting rows.

type UserRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ItemRef struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	OwnerID uuid.UUID `json:"owner_id"`
}

type BookingView struct {
	ID        uuid.UUID      `json:"id"`
	Start     time.Time      `json:"start"`
	End       time.Time      `json:"end"`
	Status    booking.Status `json:"status"`
	Item      ItemRef        `json:"item"`
	Booker    UserRef        `json:"booker"`
	CreatedAt time.Time      `json:"created_at"`
}

// BookingRef is the compact shape embedded into item views as the
// last/next booking.
type BookingRef struct {
	ID       uuid.UUID      `json:"id"`
	BookerID uuid.UUID      `json:"booker_id"`
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	Status   booking.Status `json:"status"`
}

type ItemView struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Available   bool       `json:"available"`
	RequestID   *uuid.UUID `json:"request_id,omitempty"`
}

type ItemDetailView struct {
	Item        ItemView       `json:"item"`
	LastBooking *BookingRef    `json:"last_booking,omitempty"`
	NextBooking *BookingRef    `json:"next_booking,omitempty"`
	Comments    []*CommentView `json:"comments"`
}

type CommentView struct {
	ID         uuid.UUID `json:"id"`
	ItemID     uuid.UUID `json:"item_id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type UserView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type RequestView struct {
	ID          uuid.UUID   `json:"id"`
	RequesterID uuid.UUID   `json:"requester_id"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
	Items       []*ItemView `json:"items"`
}

// Page is a zero-based offset window. The transport boundary validates
// From >= 0 and Size > 0 before it reaches this layer.
type Page struct {
	From int32
	Size int32
}
