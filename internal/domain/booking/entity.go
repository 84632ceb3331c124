package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSameStatus    = errors.New("booking already has the requested status")
	ErrInvalidStatus = errors.New("invalid booking status")
)

type Booking struct {
	id        uuid.UUID
	itemID    uuid.UUID
	bookerID  uuid.UUID
	period    Period
	status    Status
	createdAt time.Time
}

// NewBooking creates a booking request in status WAITING. Existence,
// availability and self-booking checks happen in the command layer
// before this constructor runs.
func NewBooking(itemID, bookerID uuid.UUID, period Period, now time.Time) *Booking {
	return &Booking{
		id:        uuid.New(),
		itemID:    itemID,
		bookerID:  bookerID,
		period:    period,
		status:    StatusWaiting,
		createdAt: now,
	}
}

func ReconstructBooking(id, itemID, bookerID uuid.UUID, period Period, status Status, createdAt time.Time) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		period:    period,
		status:    status,
		createdAt: createdAt,
	}
}

// Resolve applies the owner's decision. Only a transition to the exact
// same status is rejected; moving a previously REJECTED booking to
// APPROVED (or back) is allowed because owners may reconsider.
func (b *Booking) Resolve(approved bool) error {
	target := ResolutionStatus(approved)
	if b.status == target {
		return ErrSameStatus
	}
	b.status = target
	return nil
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) ItemID() uuid.UUID    { return b.itemID }
func (b *Booking) BookerID() uuid.UUID  { return b.bookerID }
func (b *Booking) Period() Period       { return b.period }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
