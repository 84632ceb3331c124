package queries

import (
	"time"

	"lendkit/internal/domain/booking"

	"github.com/google/uuid"
)

type SortOrder string

const (
	SortStartDesc SortOrder = "start_desc"
	SortStartAsc  SortOrder = "start_asc"
)

// BookingFilter is the single predicate vocabulary for every booking
// selection in the system: the six logical states for both subjects
// (booker and owner), the last/next aggregation and comment eligibility
// all compile down to one of these. Time bounds are named after their
// comparison so inclusive and strict edges cannot be mixed up.
type BookingFilter struct {
	BookerID *uuid.UUID
	ItemIDs  []uuid.UUID
	Statuses []booking.Status

	StartAtOrBefore *time.Time // start <= t
	StartAfter      *time.Time // start >  t
	EndAtOrAfter    *time.Time // end   >= t
	EndBefore       *time.Time // end   <  t

	Sort   SortOrder
	Limit  int32
	Offset int32
}

// StateFilter maps a logical state to its temporal/status predicate.
// Both the booker-subject and the owner-subject listing use this one
// function; the subject scoping (booker id vs. item ids) is applied on
// top by the caller, so the six branches cannot drift apart between the
// two code paths.
func StateFilter(state booking.State, now time.Time) BookingFilter {
	switch state {
	case booking.StateCurrent:
		// Bounds inclusive: a booking starting or ending exactly now is current.
		return BookingFilter{StartAtOrBefore: &now, EndAtOrAfter: &now}
	case booking.StatePast:
		// Only settled bookings count as rental history.
		return BookingFilter{
			Statuses:  []booking.Status{booking.StatusCanceled, booking.StatusApproved},
			EndBefore: &now,
		}
	case booking.StateFuture:
		return BookingFilter{StartAfter: &now}
	case booking.StateWaiting:
		return BookingFilter{Statuses: []booking.Status{booking.StatusWaiting}}
	case booking.StateRejected:
		return BookingFilter{Statuses: []booking.Status{booking.StatusRejected}}
	default: // booking.StateAll
		return BookingFilter{}
	}
}
