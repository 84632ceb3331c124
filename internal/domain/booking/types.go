package booking

// Status is the lifecycle status of a booking.
//
// WAITING is the sole status produced at creation. APPROVED and REJECTED
// are set by the owner through the resolve operation. CANCELED is a
// terminal value written only by an external collaborator
// (booker-initiated cancellation); this core reads it but never writes it.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected, StatusCanceled:
		return true
	default:
		return false
	}
}

// IsSettled reports whether the booking outcome is final from a
// rental-history perspective. REJECTED bookings never happened and
// WAITING ones are undecided, so neither counts.
func (s Status) IsSettled() bool {
	return s == StatusApproved || s == StatusCanceled
}

// ResolutionStatus maps the owner's decision to the target status.
func ResolutionStatus(approved bool) Status {
	if approved {
		return StatusApproved
	}
	return StatusRejected
}
