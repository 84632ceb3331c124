package booking

import (
	"errors"
	"strings"
)

var ErrUnknownState = errors.New("unknown booking state")

// State is the logical bucket a caller may request when listing
// bookings: a temporal window (CURRENT/PAST/FUTURE), a status filter
// (WAITING/REJECTED), or no filter at all (ALL).
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

func (s State) String() string {
	return string(s)
}

// ParseState parses a free-form state string. Unrecognized strings are a
// hard error, never a silent fallback to ALL.
func ParseState(raw string) (State, error) {
	switch State(strings.ToUpper(strings.TrimSpace(raw))) {
	case StateAll:
		return StateAll, nil
	case StateCurrent:
		return StateCurrent, nil
	case StatePast:
		return StatePast, nil
	case StateFuture:
		return StateFuture, nil
	case StateWaiting:
		return StateWaiting, nil
	case StateRejected:
		return StateRejected, nil
	default:
		return "", ErrUnknownState
	}
}
