//go:build unit

package booking_test

import (
	"testing"

	"lendkit/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	testCases := []struct {
		name  string
		raw   string
		want  booking.State
		errIs error
	}{
		{name: "all", raw: "ALL", want: booking.StateAll},
		{name: "current", raw: "CURRENT", want: booking.StateCurrent},
		{name: "past", raw: "PAST", want: booking.StatePast},
		{name: "future", raw: "FUTURE", want: booking.StateFuture},
		{name: "waiting", raw: "WAITING", want: booking.StateWaiting},
		{name: "rejected", raw: "REJECTED", want: booking.StateRejected},
		{name: "lower case accepted", raw: "current", want: booking.StateCurrent},
		{name: "surrounding whitespace accepted", raw: " ALL ", want: booking.StateAll},
		{name: "empty string is a hard error", raw: "", errIs: booking.ErrUnknownState},
		{name: "garbage is a hard error", raw: "UNSUPPORTED_STATUS", errIs: booking.ErrUnknownState},
		{name: "canceled is not a listable state", raw: "CANCELED", errIs: booking.ErrUnknownState},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := booking.ParseState(tc.raw)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
