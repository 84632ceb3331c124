//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"lendkit/internal/domain/booking"
	"lendkit/internal/handler/dto/response"
	"lendkit/tests/common/builder"
	"lendkit/tests/common/dbtest"
	"lendkit/tests/common/httptest"
	"lendkit/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	usersURL    = "/users"
	itemsURL    = "/items"
	bookingsURL = "/bookings"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) createUser(name, email string) uuid.UUID {
	t := s.T()

	reqBody := builder.NewUserBuilder().WithName(name).WithEmail(email).BuildCreateRequestDTO()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, usersURL, reqBody, uuid.Nil)
	require.Equal(t, http.StatusCreated, w.Code, "user creation should succeed")

	var res response.UserResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	return res.ID
}

func (s *BookingSuite) createItem(ownerID uuid.UUID, name string) uuid.UUID {
	t := s.T()

	reqBody := builder.NewItemBuilder().WithName(name).BuildCreateRequestDTO()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, itemsURL, reqBody, ownerID)
	require.Equal(t, http.StatusCreated, w.Code, "item creation should succeed")

	var res response.ItemResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	return res.ID
}

func (s *BookingSuite) createBooking(bookerID, itemID uuid.UUID, start, end time.Time) response.BookingResponse {
	t := s.T()

	reqBody := builder.NewBookingBuilder().WithItemID(itemID).WithPeriod(start, end).BuildCreateRequestDTO()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, bookerID)
	require.Equal(t, http.StatusCreated, w.Code, "booking creation should succeed")

	var res response.BookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	return res
}

func (s *BookingSuite) listBookings(userID uuid.UUID, url string) []*response.BookingResponse {
	t := s.T()

	w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, userID)
	require.Equal(t, http.StatusOK, w.Code)

	var res []*response.BookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	return res
}

// =============================================================================
// TestLifecycle - creation, visibility and owner resolution
// =============================================================================

func (s *BookingSuite) TestLifecycle() {
	s.Run("booking starts waiting and the owner approves it", func() {
		t := s.T()

		ownerID := s.createUser("Olga", "olga@example.com")
		bookerID := s.createUser("Boris", "boris@example.com")
		strangerID := s.createUser("Sven", "sven@example.com")
		itemID := s.createItem(ownerID, "Cordless drill")

		now := time.Now()
		created := s.createBooking(bookerID, itemID, now.Add(24*time.Hour), now.Add(48*time.Hour))
		require.Equal(t, string(booking.StatusWaiting), created.Status)
		require.Equal(t, itemID, created.Item.ID)
		require.Equal(t, bookerID, created.Booker.ID)

		detailURL := bookingsURL + "/" + created.ID.String()

		// Visible to the booker and the owner, hidden from everyone else
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, detailURL, nil, bookerID)
		require.Equal(t, http.StatusOK, w.Code)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, detailURL, nil, ownerID)
		require.Equal(t, http.StatusOK, w.Code)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, detailURL, nil, strangerID)
		require.Equal(t, http.StatusNotFound, w.Code)

		// Approval
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, detailURL+"?approved=true", nil, ownerID)
		require.Equal(t, http.StatusOK, w.Code)

		var resolved response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resolved))
		require.Equal(t, string(booking.StatusApproved), resolved.Status)

		// Repeating the same decision is rejected
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, detailURL+"?approved=true", nil, ownerID)
		require.Equal(t, http.StatusBadRequest, w.Code)

		// Flipping the decision is allowed
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, detailURL+"?approved=false", nil, ownerID)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resolved))
		require.Equal(t, string(booking.StatusRejected), resolved.Status)
	})

	s.Run("only the owner can resolve a booking", func() {
		t := s.T()

		ownerID := s.createUser("Olga", "olga@example.com")
		bookerID := s.createUser("Boris", "boris@example.com")
		itemID := s.createItem(ownerID, "Ladder")

		now := time.Now()
		created := s.createBooking(bookerID, itemID, now.Add(24*time.Hour), now.Add(48*time.Hour))

		url := bookingsURL + "/" + created.ID.String() + "?approved=true"
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, url, nil, bookerID)
		require.Equal(t, http.StatusNotFound, w.Code, "non-owner must not learn the booking exists")
	})

	s.Run("owner cannot book their own item", func() {
		t := s.T()

		ownerID := s.createUser("Olga", "olga@example.com")
		itemID := s.createItem(ownerID, "Tent")

		now := time.Now()
		reqBody := builder.NewBookingBuilder().
			WithItemID(itemID).
			WithPeriod(now.Add(24*time.Hour), now.Add(48*time.Hour)).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, ownerID)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("unavailable item cannot be booked", func() {
		t := s.T()

		ownerID := s.createUser("Olga", "olga@example.com")
		bookerID := s.createUser("Boris", "boris@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Broken projector", false)

		now := time.Now()
		reqBody := builder.NewBookingBuilder().
			WithItemID(itemID).
			WithPeriod(now.Add(24*time.Hour), now.Add(48*time.Hour)).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, bookerID)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// =============================================================================
// TestStateLists - the six logical states for booker and owner subjects
// =============================================================================

func (s *BookingSuite) TestStateLists() {
	s.Run("lists select by state and sort by start descending", func() {
		t := s.T()

		ownerID := s.createUser("Olga", "olga@example.com")
		bookerID := s.createUser("Boris", "boris@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Projector", true)

		now := time.Now()
		pastApproved := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(-48*time.Hour), now.Add(-24*time.Hour), string(booking.StatusApproved))
		pastRejected := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(-72*time.Hour), now.Add(-50*time.Hour), string(booking.StatusRejected))
		current := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(-1*time.Hour), now.Add(1*time.Hour), string(booking.StatusApproved))
		futureWaiting := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), string(booking.StatusWaiting))

		cases := []struct {
			state string
			want  []uuid.UUID
		}{
			{"ALL", []uuid.UUID{futureWaiting, current, pastApproved, pastRejected}},
			{"CURRENT", []uuid.UUID{current}},
			{"PAST", []uuid.UUID{pastApproved}},
			{"FUTURE", []uuid.UUID{futureWaiting}},
			{"WAITING", []uuid.UUID{futureWaiting}},
			{"REJECTED", []uuid.UUID{pastRejected}},
		}

		for _, tt := range cases {
			got := s.listBookings(bookerID, fmt.Sprintf("%s?state=%s", bookingsURL, tt.state))
			require.Len(t, got, len(tt.want), "state %s", tt.state)
			for i, want := range tt.want {
				require.Equal(t, want, got[i].ID, "state %s position %d", tt.state, i)
			}
		}
	})

	s.Run("owner list covers all bookings of the owner's items", func() {
		t := s.T()

		ownerID := s.createUser("Olga", "olga@example.com")
		bookerID := s.createUser("Boris", "boris@example.com")
		itemA := dbtest.CreateTestItem(t, s.DB, ownerID, "Drill", true)
		itemB := dbtest.CreateTestItem(t, s.DB, ownerID, "Saw", true)

		now := time.Now()
		onA := dbtest.CreateTestBooking(t, s.DB, itemA, bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), string(booking.StatusWaiting))
		onB := dbtest.CreateTestBooking(t, s.DB, itemB, bookerID,
			now.Add(72*time.Hour), now.Add(96*time.Hour), string(booking.StatusWaiting))

		got := s.listBookings(ownerID, bookingsURL+"/owner?state=WAITING")
		require.Len(t, got, 2)
		require.Equal(t, onB, got[0].ID)
		require.Equal(t, onA, got[1].ID)

		// A user without items sees an empty owner list
		got = s.listBookings(bookerID, bookingsURL+"/owner")
		require.Empty(t, got)
	})

	s.Run("pagination window applies after state filtering", func() {
		t := s.T()

		ownerID := s.createUser("Olga", "olga@example.com")
		bookerID := s.createUser("Boris", "boris@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Kayak", true)

		now := time.Now()
		var ids []uuid.UUID
		for i := range 5 {
			id := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
				now.Add(time.Duration(24*(i+1))*time.Hour),
				now.Add(time.Duration(24*(i+1)+12)*time.Hour),
				string(booking.StatusWaiting))
			ids = append(ids, id)
		}

		got := s.listBookings(bookerID, bookingsURL+"?state=FUTURE&from=1&size=2")
		require.Len(t, got, 2)
		// Descending by start: skipping one leaves the 4th and 3rd bookings
		require.Equal(t, ids[3], got[0].ID)
		require.Equal(t, ids[2], got[1].ID)
	})
}

// =============================================================================
// TestCommentFlow - comments require a finished approved booking
// =============================================================================

func (s *BookingSuite) TestCommentFlow() {
	s.Run("booker with a finished booking can comment", func() {
		t := s.T()

		ownerID := s.createUser("Olga", "olga@example.com")
		bookerID := s.createUser("Boris", "boris@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Pressure washer", true)

		now := time.Now()
		finished := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(-48*time.Hour), now.Add(-24*time.Hour), string(booking.StatusApproved))

		commentURL := itemsURL + "/" + itemID.String() + "/comment"
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, commentURL,
			map[string]string{"text": "Worked great"}, bookerID)
		require.Equal(t, http.StatusCreated, w.Code)

		var comment response.CommentResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &comment))
		require.Equal(t, "Worked great", comment.Text)
		require.Equal(t, "Boris", comment.AuthorName)

		// Owner detail view carries the comment and the booking history
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, itemsURL+"/"+itemID.String(), nil, ownerID)
		require.Equal(t, http.StatusOK, w.Code)

		var detail response.ItemDetailResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &detail))
		require.Len(t, detail.Comments, 1)
		require.NotNil(t, detail.LastBooking)
		require.Equal(t, finished, detail.LastBooking.ID)
		require.Nil(t, detail.NextBooking)
	})

	s.Run("comments are listed newest first", func() {
		t := s.T()

		ownerID := s.createUser("Olga", "olga@example.com")
		bookerID := s.createUser("Boris", "boris@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Pressure washer", true)

		now := time.Now()
		older := dbtest.CreateTestComment(t, s.DB, itemID, bookerID, "First rental", now.Add(-48*time.Hour))
		newer := dbtest.CreateTestComment(t, s.DB, itemID, bookerID, "Second rental", now.Add(-24*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, itemsURL+"/"+itemID.String(), nil, ownerID)
		require.Equal(t, http.StatusOK, w.Code)

		var detail response.ItemDetailResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &detail))
		require.Len(t, detail.Comments, 2)
		require.Equal(t, newer, detail.Comments[0].ID)
		require.Equal(t, older, detail.Comments[1].ID)
	})

	s.Run("user without a finished booking cannot comment", func() {
		t := s.T()

		ownerID := s.createUser("Olga", "olga@example.com")
		strangerID := s.createUser("Sven", "sven@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Pressure washer", true)

		commentURL := itemsURL + "/" + itemID.String() + "/comment"
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, commentURL,
			map[string]string{"text": "Never used it"}, strangerID)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
