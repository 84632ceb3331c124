//go:build unit

package response_test

import (
	"testing"
	"time"

	"lendkit/internal/domain/booking"
	"lendkit/internal/handler/dto/response"
	"lendkit/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestFromItemDetailView(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	itemID := uuid.New()
	ownerID := uuid.New()
	bookerID := uuid.New()
	requestID := uuid.New()
	lastID := uuid.New()
	commentID := uuid.New()

	view := &queries.ItemDetailView{
		Item: queries.ItemView{
			ID:          itemID,
			OwnerID:     ownerID,
			Name:        "Cordless Drill",
			Description: "18V drill with two batteries",
			Available:   true,
			RequestID:   &requestID,
		},
		LastBooking: &queries.BookingRef{
			ID:       lastID,
			BookerID: bookerID,
			Start:    now.Add(-48 * time.Hour),
			End:      now.Add(-24 * time.Hour),
			Status:   booking.StatusApproved,
		},
		Comments: []*queries.CommentView{
			{
				ID:         commentID,
				ItemID:     itemID,
				Text:       "Worked great",
				AuthorName: "Boris",
				CreatedAt:  now.Add(-12 * time.Hour),
			},
		},
	}

	resp, err := response.FromItemDetailView(view)
	require.NoError(t, err)

	expected := &response.ItemDetailResponse{
		ItemResponse: response.ItemResponse{
			ID:          itemID,
			OwnerID:     ownerID,
			Name:        "Cordless Drill",
			Description: "18V drill with two batteries",
			Available:   true,
			RequestID:   &requestID,
		},
		LastBooking: &response.BookingRefResponse{
			ID:       lastID,
			BookerID: bookerID,
			Start:    now.Add(-48 * time.Hour),
			End:      now.Add(-24 * time.Hour),
			Status:   "APPROVED",
		},
		Comments: []*response.CommentResponse{
			{
				ID:         commentID,
				ItemID:     itemID,
				Text:       "Worked great",
				AuthorName: "Boris",
				CreatedAt:  now.Add(-12 * time.Hour),
			},
		},
	}

	if diff := cmp.Diff(expected, resp); diff != "" {
		t.Errorf("detail response mismatch (-want +got):\n%s", diff)
	}
}

func TestFromUserList(t *testing.T) {
	views := []*queries.UserView{
		{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"},
		{ID: uuid.New(), Name: "Boris", Email: "boris@example.com"},
	}

	resps, err := response.FromUserList(views)
	require.NoError(t, err)
	require.Len(t, resps, 2)
	for i, v := range views {
		require.Equal(t, v.ID, resps[i].ID)
		require.Equal(t, v.Name, resps[i].Name)
		require.Equal(t, v.Email, resps[i].Email)
	}
}
