package response

import (
	"time"

	"lendkit/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID        uuid.UUID       `json:"id"`
	Start     time.Time       `json:"start"`
	End       time.Time       `json:"end"`
	Status    string          `json:"status"`
	Item      ItemRefResponse `json:"item"`
	Booker    UserRefResponse `json:"booker"`
	CreatedAt time.Time       `json:"createdAt"`
}

type ItemRefResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type UserRefResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BookingRefResponse is the compact form embedded into item responses.
type BookingRefResponse struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Status   string    `json:"status"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:     view.ID,
		Start:  view.Start,
		End:    view.End,
		Status: string(view.Status),
		Item: ItemRefResponse{
			ID:   view.Item.ID,
			Name: view.Item.Name,
		},
		Booker: UserRefResponse{
			ID:   view.Booker.ID,
			Name: view.Booker.Name,
		},
		CreatedAt: view.CreatedAt,
	}
}

func FromBookingList(views []*queries.BookingView) []*BookingResponse {
	result := make([]*BookingResponse, len(views))
	for i, v := range views {
		result[i] = FromBookingView(v)
	}
	return result
}

func fromBookingRef(ref *queries.BookingRef) *BookingRefResponse {
	if ref == nil {
		return nil
	}
	return &BookingRefResponse{
		ID:       ref.ID,
		BookerID: ref.BookerID,
		Start:    ref.Start,
		End:      ref.End,
		Status:   string(ref.Status),
	}
}
