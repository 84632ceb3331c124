package response

import (
	"time"

	"lendkit/internal/usecase/queries"

	"github.com/google/uuid"
)

type RequestResponse struct {
	ID          uuid.UUID       `json:"id"`
	RequesterID uuid.UUID       `json:"requesterId"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	Items       []*ItemResponse `json:"items"`
}

func FromRequestView(view *queries.RequestView) (*RequestResponse, error) {
	items, err := FromItemList(view.Items)
	if err != nil {
		return nil, err
	}
	return &RequestResponse{
		ID:          view.ID,
		RequesterID: view.RequesterID,
		Description: view.Description,
		CreatedAt:   view.CreatedAt,
		Items:       items,
	}, nil
}

func FromRequestList(views []*queries.RequestView) ([]*RequestResponse, error) {
	result := make([]*RequestResponse, len(views))
	for i, v := range views {
		resp, err := FromRequestView(v)
		if err != nil {
			return nil, err
		}
		result[i] = resp
	}
	return result, nil
}
