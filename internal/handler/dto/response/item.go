package response

import (
	"time"

	"lendkit/internal/pkg/errs"
	"lendkit/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ItemResponse struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Available   bool       `json:"available"`
	RequestID   *uuid.UUID `json:"requestId,omitempty"`
}

type ItemDetailResponse struct {
	ItemResponse
	LastBooking *BookingRefResponse `json:"lastBooking,omitempty"`
	NextBooking *BookingRefResponse `json:"nextBooking,omitempty"`
	Comments    []*CommentResponse  `json:"comments"`
}

type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	ItemID     uuid.UUID `json:"itemId"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromItemView(view *queries.ItemView) (*ItemResponse, error) {
	var resp ItemResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, errs.Wrap(err, "failed to map item view")
	}
	return &resp, nil
}

func FromItemList(views []*queries.ItemView) ([]*ItemResponse, error) {
	result := make([]*ItemResponse, len(views))
	for i, v := range views {
		resp, err := FromItemView(v)
		if err != nil {
			return nil, err
		}
		result[i] = resp
	}
	return result, nil
}

func FromItemDetailView(view *queries.ItemDetailView) (*ItemDetailResponse, error) {
	item, err := FromItemView(&view.Item)
	if err != nil {
		return nil, err
	}
	comments, err := FromCommentList(view.Comments)
	if err != nil {
		return nil, err
	}
	return &ItemDetailResponse{
		ItemResponse: *item,
		LastBooking:  fromBookingRef(view.LastBooking),
		NextBooking:  fromBookingRef(view.NextBooking),
		Comments:     comments,
	}, nil
}

func FromItemDetailList(views []*queries.ItemDetailView) ([]*ItemDetailResponse, error) {
	result := make([]*ItemDetailResponse, len(views))
	for i, v := range views {
		resp, err := FromItemDetailView(v)
		if err != nil {
			return nil, err
		}
		result[i] = resp
	}
	return result, nil
}

func FromCommentView(view *queries.CommentView) (*CommentResponse, error) {
	var resp CommentResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, errs.Wrap(err, "failed to map comment view")
	}
	return &resp, nil
}

func FromCommentList(views []*queries.CommentView) ([]*CommentResponse, error) {
	result := make([]*CommentResponse, len(views))
	for i, v := range views {
		resp, err := FromCommentView(v)
		if err != nil {
			return nil, err
		}
		result[i] = resp
	}
	return result, nil
}
