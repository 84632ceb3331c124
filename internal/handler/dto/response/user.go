package response

import (
	"lendkit/internal/pkg/errs"
	"lendkit/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func FromUserView(view *queries.UserView) (*UserResponse, error) {
	var resp UserResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, errs.Wrap(err, "failed to map user view")
	}
	return &resp, nil
}

func FromUserList(views []*queries.UserView) ([]*UserResponse, error) {
	result := make([]*UserResponse, len(views))
	for i, v := range views {
		resp, err := FromUserView(v)
		if err != nil {
			return nil, err
		}
		result[i] = resp
	}
	return result, nil
}
