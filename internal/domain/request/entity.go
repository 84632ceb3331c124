package request

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyDescription = errors.New("request description cannot be empty")

// Request is a wish published by a user who could not find a suitable
// item; owners may answer it by listing an item bound to the request.
type Request struct {
	id          uuid.UUID
	requesterID uuid.UUID
	description string
	createdAt   time.Time
}

func NewRequest(requesterID uuid.UUID, description string, now time.Time) (*Request, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	return &Request{
		id:          uuid.New(),
		requesterID: requesterID,
		description: description,
		createdAt:   now,
	}, nil
}

func ReconstructRequest(id, requesterID uuid.UUID, description string, createdAt time.Time) *Request {
	return &Request{
		id:          id,
		requesterID: requesterID,
		description: description,
		createdAt:   createdAt,
	}
}

func (r *Request) ID() uuid.UUID          { return r.id }
func (r *Request) RequesterID() uuid.UUID { return r.requesterID }
func (r *Request) Description() string    { return r.description }
func (r *Request) CreatedAt() time.Time   { return r.createdAt }
