package item

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyName        = errors.New("item name cannot be empty")
	ErrEmptyDescription = errors.New("item description cannot be empty")
)

type Item struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	description string
	available   bool
	requestID   *uuid.UUID
}

func NewItem(ownerID uuid.UUID, name, description string, available bool, requestID *uuid.UUID) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	return &Item{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
	}, nil
}

func ReconstructItem(id, ownerID uuid.UUID, name, description string, available bool, requestID *uuid.UUID) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
	}
}

func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.ownerID == userID
}

// Patch applies the partial update the web layer allows: only the fields
// that arrived are touched.
func (i *Item) Patch(name, description *string, available *bool) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return ErrEmptyName
		}
		i.name = trimmed
	}
	if description != nil {
		trimmed := strings.TrimSpace(*description)
		if trimmed == "" {
			return ErrEmptyDescription
		}
		i.description = trimmed
	}
	if available != nil {
		i.available = *available
	}
	return nil
}

func (i *Item) ID() uuid.UUID         { return i.id }
func (i *Item) OwnerID() uuid.UUID    { return i.ownerID }
func (i *Item) Name() string          { return i.name }
func (i *Item) Description() string   { return i.description }
func (i *Item) Available() bool       { return i.available }
func (i *Item) RequestID() *uuid.UUID { return i.requestID }
