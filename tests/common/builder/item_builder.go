//go:build unit || e2e

package builder

import (
	reqdto "lendkit/internal/handler/dto/request"
	"lendkit/internal/usecase/commands"
	"lendkit/internal/usecase/queries"
	"lendkit/internal/usecase/shared"

	"github.com/google/uuid"
)

type ItemBuilder struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Available   bool
	RequestID   *uuid.UUID
}

func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Name:        "Cordless Drill",
		Description: "18V drill with two batteries",
		Available:   true,
	}
}

// Build methods
func (b *ItemBuilder) BuildCreateRequestDTO() reqdto.CreateItemRequest {
	available := b.Available
	return reqdto.CreateItemRequest{
		Name:        b.Name,
		Description: b.Description,
		Available:   &available,
		RequestID:   b.RequestID,
	}
}

func (b *ItemBuilder) BuildCreateInput() commands.CreateItemInput {
	return commands.CreateItemInput{
		Name:        b.Name,
		Description: b.Description,
		Available:   b.Available,
		RequestID:   b.RequestID,
	}
}

func (b *ItemBuilder) BuildView() *queries.ItemView {
	return &queries.ItemView{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		Name:        b.Name,
		Description: b.Description,
		Available:   b.Available,
		RequestID:   b.RequestID,
	}
}

func (b *ItemBuilder) BuildDetailView() *queries.ItemDetailView {
	return &queries.ItemDetailView{
		Item:     *b.BuildView(),
		Comments: []*queries.CommentView{},
	}
}

func (b *ItemBuilder) BuildSnapshot() *shared.ItemSnapshot {
	return &shared.ItemSnapshot{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		Name:        b.Name,
		Description: b.Description,
		Available:   b.Available,
		RequestID:   b.RequestID,
	}
}

// Fluent builder methods
func (b *ItemBuilder) WithID(id uuid.UUID) *ItemBuilder {
	b.ID = id
	return b
}

func (b *ItemBuilder) WithOwnerID(ownerID uuid.UUID) *ItemBuilder {
	b.OwnerID = ownerID
	return b
}

func (b *ItemBuilder) WithName(name string) *ItemBuilder {
	b.Name = name
	return b
}

func (b *ItemBuilder) WithRequestID(requestID uuid.UUID) *ItemBuilder {
	b.RequestID = &requestID
	return b
}

func (b *ItemBuilder) AsUnavailable() *ItemBuilder {
	b.Available = false
	return b
}
