//go:build unit || e2e

package builder

import (
	reqdto "lendkit/internal/handler/dto/request"
	"lendkit/internal/usecase/commands"
	"lendkit/internal/usecase/queries"
	"lendkit/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID    uuid.UUID
	Name  string
	Email string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:    uuid.New(),
		Name:  "Alice",
		Email: "alice@example.com",
	}
}

// Build methods
func (b *UserBuilder) BuildCreateRequestDTO() reqdto.CreateUserRequest {
	return reqdto.CreateUserRequest{
		Name:  b.Name,
		Email: b.Email,
	}
}

func (b *UserBuilder) BuildCreateInput() commands.CreateUserInput {
	return commands.CreateUserInput{
		Name:  b.Name,
		Email: b.Email,
	}
}

func (b *UserBuilder) BuildView() *queries.UserView {
	return &queries.UserView{
		ID:    b.ID,
		Name:  b.Name,
		Email: b.Email,
	}
}

func (b *UserBuilder) BuildSnapshot() *shared.UserSnapshot {
	return &shared.UserSnapshot{
		ID:    b.ID,
		Name:  b.Name,
		Email: b.Email,
	}
}

// Fluent builder methods
func (b *UserBuilder) WithID(id uuid.UUID) *UserBuilder {
	b.ID = id
	return b
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.Name = name
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}
