package shared

import (
	"context"
	"time"

	"lendkit/internal/domain/booking"
	"lendkit/internal/domain/comment"
	"lendkit/internal/domain/item"
	"lendkit/internal/domain/request"
	"lendkit/internal/domain/user"
	"lendkit/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Users() UserRepository
	Items() ItemRepository
	Bookings() BookingRepository
	Comments() CommentRepository
	Requests() RequestRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	ItemByID(ctx context.Context, id uuid.UUID) (*ItemSnapshot, error)
	RequestByID(ctx context.Context, id uuid.UUID) (*RequestSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// BookingByIDForUpdate takes a row lock so concurrent resolutions of
	// the same booking serialize. Only meaningful inside Within.
	BookingByIDForUpdate(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
}

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type UserSnapshot struct {
	ID    uuid.UUID
	Name  string
	Email string
}

type ItemSnapshot struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Available   bool
	RequestID   *uuid.UUID
}

type RequestSnapshot struct {
	ID          uuid.UUID
	RequesterID uuid.UUID
	Description string
	CreatedAt   time.Time
}

type BookingSnapshot struct {
	ID          uuid.UUID
	ItemID      uuid.UUID
	ItemOwnerID uuid.UUID
	BookerID    uuid.UUID
	Start       time.Time
	End         time.Time
	Status      booking.Status
	CreatedAt   time.Time
}

type UserRepository interface {
	Create(ctx context.Context, db db.DBTX, u *user.User) (uuid.UUID, error)
	Update(ctx context.Context, db db.DBTX, u *user.User) error
	Delete(ctx context.Context, db db.DBTX, id uuid.UUID) error
}

type ItemRepository interface {
	Create(ctx context.Context, db db.DBTX, it *item.Item) (uuid.UUID, error)
	Update(ctx context.Context, db db.DBTX, it *item.Item) error
}

type BookingRepository interface {
	Create(ctx context.Context, db db.DBTX, b *booking.Booking) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, db db.DBTX, id uuid.UUID, status booking.Status) error
}

type CommentRepository interface {
	Create(ctx context.Context, db db.DBTX, c *comment.Comment) (uuid.UUID, error)
}

type RequestRepository interface {
	Create(ctx context.Context, db db.DBTX, r *request.Request) (uuid.UUID, error)
}
