package comment

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	id        uuid.UUID
	itemID    uuid.UUID
	authorID  uuid.UUID
	text      Text
	createdAt time.Time
}

// NewComment creates a comment after checking that the author actually
// rented the item. The eligibility rule itself lives behind
// EligibilityChecker because it needs the booking store.
func NewComment(services *Services, authorID, itemID uuid.UUID, text Text) (*Comment, error) {
	now := services.Clock.Now()

	if err := services.Eligibility.CanComment(EligibilityInput{
		AuthorID: authorID,
		ItemID:   itemID,
		Now:      now,
	}); err != nil {
		return nil, err
	}

	return &Comment{
		id:        uuid.New(),
		itemID:    itemID,
		authorID:  authorID,
		text:      text,
		createdAt: now,
	}, nil
}

func ReconstructComment(id, itemID, authorID uuid.UUID, text Text, createdAt time.Time) *Comment {
	return &Comment{
		id:        id,
		itemID:    itemID,
		authorID:  authorID,
		text:      text,
		createdAt: createdAt,
	}
}

func (c *Comment) ID() uuid.UUID        { return c.id }
func (c *Comment) ItemID() uuid.UUID    { return c.itemID }
func (c *Comment) AuthorID() uuid.UUID  { return c.authorID }
func (c *Comment) Text() Text           { return c.text }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
