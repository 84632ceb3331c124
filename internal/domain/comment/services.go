package comment

import (
	"time"

	"lendkit/internal/pkg/clock"

	"github.com/google/uuid"
)

type Services struct {
	Clock       clock.Clock
	Eligibility EligibilityChecker
}

type EligibilityInput struct {
	AuthorID uuid.UUID
	ItemID   uuid.UUID
	Now      time.Time
}

// EligibilityChecker decides whether the author may comment on the item.
// The rule is deliberately lenient: any booking whose window has elapsed
// qualifies, regardless of status.
type EligibilityChecker interface {
	CanComment(input EligibilityInput) error
}
