package ports

import (
	"context"
	"time"

	"openings/contexts/recruiting/opening-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// CompanyPermissionChecker asks the company registry whether a user may work
// with a company's openings. Purpose-named so this service never touches the
// company-permission kind namespace.
type CompanyPermissionChecker interface {
	CanWorkWithOpenings(ctx context.Context, userID int64, companyID int64) (bool, error)
}

type InsertOpeningInput struct {
	Title       string
	Description string
	CompanyID   int64
	CreatorID   int64
	CreateDate  time.Time
}

type UpdateOpeningInput struct {
	Title       string
	Description string
}

// ListFilter narrows ListOpenings; nil fields mean "any". Filters combine
// conjunctively.
type ListFilter struct {
	Status    *entities.OpeningStatus
	CompanyID *int64
	CreatorID *int64
}

// Repository is the persistence boundary for job openings.
//
// CloseOpening is a conditional write: the status update applies only while
// the opening is still posted, so of two racing closes exactly one observes
// a transition.
type Repository interface {
	InsertOpening(ctx context.Context, in InsertOpeningInput) (entities.JobOpening, error)
	GetOpening(ctx context.Context, id int64) (entities.JobOpening, error)
	UpdateOpening(ctx context.Context, id int64, in UpdateOpeningInput) error
	CloseOpening(ctx context.Context, id int64, changerID int64, now time.Time) (bool, error)
	ListOpenings(ctx context.Context, filter ListFilter) ([]entities.JobOpening, error)
}
