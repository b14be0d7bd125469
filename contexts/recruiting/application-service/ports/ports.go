package ports

import (
	"context"
	"time"

	"openings/contexts/recruiting/application-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// CompanyPermissionChecker asks the company registry whether a user may work
// with a company's openings; that same permission gates managing the
// opening's applications.
type CompanyPermissionChecker interface {
	CanWorkWithOpenings(ctx context.Context, userID int64, companyID int64) (bool, error)
}

// Opening is the read-only snapshot this service needs from the opening
// registry.
type Opening struct {
	ID        int64
	CompanyID int64
	CreatorID int64
	Closed    bool
}

// OpeningDirectory resolves openings owned by the opening-service. GetOpening
// returns ok=false when no such opening exists.
type OpeningDirectory interface {
	GetOpening(ctx context.Context, id int64) (Opening, bool, error)
	ListOpeningsCreatedBy(ctx context.Context, userID int64) ([]Opening, error)
}

type InsertResumeInput struct {
	OwnerID    int64
	Filename   string
	Blob       []byte
	CreateDate time.Time
}

type InsertApplicationInput struct {
	ResumeID    int64
	OpeningID   int64
	ApplicantID int64
	CreateDate  time.Time
}

// Repository is the persistence boundary for resumes and applications.
//
// TransitionApplication is a conditional write: the status update applies
// only while the current status is in the from set, so of two racing
// adjudications exactly one observes a transition.
type Repository interface {
	InsertResume(ctx context.Context, in InsertResumeInput) (entities.Resume, error)
	GetResume(ctx context.Context, id int64) (entities.Resume, error)
	ListResumesByOwner(ctx context.Context, ownerID int64) ([]entities.Resume, error)

	InsertApplication(ctx context.Context, in InsertApplicationInput) (entities.Application, error)
	GetApplication(ctx context.Context, id int64) (entities.Application, error)
	TransitionApplication(ctx context.Context, id int64, from []entities.ApplicationStatus, to entities.ApplicationStatus, changerID int64, now time.Time) (bool, error)
	ListApplicationsByApplicant(ctx context.Context, applicantID int64, status *entities.ApplicationStatus) ([]entities.Application, error)
	ListApplicationsForOpenings(ctx context.Context, openingIDs []int64, status *entities.ApplicationStatus) ([]entities.Application, error)
}
