package ports

import (
	"context"
	"time"

	"openings/contexts/recruiting/company-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// RequestAdjudicationChecker asks the user-level permission registry whether
// a user may adjudicate company-creation requests. Purpose-named so this
// service never touches the user-permission kind namespace.
type RequestAdjudicationChecker interface {
	CanAdjudicateCompanyRequests(ctx context.Context, userID int64) (bool, error)
}

// AcceptOutcome is returned by the atomic accept write.
type AcceptOutcome struct {
	Company entities.Company
	// Transitioned is false when the conditional status update matched no
	// row; in that case the company insert has been rolled back as well.
	Transitioned bool
}

// Repository is the persistence boundary for companies, creation requests,
// and company-scoped permission rows.
//
// TransitionRequest and AcceptRequest are conditional writes: the status
// update applies only while the current status is in the from set, so of two
// racing adjudications exactly one observes a transition.
type Repository interface {
	InsertRequest(ctx context.Context, companyName string, requesterID int64, now time.Time) (entities.CompanyCreationRequest, error)
	GetRequest(ctx context.Context, id int64) (entities.CompanyCreationRequest, error)
	HasPostedRequest(ctx context.Context, requesterID int64, companyName string) (bool, error)
	ListRequests(ctx context.Context) ([]entities.CompanyCreationRequest, error)
	ListRequestsByUser(ctx context.Context, requesterID int64) ([]entities.CompanyCreationRequest, error)
	TransitionRequest(ctx context.Context, id int64, from []entities.RequestStatus, to entities.RequestStatus, changerID int64, now time.Time) (bool, error)
	AcceptRequest(ctx context.Context, requestID int64, companyName string, requesterID int64, adminID int64, now time.Time) (AcceptOutcome, error)

	GetCompany(ctx context.Context, id int64) (entities.Company, error)
	GetCompanyByName(ctx context.Context, name string) (entities.Company, error)
	ListCompanies(ctx context.Context) ([]entities.Company, error)
	ListCompaniesAdministeredBy(ctx context.Context, userID int64) ([]entities.Company, error)

	HasCompanyPermission(ctx context.Context, userID int64, companyID int64, permission entities.CompanyPermission) (bool, error)
	InsertCompanyPermission(ctx context.Context, userID int64, companyID int64, permission entities.CompanyPermission) error
	DeleteCompanyPermission(ctx context.Context, userID int64, companyID int64, permission entities.CompanyPermission) error
	ListCompanyPermissions(ctx context.Context, userID int64, companyID int64) ([]entities.CompanyPermission, error)
	ListCompaniesWithPermission(ctx context.Context, userID int64, permission entities.CompanyPermission) ([]entities.Company, error)
}
