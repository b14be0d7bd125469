package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"openings/contexts/recruiting/company-service/domain/entities"
	domainerrors "openings/contexts/recruiting/company-service/domain/errors"
	"openings/contexts/recruiting/company-service/ports"
)

// Service implements the company registry, the company permission registry,
// and the company-creation workflow.
//
// Every transition re-reads current state before writing, and the write
// itself is conditional on the expected source status. When the conditional
// write changes no row the current status is re-read and the status-specific
// transition error is returned, so a caller that lost a race sees the same
// error it would have seen arriving second.
type Service struct {
	Repo         ports.Repository
	Adjudication ports.RequestAdjudicationChecker
	Clock        ports.Clock
	Logger       *slog.Logger
}

func (s Service) RequestCreateCompany(ctx context.Context, name string, requesterID int64) (entities.CompanyCreationRequest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.CompanyCreationRequest{}, domainerrors.ErrCompanyNameEmpty
	}

	exists, err := s.Repo.HasPostedRequest(ctx, requesterID, name)
	if err != nil {
		return entities.CompanyCreationRequest{}, err
	}
	if exists {
		return entities.CompanyCreationRequest{}, domainerrors.ErrDuplicateRequest
	}

	request, err := s.Repo.InsertRequest(ctx, name, requesterID, s.now())
	if err != nil {
		return entities.CompanyCreationRequest{}, err
	}
	s.logger().Info("company creation requested",
		"event", "company_request_posted",
		"module", "recruiting/company-service",
		"layer", "application",
		"request_id", request.ID,
		"requester_id", requesterID,
	)
	return request, nil
}

func (s Service) CancelRequest(ctx context.Context, id int64, requesterID int64) error {
	request, err := s.Repo.GetRequest(ctx, id)
	if err != nil {
		return err
	}
	if request.RequesterID != requesterID {
		return domainerrors.ErrNotRequestOwner
	}
	if err := cancelTransitionError(request.Status); err != nil {
		return err
	}

	ok, err := s.Repo.TransitionRequest(ctx, id,
		[]entities.RequestStatus{entities.RequestStatusPosted},
		entities.RequestStatusCancelled, requesterID, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return s.requestRaceError(ctx, id, cancelTransitionError)
	}
	s.logger().Info("company creation request cancelled",
		"event", "company_request_cancelled",
		"module", "recruiting/company-service",
		"layer", "application",
		"request_id", id,
	)
	return nil
}

// AcceptRequest creates the company and closes the request in one
// transaction. If the conditional status update loses a race the company
// insert rolls back with it: a request is never Accepted without its
// company, and no company exists for a request that did not transition.
func (s Service) AcceptRequest(ctx context.Context, id int64, adminID int64) (entities.Company, error) {
	if err := s.requireAdjudicator(ctx, adminID); err != nil {
		return entities.Company{}, err
	}
	request, err := s.Repo.GetRequest(ctx, id)
	if err != nil {
		return entities.Company{}, err
	}
	if err := acceptTransitionError(request.Status); err != nil {
		return entities.Company{}, err
	}

	outcome, err := s.Repo.AcceptRequest(ctx, id, request.CompanyName, request.RequesterID, adminID, s.now())
	if err != nil {
		return entities.Company{}, err
	}
	if !outcome.Transitioned {
		return entities.Company{}, s.requestRaceError(ctx, id, acceptTransitionError)
	}
	s.logger().Info("company creation request accepted",
		"event", "company_request_accepted",
		"module", "recruiting/company-service",
		"layer", "application",
		"request_id", id,
		"company_id", outcome.Company.ID,
		"admin_id", adminID,
	)
	return outcome.Company, nil
}

func (s Service) DenyRequest(ctx context.Context, id int64, adminID int64) error {
	if err := s.requireAdjudicator(ctx, adminID); err != nil {
		return err
	}
	request, err := s.Repo.GetRequest(ctx, id)
	if err != nil {
		return err
	}
	if err := denyTransitionError(request.Status); err != nil {
		return err
	}

	ok, err := s.Repo.TransitionRequest(ctx, id,
		[]entities.RequestStatus{entities.RequestStatusPosted},
		entities.RequestStatusDenied, adminID, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return s.requestRaceError(ctx, id, denyTransitionError)
	}
	s.logger().Info("company creation request denied",
		"event", "company_request_denied",
		"module", "recruiting/company-service",
		"layer", "application",
		"request_id", id,
		"admin_id", adminID,
	)
	return nil
}

func (s Service) GetRequest(ctx context.Context, id int64) (entities.CompanyCreationRequest, error) {
	return s.Repo.GetRequest(ctx, id)
}

// ListRequests is an adjudication surface, gated the same way as Accept/Deny.
func (s Service) ListRequests(ctx context.Context, adminID int64) ([]entities.CompanyCreationRequest, error) {
	if err := s.requireAdjudicator(ctx, adminID); err != nil {
		return nil, err
	}
	return s.Repo.ListRequests(ctx)
}

func (s Service) ListRequestsByUser(ctx context.Context, requesterID int64) ([]entities.CompanyCreationRequest, error) {
	return s.Repo.ListRequestsByUser(ctx, requesterID)
}

func (s Service) GetCompany(ctx context.Context, id int64) (entities.Company, error) {
	return s.Repo.GetCompany(ctx, id)
}

func (s Service) GetCompanyByName(ctx context.Context, name string) (entities.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.Company{}, domainerrors.ErrCompanyNameEmpty
	}
	return s.Repo.GetCompanyByName(ctx, name)
}

func (s Service) ListCompanies(ctx context.Context) ([]entities.Company, error) {
	return s.Repo.ListCompanies(ctx)
}

func (s Service) ListCompaniesAdministeredBy(ctx context.Context, userID int64) ([]entities.Company, error) {
	return s.Repo.ListCompaniesAdministeredBy(ctx, userID)
}

func (s Service) HasCompanyPermission(ctx context.Context, userID int64, companyID int64, permission entities.CompanyPermission) (bool, error) {
	if !permission.Valid() {
		return false, domainerrors.ErrInvalidPermission
	}
	return s.Repo.HasCompanyPermission(ctx, userID, companyID, permission)
}

func (s Service) GrantCompanyPermission(ctx context.Context, granterID int64, userID int64, companyID int64, permission entities.CompanyPermission) error {
	if !permission.Valid() {
		return domainerrors.ErrInvalidPermission
	}
	company, err := s.Repo.GetCompany(ctx, companyID)
	if err != nil {
		return err
	}
	if company.AdminUserID != granterID {
		return domainerrors.ErrNoRightToGrantCompanyPerm
	}
	if err := s.Repo.InsertCompanyPermission(ctx, userID, companyID, permission); err != nil {
		return err
	}
	s.logger().Info("company permission granted",
		"event", "company_permission_granted",
		"module", "recruiting/company-service",
		"layer", "application",
		"granter_id", granterID,
		"user_id", userID,
		"company_id", companyID,
		"permission", string(permission),
	)
	return nil
}

func (s Service) RevokeCompanyPermission(ctx context.Context, revokerID int64, userID int64, companyID int64, permission entities.CompanyPermission) error {
	if !permission.Valid() {
		return domainerrors.ErrInvalidPermission
	}
	company, err := s.Repo.GetCompany(ctx, companyID)
	if err != nil {
		return err
	}
	if company.AdminUserID != revokerID {
		return domainerrors.ErrNoRightToRevokeCompanyPerm
	}
	return s.Repo.DeleteCompanyPermission(ctx, userID, companyID, permission)
}

func (s Service) ListCompanyPermissions(ctx context.Context, userID int64, companyID int64) ([]entities.CompanyPermission, error) {
	return s.Repo.ListCompanyPermissions(ctx, userID, companyID)
}

func (s Service) ListCompaniesWithPermission(ctx context.Context, userID int64, permission entities.CompanyPermission) ([]entities.Company, error) {
	if !permission.Valid() {
		return nil, domainerrors.ErrInvalidPermission
	}
	return s.Repo.ListCompaniesWithPermission(ctx, userID, permission)
}

func (s Service) requireAdjudicator(ctx context.Context, userID int64) error {
	allowed, err := s.Adjudication.CanAdjudicateCompanyRequests(ctx, userID)
	if err != nil {
		return err
	}
	if !allowed {
		return domainerrors.ErrNoPermissionToAdjudicate
	}
	return nil
}

// requestRaceError re-reads the request after a conditional write changed no
// row and reports the transition error the current status implies.
func (s Service) requestRaceError(ctx context.Context, id int64, classify func(entities.RequestStatus) error) error {
	request, err := s.Repo.GetRequest(ctx, id)
	if err != nil {
		return err
	}
	if err := classify(request.Status); err != nil {
		return err
	}
	return domainerrors.ErrRequestNotFound
}

func cancelTransitionError(status entities.RequestStatus) error {
	switch status {
	case entities.RequestStatusCancelled:
		return domainerrors.ErrRequestAlreadyCancelled
	case entities.RequestStatusDenied, entities.RequestStatusAccepted:
		return domainerrors.ErrRequestAlreadyProceeded
	}
	return nil
}

func acceptTransitionError(status entities.RequestStatus) error {
	switch status {
	case entities.RequestStatusAccepted:
		return domainerrors.ErrRequestAlreadyAccepted
	case entities.RequestStatusCancelled:
		return domainerrors.ErrCannotAcceptCancelled
	}
	return nil
}

func denyTransitionError(status entities.RequestStatus) error {
	switch status {
	case entities.RequestStatusAccepted:
		return domainerrors.ErrCannotDenyAccepted
	case entities.RequestStatusDenied:
		return domainerrors.ErrRequestAlreadyDenied
	case entities.RequestStatusCancelled:
		return domainerrors.ErrCannotDenyCancelled
	}
	return nil
}

func (s Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
