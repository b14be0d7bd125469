package bootstrap

import (
	"context"
	"errors"

	authzapp "openings/contexts/identity-access/authorization-service/application"
	authzentities "openings/contexts/identity-access/authorization-service/domain/entities"
	applicationports "openings/contexts/recruiting/application-service/ports"
	companyapp "openings/contexts/recruiting/company-service/application"
	companyentities "openings/contexts/recruiting/company-service/domain/entities"
	openingapp "openings/contexts/recruiting/opening-service/application"
	openingentities "openings/contexts/recruiting/opening-service/domain/entities"
	openingerrors "openings/contexts/recruiting/opening-service/domain/errors"
	openingports "openings/contexts/recruiting/opening-service/ports"
)

// Cross-context glue. Each wrapper narrows a whole service down to the
// single question its consumer asks, so the consuming context never learns
// the producer's permission namespace.

// AdjudicationChecker answers whether a user may adjudicate company-creation
// requests: they must hold the accept_company_request user permission.
type AdjudicationChecker struct {
	Authorization authzapp.Service
}

func (c AdjudicationChecker) CanAdjudicateCompanyRequests(ctx context.Context, userID int64) (bool, error) {
	return c.Authorization.HasUserPermission(ctx, userID, authzentities.UserPermissionAcceptCompanyRequest)
}

// CompanyPermissionChecker answers whether a user holds work_with_openings
// on a company.
type CompanyPermissionChecker struct {
	Company companyapp.Service
}

func (c CompanyPermissionChecker) CanWorkWithOpenings(ctx context.Context, userID int64, companyID int64) (bool, error) {
	return c.Company.HasCompanyPermission(ctx, userID, companyID, companyentities.CompanyPermissionWorkWithOpenings)
}

// OpeningDirectory resolves opening snapshots for the application workflow.
type OpeningDirectory struct {
	Opening openingapp.Service
}

func (d OpeningDirectory) GetOpening(ctx context.Context, id int64) (applicationports.Opening, bool, error) {
	opening, err := d.Opening.GetOpening(ctx, id)
	if err != nil {
		if errors.Is(err, openingerrors.ErrOpeningNotFound) {
			return applicationports.Opening{}, false, nil
		}
		return applicationports.Opening{}, false, err
	}
	return toOpeningSnapshot(opening), true, nil
}

func (d OpeningDirectory) ListOpeningsCreatedBy(ctx context.Context, userID int64) ([]applicationports.Opening, error) {
	openings, err := d.Opening.ListOpenings(ctx, openingports.ListFilter{CreatorID: &userID})
	if err != nil {
		return nil, err
	}
	items := make([]applicationports.Opening, 0, len(openings))
	for _, opening := range openings {
		items = append(items, toOpeningSnapshot(opening))
	}
	return items, nil
}

func toOpeningSnapshot(opening openingentities.JobOpening) applicationports.Opening {
	return applicationports.Opening{
		ID:        opening.ID,
		CompanyID: opening.CompanyID,
		CreatorID: opening.CreatorID,
		Closed:    opening.Status == openingentities.OpeningStatusClosed,
	}
}
