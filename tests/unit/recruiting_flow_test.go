package unit

import (
	"context"
	"errors"
	"testing"

	"openings/internal/app/bootstrap"

	authorizationservice "openings/contexts/identity-access/authorization-service"
	authzhttp "openings/contexts/identity-access/authorization-service/transport/http"
	identityservice "openings/contexts/identity-access/identity-service"
	identityhttp "openings/contexts/identity-access/identity-service/transport/http"
	applicationservice "openings/contexts/recruiting/application-service"
	applicationhttp "openings/contexts/recruiting/application-service/transport/http"
	companyservice "openings/contexts/recruiting/company-service"
	companydomainerrors "openings/contexts/recruiting/company-service/domain/errors"
	companyhttp "openings/contexts/recruiting/company-service/transport/http"
	openingservice "openings/contexts/recruiting/opening-service"
	openinghttp "openings/contexts/recruiting/opening-service/transport/http"
)

// modules wires all five in-memory modules the same way the api process does.
type modules struct {
	identity      identityservice.Module
	authorization authorizationservice.Module
	company       companyservice.Module
	opening       openingservice.Module
	application   applicationservice.Module
}

func newModules() modules {
	identityModule := identityservice.NewInMemoryModule(nil)
	authorizationModule := authorizationservice.NewInMemoryModule(nil)
	companyModule := companyservice.NewInMemoryModule(
		bootstrap.AdjudicationChecker{Authorization: authorizationModule.Service}, nil)
	openingModule := openingservice.NewInMemoryModule(
		bootstrap.CompanyPermissionChecker{Company: companyModule.Service}, nil)
	applicationModule := applicationservice.NewInMemoryModule(
		bootstrap.OpeningDirectory{Opening: openingModule.Service},
		bootstrap.CompanyPermissionChecker{Company: companyModule.Service}, nil)
	return modules{
		identity:      identityModule,
		authorization: authorizationModule,
		company:       companyModule,
		opening:       openingModule,
		application:   applicationModule,
	}
}

func (m modules) register(t *testing.T, username string) int64 {
	t.Helper()
	user, err := m.identity.Handler.RegisterHandler(context.Background(), identityhttp.RegisterRequest{
		Username: username,
		Name:     username,
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("register %s failed: %v", username, err)
	}
	return user.ID
}

// The full hiring path: an admin approves a company, the company admin
// delegates opening management, an opening is posted and an applicant is
// hired off their stored resume.
func TestHiringFlow(t *testing.T) {
	m := newModules()
	ctx := context.Background()

	adminID := m.register(t, "root")
	founderID := m.register(t, "founder")
	recruiterID := m.register(t, "recruiter")
	applicantID := m.register(t, "applicant")

	// First admin grant bootstraps the registry.
	if err := m.authorization.Handler.GrantAdminHandler(ctx, adminID, authzhttp.AdminGrantRequest{UserID: adminID}); err != nil {
		t.Fatalf("admin bootstrap failed: %v", err)
	}
	if err := m.authorization.Handler.GrantUserPermissionHandler(ctx, adminID, authzhttp.UserPermissionRequest{
		UserID:     adminID,
		Permission: "accept_company_request",
	}); err != nil {
		t.Fatalf("permission grant failed: %v", err)
	}

	request, err := m.company.Handler.RequestCreateCompanyHandler(ctx, founderID, companyhttp.RequestCreateCompanyRequest{Name: "Initech"})
	if err != nil {
		t.Fatalf("company request failed: %v", err)
	}
	company, err := m.company.Handler.AcceptRequestHandler(ctx, adminID, request.ID)
	if err != nil {
		t.Fatalf("accept request failed: %v", err)
	}
	if company.AdminUserID != founderID {
		t.Fatalf("expected founder to administer the company, got %+v", company)
	}

	// The recruiter cannot post openings until the founder delegates.
	if _, err := m.opening.Handler.CreateOpeningHandler(ctx, recruiterID, openinghttp.CreateOpeningRequest{
		Title:     "Go developer",
		CompanyID: company.ID,
	}); err == nil {
		t.Fatalf("expected opening creation without permission to fail")
	}
	if err := m.company.Handler.GrantCompanyPermissionHandler(ctx, founderID, company.ID, companyhttp.CompanyPermissionRequest{
		UserID:     recruiterID,
		Permission: "work_with_openings",
	}); err != nil {
		t.Fatalf("company permission grant failed: %v", err)
	}
	opening, err := m.opening.Handler.CreateOpeningHandler(ctx, recruiterID, openinghttp.CreateOpeningRequest{
		Title:       "Go developer",
		Description: "backend role",
		CompanyID:   company.ID,
	})
	if err != nil {
		t.Fatalf("opening creation failed: %v", err)
	}

	resume, err := m.application.Handler.StoreResumeHandler(ctx, applicantID, applicationhttp.StoreResumeRequest{
		Filename: "cv.pdf",
		Blob:     []byte("%PDF-1.7"),
	})
	if err != nil {
		t.Fatalf("store resume failed: %v", err)
	}
	application, err := m.application.Handler.PostApplicationHandler(ctx, applicantID, applicationhttp.PostApplicationRequest{
		ResumeID:  resume.ID,
		OpeningID: opening.ID,
	})
	if err != nil {
		t.Fatalf("post application failed: %v", err)
	}

	// The recruiter created the opening, so they manage its applications.
	managed, err := m.application.Handler.ListApplicationsForMyOpeningsHandler(ctx, recruiterID, "")
	if err != nil || len(managed.Applications) != 1 {
		t.Fatalf("expected 1 managed application, got %d err=%v", len(managed.Applications), err)
	}
	if err := m.application.Handler.AcceptApplicationHandler(ctx, recruiterID, application.ID); err != nil {
		t.Fatalf("accept application failed: %v", err)
	}
	accepted, err := m.application.Handler.GetApplicationHandler(ctx, applicantID, application.ID)
	if err != nil {
		t.Fatalf("get application failed: %v", err)
	}
	if accepted.Status != "accepted" {
		t.Fatalf("expected accepted status, got %q", accepted.Status)
	}

	if err := m.opening.Handler.CloseOpeningHandler(ctx, recruiterID, opening.ID); err != nil {
		t.Fatalf("close opening failed: %v", err)
	}
}

// Adjudication rights come only from the explicit user permission; holding an
// admin grant alone is not enough.
func TestAdminGrantAloneCannotAdjudicate(t *testing.T) {
	m := newModules()
	ctx := context.Background()

	adminID := m.register(t, "root")
	founderID := m.register(t, "founder")

	if err := m.authorization.Handler.GrantAdminHandler(ctx, adminID, authzhttp.AdminGrantRequest{UserID: adminID}); err != nil {
		t.Fatalf("admin bootstrap failed: %v", err)
	}
	request, err := m.company.Handler.RequestCreateCompanyHandler(ctx, founderID, companyhttp.RequestCreateCompanyRequest{Name: "Initech"})
	if err != nil {
		t.Fatalf("company request failed: %v", err)
	}
	if _, err := m.company.Handler.AcceptRequestHandler(ctx, adminID, request.ID); !errors.Is(err, companydomainerrors.ErrNoPermissionToAdjudicate) {
		t.Fatalf("expected ErrNoPermissionToAdjudicate, got %v", err)
	}
}

// Revoking the opening permission cuts off both opening edits and managing
// applications through the shared permission check.
func TestRevokedPermissionStopsManagement(t *testing.T) {
	m := newModules()
	ctx := context.Background()

	adminID := m.register(t, "root")
	founderID := m.register(t, "founder")
	applicantID := m.register(t, "applicant")

	if err := m.authorization.Handler.GrantAdminHandler(ctx, adminID, authzhttp.AdminGrantRequest{UserID: adminID}); err != nil {
		t.Fatalf("admin bootstrap failed: %v", err)
	}
	if err := m.authorization.Handler.GrantUserPermissionHandler(ctx, adminID, authzhttp.UserPermissionRequest{
		UserID:     adminID,
		Permission: "accept_company_request",
	}); err != nil {
		t.Fatalf("permission grant failed: %v", err)
	}
	request, err := m.company.Handler.RequestCreateCompanyHandler(ctx, founderID, companyhttp.RequestCreateCompanyRequest{Name: "Initech"})
	if err != nil {
		t.Fatalf("company request failed: %v", err)
	}
	company, err := m.company.Handler.AcceptRequestHandler(ctx, adminID, request.ID)
	if err != nil {
		t.Fatalf("accept request failed: %v", err)
	}
	if err := m.company.Handler.GrantCompanyPermissionHandler(ctx, founderID, company.ID, companyhttp.CompanyPermissionRequest{
		UserID:     founderID,
		Permission: "work_with_openings",
	}); err != nil {
		t.Fatalf("self grant failed: %v", err)
	}
	opening, err := m.opening.Handler.CreateOpeningHandler(ctx, founderID, openinghttp.CreateOpeningRequest{
		Title:     "Go developer",
		CompanyID: company.ID,
	})
	if err != nil {
		t.Fatalf("opening creation failed: %v", err)
	}
	resume, err := m.application.Handler.StoreResumeHandler(ctx, applicantID, applicationhttp.StoreResumeRequest{Filename: "cv.pdf", Blob: []byte("x")})
	if err != nil {
		t.Fatalf("store resume failed: %v", err)
	}
	application, err := m.application.Handler.PostApplicationHandler(ctx, applicantID, applicationhttp.PostApplicationRequest{
		ResumeID:  resume.ID,
		OpeningID: opening.ID,
	})
	if err != nil {
		t.Fatalf("post application failed: %v", err)
	}

	if err := m.company.Handler.RevokeCompanyPermissionHandler(ctx, founderID, company.ID, companyhttp.CompanyPermissionRequest{
		UserID:     founderID,
		Permission: "work_with_openings",
	}); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if err := m.opening.Handler.UpdateOpeningHandler(ctx, founderID, opening.ID, openinghttp.UpdateOpeningRequest{Title: "x"}); err == nil {
		t.Fatalf("expected update without permission to fail")
	}
	if err := m.application.Handler.AcceptApplicationHandler(ctx, founderID, application.ID); err == nil {
		t.Fatalf("expected accept without permission to fail")
	}
	// The applicant is unaffected and may still withdraw.
	if err := m.application.Handler.CancelApplicationHandler(ctx, applicantID, application.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
}
