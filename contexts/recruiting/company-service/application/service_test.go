package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"openings/contexts/recruiting/company-service/adapters/memory"
	"openings/contexts/recruiting/company-service/domain/entities"
	domainerrors "openings/contexts/recruiting/company-service/domain/errors"
	"openings/contexts/recruiting/company-service/ports"
)

type allowAll struct{}

func (allowAll) CanAdjudicateCompanyRequests(ctx context.Context, userID int64) (bool, error) {
	return true, nil
}

type allowNone struct{}

func (allowNone) CanAdjudicateCompanyRequests(ctx context.Context, userID int64) (bool, error) {
	return false, nil
}

func newService() (Service, *memory.Store) {
	store := memory.NewStore()
	service := Service{
		Repo:         store,
		Adjudication: allowAll{},
		Clock:        fixedClock{now: time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)},
	}
	return service, store
}

func TestRequestCreateCompanyDuplicate(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	if _, err := service.RequestCreateCompany(ctx, "Acme", 1); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if _, err := service.RequestCreateCompany(ctx, "Acme", 1); !errors.Is(err, domainerrors.ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}
	// A different requester may ask for the same name.
	if _, err := service.RequestCreateCompany(ctx, "Acme", 2); err != nil {
		t.Fatalf("request by another user failed: %v", err)
	}
}

func TestCancelRequestOwnerOnly(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	request, err := service.RequestCreateCompany(ctx, "Acme", 1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if err := service.CancelRequest(ctx, request.ID, 2); !errors.Is(err, domainerrors.ErrNotRequestOwner) {
		t.Fatalf("expected ErrNotRequestOwner, got %v", err)
	}
	if err := service.CancelRequest(ctx, request.ID, 1); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if err := service.CancelRequest(ctx, request.ID, 1); !errors.Is(err, domainerrors.ErrRequestAlreadyCancelled) {
		t.Fatalf("expected ErrRequestAlreadyCancelled, got %v", err)
	}
}

func TestAcceptCreatesCompanyForRequester(t *testing.T) {
	service, store := newService()
	ctx := context.Background()

	request, err := service.RequestCreateCompany(ctx, "Acme", 1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	company, err := service.AcceptRequest(ctx, request.ID, 9)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if company.Name != "Acme" || company.AdminUserID != 1 {
		t.Fatalf("unexpected company %+v", company)
	}

	updated, err := service.GetRequest(ctx, request.ID)
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	if updated.Status != entities.RequestStatusAccepted || updated.StatusChangerID != 9 {
		t.Fatalf("unexpected request state %+v", updated)
	}

	// A second accept is a conflict and must not create another company.
	if _, err := service.AcceptRequest(ctx, request.ID, 9); !errors.Is(err, domainerrors.ErrRequestAlreadyAccepted) {
		t.Fatalf("expected ErrRequestAlreadyAccepted, got %v", err)
	}
	if store.CompanyCount() != 1 {
		t.Fatalf("expected 1 company, got %d", store.CompanyCount())
	}
}

func TestAcceptAfterDeny(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	request, err := service.RequestCreateCompany(ctx, "Acme", 1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if err := service.DenyRequest(ctx, request.ID, 9); err != nil {
		t.Fatalf("deny failed: %v", err)
	}
	if err := service.DenyRequest(ctx, request.ID, 9); !errors.Is(err, domainerrors.ErrRequestAlreadyDenied) {
		t.Fatalf("expected ErrRequestAlreadyDenied, got %v", err)
	}
	// Deny is reversible: the admin may still accept.
	if _, err := service.AcceptRequest(ctx, request.ID, 9); err != nil {
		t.Fatalf("accept after deny failed: %v", err)
	}
}

func TestAcceptCancelledRequestRejected(t *testing.T) {
	service, store := newService()
	ctx := context.Background()

	request, err := service.RequestCreateCompany(ctx, "Acme", 1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if err := service.CancelRequest(ctx, request.ID, 1); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, err := service.AcceptRequest(ctx, request.ID, 9); !errors.Is(err, domainerrors.ErrCannotAcceptCancelled) {
		t.Fatalf("expected ErrCannotAcceptCancelled, got %v", err)
	}
	if store.CompanyCount() != 0 {
		t.Fatalf("expected no company, got %d", store.CompanyCount())
	}
}

func TestAdjudicationGuard(t *testing.T) {
	service, _ := newService()
	service.Adjudication = allowNone{}
	ctx := context.Background()

	request, err := service.RequestCreateCompany(ctx, "Acme", 1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if _, err := service.AcceptRequest(ctx, request.ID, 9); !errors.Is(err, domainerrors.ErrNoPermissionToAdjudicate) {
		t.Fatalf("expected ErrNoPermissionToAdjudicate on accept, got %v", err)
	}
	if err := service.DenyRequest(ctx, request.ID, 9); !errors.Is(err, domainerrors.ErrNoPermissionToAdjudicate) {
		t.Fatalf("expected ErrNoPermissionToAdjudicate on deny, got %v", err)
	}
	if _, err := service.ListRequests(ctx, 9); !errors.Is(err, domainerrors.ErrNoPermissionToAdjudicate) {
		t.Fatalf("expected ErrNoPermissionToAdjudicate on list, got %v", err)
	}
}

func TestCompanyPermissionGrantGuard(t *testing.T) {
	service, store := newService()
	ctx := context.Background()

	request, err := service.RequestCreateCompany(ctx, "Acme", 1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	company, err := service.AcceptRequest(ctx, request.ID, 9)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	perm := entities.CompanyPermissionWorkWithOpenings
	if err := service.GrantCompanyPermission(ctx, 5, 7, company.ID, perm); !errors.Is(err, domainerrors.ErrNoRightToGrantCompanyPerm) {
		t.Fatalf("expected ErrNoRightToGrantCompanyPerm, got %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := service.GrantCompanyPermission(ctx, 1, 7, company.ID, perm); err != nil {
			t.Fatalf("grant %d failed: %v", i, err)
		}
	}
	if count := store.PermissionCount(7, company.ID, perm); count != 1 {
		t.Fatalf("expected a single permission row, got %d", count)
	}

	allowed, err := service.HasCompanyPermission(ctx, 7, company.ID, perm)
	if err != nil || !allowed {
		t.Fatalf("expected permission held, got %v err=%v", allowed, err)
	}
	if err := service.RevokeCompanyPermission(ctx, 1, 7, company.ID, perm); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	allowed, err = service.HasCompanyPermission(ctx, 7, company.ID, perm)
	if err != nil || allowed {
		t.Fatalf("expected permission removed, got %v err=%v", allowed, err)
	}
}

// cancelBeforeAccept flips the request to Cancelled after the service's
// status pre-check but before the conditional accept write, so the write
// matches no row.
type cancelBeforeAccept struct {
	*memory.Store
}

func (s cancelBeforeAccept) AcceptRequest(ctx context.Context, requestID int64, companyName string, requesterID int64, adminID int64, now time.Time) (ports.AcceptOutcome, error) {
	if _, err := s.Store.TransitionRequest(ctx, requestID,
		[]entities.RequestStatus{entities.RequestStatusPosted},
		entities.RequestStatusCancelled, requesterID, now); err != nil {
		return ports.AcceptOutcome{}, err
	}
	return s.Store.AcceptRequest(ctx, requestID, companyName, requesterID, adminID, now)
}

func TestAcceptRequestLosingRaceCreatesNoCompany(t *testing.T) {
	service, store := newService()
	service.Repo = cancelBeforeAccept{Store: store}
	ctx := context.Background()

	request, err := service.RequestCreateCompany(ctx, "Acme", 1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if _, err := service.AcceptRequest(ctx, request.ID, 9); !errors.Is(err, domainerrors.ErrCannotAcceptCancelled) {
		t.Fatalf("expected ErrCannotAcceptCancelled, got %v", err)
	}
	if store.CompanyCount() != 0 {
		t.Fatalf("expected no company after lost race, got %d", store.CompanyCount())
	}
	updated, err := service.GetRequest(ctx, request.ID)
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	if updated.Status != entities.RequestStatusCancelled {
		t.Fatalf("expected request to stay cancelled, got %+v", updated)
	}
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }
