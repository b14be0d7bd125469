package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"openings/contexts/recruiting/application-service/adapters/memory"
	"openings/contexts/recruiting/application-service/domain/entities"
	domainerrors "openings/contexts/recruiting/application-service/domain/errors"
	"openings/contexts/recruiting/application-service/ports"
)

// openingTable is a fixed opening directory keyed by opening id.
type openingTable map[int64]ports.Opening

func (o openingTable) GetOpening(ctx context.Context, id int64) (ports.Opening, bool, error) {
	opening, ok := o[id]
	return opening, ok, nil
}

func (o openingTable) ListOpeningsCreatedBy(ctx context.Context, userID int64) ([]ports.Opening, error) {
	var openings []ports.Opening
	for _, opening := range o {
		if opening.CreatorID == userID {
			openings = append(openings, opening)
		}
	}
	return openings, nil
}

type permissionTable map[int64]bool

func (p permissionTable) CanWorkWithOpenings(ctx context.Context, userID, companyID int64) (bool, error) {
	return p[userID], nil
}

// Fixture: opening 100 of company 10, created by manager 9; opening 200 is
// already closed.
func newService() (Service, *memory.Store) {
	store := memory.NewStore()
	service := Service{
		Repo: store,
		Openings: openingTable{
			100: {ID: 100, CompanyID: 10, CreatorID: 9},
			200: {ID: 200, CompanyID: 10, CreatorID: 9, Closed: true},
		},
		Company:                   permissionTable{9: true},
		Clock:                     fixedClock{now: time.Date(2026, time.March, 4, 15, 0, 0, 0, time.UTC)},
		AllowApplyToClosedOpening: true,
	}
	return service, store
}

func storeResume(t *testing.T, service Service, ownerID int64) entities.Resume {
	t.Helper()
	resume, err := service.StoreResume(context.Background(), ownerID, "resume.pdf", []byte("%PDF-1.7"))
	if err != nil {
		t.Fatalf("store resume failed: %v", err)
	}
	return resume
}

func postApplication(t *testing.T, service Service, applicantID int64) entities.Application {
	t.Helper()
	resume := storeResume(t, service, applicantID)
	application, err := service.PostApplication(context.Background(), resume.ID, 100, applicantID)
	if err != nil {
		t.Fatalf("post application failed: %v", err)
	}
	return application
}

func TestResumeOwnership(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	if _, err := service.StoreResume(ctx, 1, "  ", nil); !errors.Is(err, domainerrors.ErrResumeFilenameEmpty) {
		t.Fatalf("expected ErrResumeFilenameEmpty, got %v", err)
	}
	resume := storeResume(t, service, 1)
	if _, err := service.GetResume(ctx, resume.ID, 2); !errors.Is(err, domainerrors.ErrNotResumeOwner) {
		t.Fatalf("expected ErrNotResumeOwner, got %v", err)
	}
	got, err := service.GetResume(ctx, resume.ID, 1)
	if err != nil {
		t.Fatalf("get resume failed: %v", err)
	}
	if got.Filename != "resume.pdf" || string(got.Blob) != "%PDF-1.7" {
		t.Fatalf("unexpected resume %+v", got)
	}
	// Applying with someone else's resume is forbidden too.
	if _, err := service.PostApplication(ctx, resume.ID, 100, 2); !errors.Is(err, domainerrors.ErrNotResumeOwner) {
		t.Fatalf("expected ErrNotResumeOwner on post, got %v", err)
	}
}

func TestPostApplicationOpeningChecks(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()
	resume := storeResume(t, service, 1)

	if _, err := service.PostApplication(ctx, resume.ID, 999, 1); !errors.Is(err, domainerrors.ErrOpeningNotFound) {
		t.Fatalf("expected ErrOpeningNotFound, got %v", err)
	}
	// Default policy admits applications to closed openings.
	if _, err := service.PostApplication(ctx, resume.ID, 200, 1); err != nil {
		t.Fatalf("post to closed opening failed: %v", err)
	}
	service.AllowApplyToClosedOpening = false
	if _, err := service.PostApplication(ctx, resume.ID, 200, 1); !errors.Is(err, domainerrors.ErrOpeningClosed) {
		t.Fatalf("expected ErrOpeningClosed, got %v", err)
	}
}

func TestCancelApplication(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()
	application := postApplication(t, service, 1)

	if err := service.CancelApplication(ctx, application.ID, 2); !errors.Is(err, domainerrors.ErrNotApplicationOwner) {
		t.Fatalf("expected ErrNotApplicationOwner, got %v", err)
	}
	if err := service.CancelApplication(ctx, application.ID, 1); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if err := service.CancelApplication(ctx, application.ID, 1); !errors.Is(err, domainerrors.ErrAlreadyCancelled) {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}

	accepted := postApplication(t, service, 1)
	if err := service.AcceptApplication(ctx, accepted.ID, 9); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if err := service.CancelApplication(ctx, accepted.ID, 1); !errors.Is(err, domainerrors.ErrAlreadyProceeded) {
		t.Fatalf("expected ErrAlreadyProceeded, got %v", err)
	}
}

func TestAcceptApplication(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()
	application := postApplication(t, service, 1)

	if err := service.AcceptApplication(ctx, application.ID, 2); !errors.Is(err, domainerrors.ErrCannotManageApplication) {
		t.Fatalf("expected ErrCannotManageApplication, got %v", err)
	}
	if err := service.AcceptApplication(ctx, application.ID, 9); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if err := service.AcceptApplication(ctx, application.ID, 9); !errors.Is(err, domainerrors.ErrAlreadyAccepted) {
		t.Fatalf("expected ErrAlreadyAccepted, got %v", err)
	}

	// Accept reverses an earlier deny.
	denied := postApplication(t, service, 1)
	if err := service.DenyApplication(ctx, denied.ID, 9); err != nil {
		t.Fatalf("deny failed: %v", err)
	}
	if err := service.AcceptApplication(ctx, denied.ID, 9); err != nil {
		t.Fatalf("accept after deny failed: %v", err)
	}

	cancelled := postApplication(t, service, 1)
	if err := service.CancelApplication(ctx, cancelled.ID, 1); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if err := service.AcceptApplication(ctx, cancelled.ID, 9); !errors.Is(err, domainerrors.ErrCannotAcceptCancelled) {
		t.Fatalf("expected ErrCannotAcceptCancelled, got %v", err)
	}
}

func TestDenyApplication(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()
	application := postApplication(t, service, 1)

	if err := service.DenyApplication(ctx, application.ID, 9); err != nil {
		t.Fatalf("deny failed: %v", err)
	}
	if err := service.DenyApplication(ctx, application.ID, 9); !errors.Is(err, domainerrors.ErrAlreadyDenied) {
		t.Fatalf("expected ErrAlreadyDenied, got %v", err)
	}

	accepted := postApplication(t, service, 1)
	if err := service.AcceptApplication(ctx, accepted.ID, 9); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if err := service.DenyApplication(ctx, accepted.ID, 9); !errors.Is(err, domainerrors.ErrCannotDenyAccepted) {
		t.Fatalf("expected ErrCannotDenyAccepted, got %v", err)
	}
}

func TestGetApplicationVisibility(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()
	application := postApplication(t, service, 1)

	if _, err := service.GetApplication(ctx, application.ID, 1); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := service.GetApplication(ctx, application.ID, 9); err != nil {
		t.Fatalf("manager read failed: %v", err)
	}
	if _, err := service.GetApplication(ctx, application.ID, 2); !errors.Is(err, domainerrors.ErrCannotViewApplication) {
		t.Fatalf("expected ErrCannotViewApplication, got %v", err)
	}
}

func TestListApplications(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	first := postApplication(t, service, 1)
	postApplication(t, service, 1)
	postApplication(t, service, 2)
	if err := service.DenyApplication(ctx, first.ID, 9); err != nil {
		t.Fatalf("deny failed: %v", err)
	}

	mine, err := service.ListMyApplications(ctx, 1, nil)
	if err != nil || len(mine) != 2 {
		t.Fatalf("expected 2 applications, got %d err=%v", len(mine), err)
	}
	denied := entities.ApplicationStatusDenied
	deniedMine, err := service.ListMyApplications(ctx, 1, &denied)
	if err != nil || len(deniedMine) != 1 || deniedMine[0].ID != first.ID {
		t.Fatalf("unexpected status filter result %+v err=%v", deniedMine, err)
	}

	managed, err := service.ListApplicationsForMyOpenings(ctx, 9, nil)
	if err != nil || len(managed) != 3 {
		t.Fatalf("expected 3 managed applications, got %d err=%v", len(managed), err)
	}
	// A user with no openings sees an empty list, not an error.
	none, err := service.ListApplicationsForMyOpenings(ctx, 1, nil)
	if err != nil || len(none) != 0 {
		t.Fatalf("expected no managed applications, got %d err=%v", len(none), err)
	}
}

// cancelBeforeTransition withdraws the application after the manager's
// status pre-check but before the conditional write, so the write matches
// no row.
type cancelBeforeTransition struct {
	*memory.Store
}

func (s cancelBeforeTransition) TransitionApplication(ctx context.Context, id int64, from []entities.ApplicationStatus, to entities.ApplicationStatus, changerID int64, now time.Time) (bool, error) {
	if to != entities.ApplicationStatusCancelled {
		if _, err := s.Store.TransitionApplication(ctx, id,
			[]entities.ApplicationStatus{entities.ApplicationStatusPosted},
			entities.ApplicationStatusCancelled, 1, now); err != nil {
			return false, err
		}
	}
	return s.Store.TransitionApplication(ctx, id, from, to, changerID, now)
}

func TestAcceptApplicationLosingRace(t *testing.T) {
	service, store := newService()
	service.Repo = cancelBeforeTransition{Store: store}
	ctx := context.Background()
	application := postApplication(t, service, 1)

	if err := service.AcceptApplication(ctx, application.ID, 9); !errors.Is(err, domainerrors.ErrCannotAcceptCancelled) {
		t.Fatalf("expected ErrCannotAcceptCancelled, got %v", err)
	}
	got, err := store.GetApplication(ctx, application.ID)
	if err != nil {
		t.Fatalf("get application failed: %v", err)
	}
	if got.Status != entities.ApplicationStatusCancelled {
		t.Fatalf("expected application to stay cancelled, got %+v", got)
	}
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }
