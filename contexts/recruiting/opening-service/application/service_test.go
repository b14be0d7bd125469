package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"openings/contexts/recruiting/opening-service/adapters/memory"
	"openings/contexts/recruiting/opening-service/domain/entities"
	domainerrors "openings/contexts/recruiting/opening-service/domain/errors"
	"openings/contexts/recruiting/opening-service/ports"
)

// permissionTable answers CanWorkWithOpenings from a fixed user set.
type permissionTable map[int64]bool

func (p permissionTable) CanWorkWithOpenings(ctx context.Context, userID, companyID int64) (bool, error) {
	return p[userID], nil
}

func newService(perms permissionTable) (Service, *memory.Store) {
	store := memory.NewStore()
	service := Service{
		Repo:                   store,
		Company:                perms,
		Clock:                  fixedClock{now: time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)},
		AllowEditClosedOpening: true,
	}
	return service, store
}

func TestCreateOpeningGuards(t *testing.T) {
	service, _ := newService(permissionTable{1: true})
	ctx := context.Background()

	if _, err := service.CreateOpening(ctx, "  ", "desc", 10, 1); !errors.Is(err, domainerrors.ErrTitleEmpty) {
		t.Fatalf("expected ErrTitleEmpty, got %v", err)
	}
	if _, err := service.CreateOpening(ctx, "Go developer", "desc", 10, 2); !errors.Is(err, domainerrors.ErrNoRightToWorkWithOpenings) {
		t.Fatalf("expected ErrNoRightToWorkWithOpenings, got %v", err)
	}
	opening, err := service.CreateOpening(ctx, "Go developer", "desc", 10, 1)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if opening.Status != entities.OpeningStatusPosted || opening.CreatorID != 1 {
		t.Fatalf("unexpected opening %+v", opening)
	}
}

func TestUpdateOpening(t *testing.T) {
	service, _ := newService(permissionTable{1: true})
	ctx := context.Background()

	opening, err := service.CreateOpening(ctx, "Go developer", "desc", 10, 1)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := service.UpdateOpening(ctx, opening.ID, "Senior Go developer", "more", 2); !errors.Is(err, domainerrors.ErrNoRightToWorkWithOpenings) {
		t.Fatalf("expected ErrNoRightToWorkWithOpenings, got %v", err)
	}
	if err := service.UpdateOpening(ctx, opening.ID, "Senior Go developer", "more", 1); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, err := service.GetOpening(ctx, opening.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "Senior Go developer" {
		t.Fatalf("unexpected title %q", got.Title)
	}
	if err := service.UpdateOpening(ctx, 999, "x", "y", 1); !errors.Is(err, domainerrors.ErrOpeningNotFound) {
		t.Fatalf("expected ErrOpeningNotFound, got %v", err)
	}
}

func TestCloseOpeningIdempotent(t *testing.T) {
	service, _ := newService(permissionTable{1: true})
	ctx := context.Background()

	opening, err := service.CreateOpening(ctx, "Go developer", "desc", 10, 1)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := service.CloseOpening(ctx, opening.ID, 1); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	// Closing again is a no-op, not a conflict.
	if err := service.CloseOpening(ctx, opening.ID, 1); err != nil {
		t.Fatalf("second close failed: %v", err)
	}
	got, err := service.GetOpening(ctx, opening.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != entities.OpeningStatusClosed || got.StatusChangerID != 1 {
		t.Fatalf("unexpected state %+v", got)
	}
	if err := service.CloseOpening(ctx, 999, 1); !errors.Is(err, domainerrors.ErrOpeningNotFound) {
		t.Fatalf("expected ErrOpeningNotFound, got %v", err)
	}
}

func TestEditClosedOpeningPolicy(t *testing.T) {
	service, _ := newService(permissionTable{1: true})
	ctx := context.Background()

	opening, err := service.CreateOpening(ctx, "Go developer", "desc", 10, 1)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := service.CloseOpening(ctx, opening.ID, 1); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := service.UpdateOpening(ctx, opening.ID, "Archived posting", "kept for the record", 1); err != nil {
		t.Fatalf("edit with policy enabled failed: %v", err)
	}

	service.AllowEditClosedOpening = false
	if err := service.UpdateOpening(ctx, opening.ID, "no", "no", 1); !errors.Is(err, domainerrors.ErrOpeningClosed) {
		t.Fatalf("expected ErrOpeningClosed, got %v", err)
	}
}

func TestListOpeningsFilters(t *testing.T) {
	service, _ := newService(permissionTable{1: true, 2: true})
	ctx := context.Background()

	first, err := service.CreateOpening(ctx, "Backend", "go", 10, 1)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.CreateOpening(ctx, "Frontend", "js", 10, 2); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.CreateOpening(ctx, "Designer", "figma", 20, 1); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := service.CloseOpening(ctx, first.ID, 1); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	companyID := int64(10)
	creatorID := int64(1)
	closed := entities.OpeningStatusClosed

	all, err := service.ListOpenings(ctx, ports.ListFilter{})
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 openings, got %d err=%v", len(all), err)
	}
	byCompany, err := service.ListOpenings(ctx, ports.ListFilter{CompanyID: &companyID})
	if err != nil || len(byCompany) != 2 {
		t.Fatalf("expected 2 openings for company, got %d err=%v", len(byCompany), err)
	}
	// Filters combine: closed openings of company 10 created by user 1.
	narrow, err := service.ListOpenings(ctx, ports.ListFilter{Status: &closed, CompanyID: &companyID, CreatorID: &creatorID})
	if err != nil || len(narrow) != 1 || narrow[0].ID != first.ID {
		t.Fatalf("unexpected filter result %+v err=%v", narrow, err)
	}
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }
