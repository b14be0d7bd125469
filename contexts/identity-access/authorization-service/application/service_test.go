package application

import (
	"context"
	"errors"
	"testing"

	"openings/contexts/identity-access/authorization-service/adapters/memory"
	"openings/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "openings/contexts/identity-access/authorization-service/domain/errors"
)

func TestFirstAdminBootstrapsSelf(t *testing.T) {
	service := Service{Repo: memory.NewStore()}
	ctx := context.Background()

	// Empty registry: only a self-grant is allowed.
	if err := service.GrantAdminGrant(ctx, 1, 2); !errors.Is(err, domainerrors.ErrNoRightToGrantAdmin) {
		t.Fatalf("expected ErrNoRightToGrantAdmin for non-self bootstrap, got %v", err)
	}
	if err := service.GrantAdminGrant(ctx, 1, 1); err != nil {
		t.Fatalf("self bootstrap failed: %v", err)
	}

	// Registry no longer empty: a non-admin cannot self-grant anymore.
	if err := service.GrantAdminGrant(ctx, 2, 2); !errors.Is(err, domainerrors.ErrNoRightToGrantAdmin) {
		t.Fatalf("expected ErrNoRightToGrantAdmin after bootstrap, got %v", err)
	}
	if err := service.GrantAdminGrant(ctx, 1, 2); err != nil {
		t.Fatalf("admin grant by admin failed: %v", err)
	}

	isAdmin, err := service.HasAdminGrant(ctx, 2)
	if err != nil || !isAdmin {
		t.Fatalf("expected user 2 to be admin, got %v err=%v", isAdmin, err)
	}
}

func TestRevokeAdminRequiresAdmin(t *testing.T) {
	service := Service{Repo: memory.NewStore()}
	ctx := context.Background()

	if err := service.GrantAdminGrant(ctx, 1, 1); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if err := service.RevokeAdminGrant(ctx, 2, 1); !errors.Is(err, domainerrors.ErrNoRightToRevokeAdmin) {
		t.Fatalf("expected ErrNoRightToRevokeAdmin, got %v", err)
	}
	if err := service.RevokeAdminGrant(ctx, 1, 1); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	isAdmin, err := service.HasAdminGrant(ctx, 1)
	if err != nil || isAdmin {
		t.Fatalf("expected grant removed, got %v err=%v", isAdmin, err)
	}
}

func TestGrantUserPermissionRequiresAdmin(t *testing.T) {
	store := memory.NewStore()
	service := Service{Repo: store}
	ctx := context.Background()

	if err := service.GrantUserPermission(ctx, 1, 2, entities.UserPermissionAcceptCompanyRequest); !errors.Is(err, domainerrors.ErrNoRightToGrantUserPerm) {
		t.Fatalf("expected ErrNoRightToGrantUserPerm, got %v", err)
	}

	if err := service.GrantAdminGrant(ctx, 1, 1); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if err := service.GrantUserPermission(ctx, 1, 2, entities.UserPermissionAcceptCompanyRequest); err != nil {
		t.Fatalf("grant failed: %v", err)
	}

	allowed, err := service.HasUserPermission(ctx, 2, entities.UserPermissionAcceptCompanyRequest)
	if err != nil || !allowed {
		t.Fatalf("expected permission held, got %v err=%v", allowed, err)
	}
}

func TestGrantUserPermissionIdempotent(t *testing.T) {
	store := memory.NewStore()
	service := Service{Repo: store}
	ctx := context.Background()

	if err := service.GrantAdminGrant(ctx, 1, 1); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := service.GrantUserPermission(ctx, 1, 2, entities.UserPermissionAcceptCompanyRequest); err != nil {
			t.Fatalf("grant %d failed: %v", i, err)
		}
	}
	if count := store.PermissionCount(2, entities.UserPermissionAcceptCompanyRequest); count != 1 {
		t.Fatalf("expected a single permission row, got %d", count)
	}

	// Revoking twice is a no-op the second time.
	if err := service.RevokeUserPermission(ctx, 1, 2, entities.UserPermissionAcceptCompanyRequest); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if err := service.RevokeUserPermission(ctx, 1, 2, entities.UserPermissionAcceptCompanyRequest); err != nil {
		t.Fatalf("second revoke failed: %v", err)
	}
}

func TestInvalidPermissionKindRejected(t *testing.T) {
	service := Service{Repo: memory.NewStore()}
	ctx := context.Background()

	if err := service.GrantAdminGrant(ctx, 1, 1); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if err := service.GrantUserPermission(ctx, 1, 2, entities.UserPermission("fly_to_moon")); !errors.Is(err, domainerrors.ErrInvalidPermission) {
		t.Fatalf("expected ErrInvalidPermission, got %v", err)
	}
	if _, err := service.HasUserPermission(ctx, 2, entities.UserPermission("")); !errors.Is(err, domainerrors.ErrInvalidPermission) {
		t.Fatalf("expected ErrInvalidPermission on has, got %v", err)
	}
}
