package application

import (
	"context"
	"log/slog"

	"openings/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "openings/contexts/identity-access/authorization-service/domain/errors"
	"openings/contexts/identity-access/authorization-service/ports"
)

// Service implements the admin registry and the user permission registry.
//
// Bootstrap rule: the very first admin grant may only be self-issued while
// the admin registry is empty; after that, every grant or revoke of admin
// rights and of user permissions requires the acting user to hold an admin
// grant. Grants and revokes are idempotent set operations.
type Service struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (s Service) HasAdminGrant(ctx context.Context, userID int64) (bool, error) {
	return s.Repo.HasAdminGrant(ctx, userID)
}

func (s Service) GrantAdminGrant(ctx context.Context, granterID int64, userID int64) error {
	allowed, err := s.Repo.HasAdminGrant(ctx, granterID)
	if err != nil {
		return err
	}
	if !allowed {
		count, err := s.Repo.CountAdminGrants(ctx)
		if err != nil {
			return err
		}
		// Empty registry: the requester may bootstrap themselves only.
		if count != 0 || granterID != userID {
			return domainerrors.ErrNoRightToGrantAdmin
		}
	}
	if err := s.Repo.InsertAdminGrant(ctx, userID); err != nil {
		return err
	}
	s.logger().Info("admin grant issued",
		"event", "authz_admin_granted",
		"module", "identity-access/authorization-service",
		"layer", "application",
		"granter_id", granterID,
		"user_id", userID,
	)
	return nil
}

func (s Service) RevokeAdminGrant(ctx context.Context, revokerID int64, userID int64) error {
	allowed, err := s.Repo.HasAdminGrant(ctx, revokerID)
	if err != nil {
		return err
	}
	if !allowed {
		return domainerrors.ErrNoRightToRevokeAdmin
	}
	if err := s.Repo.DeleteAdminGrant(ctx, userID); err != nil {
		return err
	}
	s.logger().Info("admin grant revoked",
		"event", "authz_admin_revoked",
		"module", "identity-access/authorization-service",
		"layer", "application",
		"revoker_id", revokerID,
		"user_id", userID,
	)
	return nil
}

func (s Service) HasUserPermission(ctx context.Context, userID int64, permission entities.UserPermission) (bool, error) {
	if !permission.Valid() {
		return false, domainerrors.ErrInvalidPermission
	}
	return s.Repo.HasUserPermission(ctx, userID, permission)
}

func (s Service) GrantUserPermission(ctx context.Context, granterID int64, userID int64, permission entities.UserPermission) error {
	if !permission.Valid() {
		return domainerrors.ErrInvalidPermission
	}
	allowed, err := s.Repo.HasAdminGrant(ctx, granterID)
	if err != nil {
		return err
	}
	if !allowed {
		return domainerrors.ErrNoRightToGrantUserPerm
	}
	if err := s.Repo.InsertUserPermission(ctx, userID, permission); err != nil {
		return err
	}
	s.logger().Info("user permission granted",
		"event", "authz_user_permission_granted",
		"module", "identity-access/authorization-service",
		"layer", "application",
		"granter_id", granterID,
		"user_id", userID,
		"permission", string(permission),
	)
	return nil
}

func (s Service) RevokeUserPermission(ctx context.Context, revokerID int64, userID int64, permission entities.UserPermission) error {
	if !permission.Valid() {
		return domainerrors.ErrInvalidPermission
	}
	allowed, err := s.Repo.HasAdminGrant(ctx, revokerID)
	if err != nil {
		return err
	}
	if !allowed {
		return domainerrors.ErrNoRightToRevokeUserPerm
	}
	if err := s.Repo.DeleteUserPermission(ctx, userID, permission); err != nil {
		return err
	}
	s.logger().Info("user permission revoked",
		"event", "authz_user_permission_revoked",
		"module", "identity-access/authorization-service",
		"layer", "application",
		"revoker_id", revokerID,
		"user_id", userID,
		"permission", string(permission),
	)
	return nil
}

func (s Service) ListUserPermissions(ctx context.Context, userID int64) ([]entities.UserPermission, error) {
	return s.Repo.ListUserPermissions(ctx, userID)
}

func (s Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
