package ports

import (
	"context"

	"openings/contexts/identity-access/authorization-service/domain/entities"
)

// Repository is the persistence boundary for admin grants and user-level
// permission rows. Insert operations are idempotent set inserts: inserting
// an existing relation row is a no-op, deleting an absent one is a no-op.
type Repository interface {
	HasAdminGrant(ctx context.Context, userID int64) (bool, error)
	CountAdminGrants(ctx context.Context) (int64, error)
	InsertAdminGrant(ctx context.Context, userID int64) error
	DeleteAdminGrant(ctx context.Context, userID int64) error

	HasUserPermission(ctx context.Context, userID int64, permission entities.UserPermission) (bool, error)
	InsertUserPermission(ctx context.Context, userID int64, permission entities.UserPermission) error
	DeleteUserPermission(ctx context.Context, userID int64, permission entities.UserPermission) error
	ListUserPermissions(ctx context.Context, userID int64) ([]entities.UserPermission, error)
}
