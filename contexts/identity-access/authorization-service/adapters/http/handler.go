package httpadapter

import (
	"context"
	"log/slog"

	"openings/contexts/identity-access/authorization-service/application"
	"openings/contexts/identity-access/authorization-service/domain/entities"
	httptransport "openings/contexts/identity-access/authorization-service/transport/http"
)

// Handler maps HTTP DTOs to application operations. The acting user comes
// from the transport layer, never from ambient state.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) HasAdminGrantHandler(ctx context.Context, userID int64) (httptransport.HasAdminGrantResponse, error) {
	ok, err := h.Service.HasAdminGrant(ctx, userID)
	if err != nil {
		return httptransport.HasAdminGrantResponse{}, err
	}
	return httptransport.HasAdminGrantResponse{UserID: userID, IsAdmin: ok}, nil
}

func (h Handler) GrantAdminHandler(ctx context.Context, actorID int64, request httptransport.AdminGrantRequest) error {
	return h.Service.GrantAdminGrant(ctx, actorID, request.UserID)
}

func (h Handler) RevokeAdminHandler(ctx context.Context, actorID int64, request httptransport.AdminGrantRequest) error {
	return h.Service.RevokeAdminGrant(ctx, actorID, request.UserID)
}

func (h Handler) HasUserPermissionHandler(ctx context.Context, userID int64, permission string) (httptransport.HasUserPermissionResponse, error) {
	ok, err := h.Service.HasUserPermission(ctx, userID, entities.UserPermission(permission))
	if err != nil {
		return httptransport.HasUserPermissionResponse{}, err
	}
	return httptransport.HasUserPermissionResponse{
		UserID:     userID,
		Permission: permission,
		Allowed:    ok,
	}, nil
}

func (h Handler) GrantUserPermissionHandler(ctx context.Context, actorID int64, request httptransport.UserPermissionRequest) error {
	return h.Service.GrantUserPermission(ctx, actorID, request.UserID, entities.UserPermission(request.Permission))
}

func (h Handler) RevokeUserPermissionHandler(ctx context.Context, actorID int64, request httptransport.UserPermissionRequest) error {
	return h.Service.RevokeUserPermission(ctx, actorID, request.UserID, entities.UserPermission(request.Permission))
}

func (h Handler) ListUserPermissionsHandler(ctx context.Context, userID int64) (httptransport.ListUserPermissionsResponse, error) {
	permissions, err := h.Service.ListUserPermissions(ctx, userID)
	if err != nil {
		return httptransport.ListUserPermissionsResponse{}, err
	}
	resp := httptransport.ListUserPermissionsResponse{
		UserID:      userID,
		Permissions: make([]string, 0, len(permissions)),
	}
	for _, permission := range permissions {
		resp.Permissions = append(resp.Permissions, string(permission))
	}
	return resp, nil
}
