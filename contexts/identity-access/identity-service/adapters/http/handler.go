package httpadapter

import (
	"context"
	"log/slog"

	"openings/contexts/identity-access/identity-service/application"
	"openings/contexts/identity-access/identity-service/domain/entities"
	httptransport "openings/contexts/identity-access/identity-service/transport/http"
)

// Handler maps HTTP DTOs to application operations.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) RegisterHandler(ctx context.Context, request httptransport.RegisterRequest) (httptransport.UserDTO, error) {
	user, err := h.Service.Register(ctx, request.Username, request.Name, request.Password)
	if err != nil {
		return httptransport.UserDTO{}, err
	}
	return toUserDTO(user), nil
}

func (h Handler) GetUserHandler(ctx context.Context, id int64) (httptransport.UserDTO, error) {
	user, err := h.Service.GetUser(ctx, id)
	if err != nil {
		return httptransport.UserDTO{}, err
	}
	return toUserDTO(user), nil
}

func (h Handler) GetUserByUsernameHandler(ctx context.Context, username string) (httptransport.UserDTO, error) {
	user, err := h.Service.GetUserByUsername(ctx, username)
	if err != nil {
		return httptransport.UserDTO{}, err
	}
	return toUserDTO(user), nil
}

func (h Handler) ListUsersHandler(ctx context.Context) (httptransport.ListUsersResponse, error) {
	users, err := h.Service.ListUsers(ctx)
	if err != nil {
		return httptransport.ListUsersResponse{}, err
	}
	resp := httptransport.ListUsersResponse{Users: make([]httptransport.UserDTO, 0, len(users))}
	for _, user := range users {
		resp.Users = append(resp.Users, toUserDTO(user))
	}
	return resp, nil
}

func (h Handler) UpdateProfileHandler(ctx context.Context, id int64, request httptransport.UpdateProfileRequest) error {
	return h.Service.UpdateProfile(ctx, id, request.Username, request.Name, request.CurrentPassword)
}

func (h Handler) UpdatePasswordHandler(ctx context.Context, id int64, request httptransport.UpdatePasswordRequest) error {
	return h.Service.UpdatePassword(ctx, id, request.OldPassword, request.NewPassword)
}

func (h Handler) DeleteUserHandler(ctx context.Context, id int64, request httptransport.DeleteUserRequest) error {
	return h.Service.DeleteUser(ctx, id, request.Password)
}

func (h Handler) VerifyPasswordHandler(ctx context.Context, id int64, request httptransport.VerifyPasswordRequest) (httptransport.VerifyPasswordResponse, error) {
	ok, err := h.Service.VerifyPassword(ctx, id, request.Password)
	if err != nil {
		return httptransport.VerifyPasswordResponse{}, err
	}
	return httptransport.VerifyPasswordResponse{Verified: ok}, nil
}

func toUserDTO(user entities.User) httptransport.UserDTO {
	return httptransport.UserDTO{
		ID:               user.ID,
		Username:         user.Username,
		Name:             user.Name,
		RegistrationDate: user.RegistrationDate,
	}
}
