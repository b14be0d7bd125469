package httptransport

import "time"

type RegisterRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type UserDTO struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	Name             string    `json:"name"`
	RegistrationDate time.Time `json:"registration_date"`
}

type ListUsersResponse struct {
	Users []UserDTO `json:"users"`
}

type UpdateProfileRequest struct {
	Username        string `json:"username"`
	Name            string `json:"name"`
	CurrentPassword string `json:"current_password"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type DeleteUserRequest struct {
	Password string `json:"password"`
}

type VerifyPasswordRequest struct {
	Password string `json:"password"`
}

type VerifyPasswordResponse struct {
	Verified bool `json:"verified"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
