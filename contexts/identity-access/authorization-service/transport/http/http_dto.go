package httptransport

type AdminGrantRequest struct {
	UserID int64 `json:"user_id"`
}

type HasAdminGrantResponse struct {
	UserID  int64 `json:"user_id"`
	IsAdmin bool  `json:"is_admin"`
}

type UserPermissionRequest struct {
	UserID     int64  `json:"user_id"`
	Permission string `json:"permission"`
}

type HasUserPermissionResponse struct {
	UserID     int64  `json:"user_id"`
	Permission string `json:"permission"`
	Allowed    bool   `json:"allowed"`
}

type ListUserPermissionsResponse struct {
	UserID      int64    `json:"user_id"`
	Permissions []string `json:"permissions"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
