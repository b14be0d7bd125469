package httptransport

import "time"

type CompanyDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	AdminUserID int64  `json:"admin_user_id"`
}

type ListCompaniesResponse struct {
	Companies []CompanyDTO `json:"companies"`
}

type CreationRequestDTO struct {
	ID               int64     `json:"id"`
	CompanyName      string    `json:"company_name"`
	RequesterID      int64     `json:"requester_id"`
	RequestDate      time.Time `json:"request_date"`
	Status           string    `json:"status"`
	StatusChangeDate time.Time `json:"status_change_date"`
	StatusChangerID  int64     `json:"status_changer_id"`
}

type ListCreationRequestsResponse struct {
	Requests []CreationRequestDTO `json:"requests"`
}

type RequestCreateCompanyRequest struct {
	Name string `json:"name"`
}

type CompanyPermissionRequest struct {
	UserID     int64  `json:"user_id"`
	Permission string `json:"permission"`
}

type HasCompanyPermissionResponse struct {
	UserID     int64  `json:"user_id"`
	CompanyID  int64  `json:"company_id"`
	Permission string `json:"permission"`
	Allowed    bool   `json:"allowed"`
}

type ListCompanyPermissionsResponse struct {
	UserID      int64    `json:"user_id"`
	CompanyID   int64    `json:"company_id"`
	Permissions []string `json:"permissions"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
