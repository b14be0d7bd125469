package entities

import "time"

// Company has exactly one designated admin: the user whose creation request
// was accepted. There is no transfer operation.
type Company struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	AdminUserID int64  `json:"admin_user_id"`
}

// RequestStatus is the company-creation request state.
type RequestStatus string

const (
	RequestStatusPosted    RequestStatus = "posted"
	RequestStatusCancelled RequestStatus = "cancelled"
	RequestStatusDenied    RequestStatus = "denied"
	RequestStatusAccepted  RequestStatus = "accepted"
)

// CompanyCreationRequest rows are never deleted; adjudication and
// cancellation only move the status.
//
// Legal transitions: Posted -> {Cancelled, Denied, Accepted} and
// Denied -> Accepted (a denied request may be re-adjudicated). Accepted and
// Cancelled are terminal.
type CompanyCreationRequest struct {
	ID               int64         `json:"id"`
	CompanyName      string        `json:"company_name"`
	RequesterID      int64         `json:"requester_id"`
	RequestDate      time.Time     `json:"request_date"`
	Status           RequestStatus `json:"status"`
	StatusChangeDate time.Time     `json:"status_change_date"`
	StatusChangerID  int64         `json:"status_changer_id"`
}

// CompanyPermission is a capability grantable per (user, company) pair.
// Deliberately a different type from the user-level permission kind.
type CompanyPermission string

const (
	// CompanyPermissionWorkWithOpenings allows creating, editing, and
	// closing the company's openings and adjudicating their applications.
	CompanyPermissionWorkWithOpenings CompanyPermission = "work_with_openings"
)

// Valid reports whether the kind is one of the defined company permissions.
func (p CompanyPermission) Valid() bool {
	return p == CompanyPermissionWorkWithOpenings
}
