package httptransport

import "time"

type OpeningDTO struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	CompanyID        int64     `json:"company_id"`
	CreateDate       time.Time `json:"create_date"`
	CreatorID        int64     `json:"creator_id"`
	Status           string    `json:"status"`
	StatusChangeDate time.Time `json:"status_change_date"`
	StatusChangerID  int64     `json:"status_changer_id"`
}

type ListOpeningsResponse struct {
	Openings []OpeningDTO `json:"openings"`
}

type CreateOpeningRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CompanyID   int64  `json:"company_id"`
}

type UpdateOpeningRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ListOpeningsQuery carries the optional list filters; empty strings and
// zero ids mean "any".
type ListOpeningsQuery struct {
	Status    string
	CompanyID int64
	CreatorID int64
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
