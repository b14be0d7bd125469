package entities

import "time"

// OpeningStatus is monotone: Posted -> Closed, no reopen.
type OpeningStatus string

const (
	OpeningStatusPosted OpeningStatus = "posted"
	OpeningStatusClosed OpeningStatus = "closed"
)

type JobOpening struct {
	ID               int64         `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	CompanyID        int64         `json:"company_id"`
	CreateDate       time.Time     `json:"create_date"`
	CreatorID        int64         `json:"creator_id"`
	Status           OpeningStatus `json:"status"`
	StatusChangeDate time.Time     `json:"status_change_date"`
	StatusChangerID  int64         `json:"status_changer_id"`
}
