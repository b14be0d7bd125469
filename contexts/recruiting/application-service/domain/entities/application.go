package entities

import "time"

// ApplicationStatus transitions: Posted -> Cancelled (owner), Posted ->
// Denied (manager), Posted or Denied -> Accepted (manager). Cancelled and
// Accepted are terminal.
type ApplicationStatus string

const (
	ApplicationStatusPosted    ApplicationStatus = "posted"
	ApplicationStatusCancelled ApplicationStatus = "cancelled"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusDenied    ApplicationStatus = "denied"
)

type Application struct {
	ID               int64             `json:"id"`
	ResumeID         int64             `json:"resume_id"`
	OpeningID        int64             `json:"opening_id"`
	ApplicantID      int64             `json:"applicant_id"`
	CreateDate       time.Time         `json:"create_date"`
	Status           ApplicationStatus `json:"status"`
	StatusChangeDate time.Time         `json:"status_change_date"`
	StatusChangerID  int64             `json:"status_changer_id"`
}

// Resume is immutable once stored; the blob passes through opaquely.
type Resume struct {
	ID         int64     `json:"id"`
	OwnerID    int64     `json:"owner_id"`
	Filename   string    `json:"filename"`
	Blob       []byte    `json:"blob"`
	CreateDate time.Time `json:"create_date"`
}
