package httptransport

import "time"

type ResumeDTO struct {
	ID         int64     `json:"id"`
	OwnerID    int64     `json:"owner_id"`
	Filename   string    `json:"filename"`
	Blob       []byte    `json:"blob"`
	CreateDate time.Time `json:"create_date"`
}

type ListResumesResponse struct {
	Resumes []ResumeDTO `json:"resumes"`
}

// Blob travels base64-encoded in JSON; the service never inspects it.
type StoreResumeRequest struct {
	Filename string `json:"filename"`
	Blob     []byte `json:"blob"`
}

type ApplicationDTO struct {
	ID               int64     `json:"id"`
	ResumeID         int64     `json:"resume_id"`
	OpeningID        int64     `json:"opening_id"`
	ApplicantID      int64     `json:"applicant_id"`
	CreateDate       time.Time `json:"create_date"`
	Status           string    `json:"status"`
	StatusChangeDate time.Time `json:"status_change_date"`
	StatusChangerID  int64     `json:"status_changer_id"`
}

type ListApplicationsResponse struct {
	Applications []ApplicationDTO `json:"applications"`
}

type PostApplicationRequest struct {
	ResumeID  int64 `json:"resume_id"`
	OpeningID int64 `json:"opening_id"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
