package httpadapter

import (
	"context"
	"log/slog"

	"openings/contexts/recruiting/application-service/application"
	"openings/contexts/recruiting/application-service/domain/entities"
	httptransport "openings/contexts/recruiting/application-service/transport/http"
)

// Handler maps HTTP DTOs to application operations.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) StoreResumeHandler(ctx context.Context, actorID int64, request httptransport.StoreResumeRequest) (httptransport.ResumeDTO, error) {
	resume, err := h.Service.StoreResume(ctx, actorID, request.Filename, request.Blob)
	if err != nil {
		return httptransport.ResumeDTO{}, err
	}
	return toResumeDTO(resume), nil
}

func (h Handler) GetResumeHandler(ctx context.Context, actorID int64, resumeID int64) (httptransport.ResumeDTO, error) {
	resume, err := h.Service.GetResume(ctx, resumeID, actorID)
	if err != nil {
		return httptransport.ResumeDTO{}, err
	}
	return toResumeDTO(resume), nil
}

func (h Handler) ListMyResumesHandler(ctx context.Context, actorID int64) (httptransport.ListResumesResponse, error) {
	resumes, err := h.Service.ListMyResumes(ctx, actorID)
	if err != nil {
		return httptransport.ListResumesResponse{}, err
	}
	items := make([]httptransport.ResumeDTO, 0, len(resumes))
	for _, resume := range resumes {
		items = append(items, toResumeDTO(resume))
	}
	return httptransport.ListResumesResponse{Resumes: items}, nil
}

func (h Handler) PostApplicationHandler(ctx context.Context, actorID int64, request httptransport.PostApplicationRequest) (httptransport.ApplicationDTO, error) {
	app, err := h.Service.PostApplication(ctx, request.ResumeID, request.OpeningID, actorID)
	if err != nil {
		return httptransport.ApplicationDTO{}, err
	}
	return toApplicationDTO(app), nil
}

func (h Handler) CancelApplicationHandler(ctx context.Context, actorID int64, applicationID int64) error {
	return h.Service.CancelApplication(ctx, applicationID, actorID)
}

func (h Handler) AcceptApplicationHandler(ctx context.Context, actorID int64, applicationID int64) error {
	return h.Service.AcceptApplication(ctx, applicationID, actorID)
}

func (h Handler) DenyApplicationHandler(ctx context.Context, actorID int64, applicationID int64) error {
	return h.Service.DenyApplication(ctx, applicationID, actorID)
}

func (h Handler) GetApplicationHandler(ctx context.Context, actorID int64, applicationID int64) (httptransport.ApplicationDTO, error) {
	app, err := h.Service.GetApplication(ctx, applicationID, actorID)
	if err != nil {
		return httptransport.ApplicationDTO{}, err
	}
	return toApplicationDTO(app), nil
}

func (h Handler) ListMyApplicationsHandler(ctx context.Context, actorID int64, status string) (httptransport.ListApplicationsResponse, error) {
	apps, err := h.Service.ListMyApplications(ctx, actorID, statusFilter(status))
	if err != nil {
		return httptransport.ListApplicationsResponse{}, err
	}
	return toApplicationList(apps), nil
}

func (h Handler) ListApplicationsForMyOpeningsHandler(ctx context.Context, actorID int64, status string) (httptransport.ListApplicationsResponse, error) {
	apps, err := h.Service.ListApplicationsForMyOpenings(ctx, actorID, statusFilter(status))
	if err != nil {
		return httptransport.ListApplicationsResponse{}, err
	}
	return toApplicationList(apps), nil
}

func statusFilter(status string) *entities.ApplicationStatus {
	if status == "" {
		return nil
	}
	value := entities.ApplicationStatus(status)
	return &value
}

func toResumeDTO(resume entities.Resume) httptransport.ResumeDTO {
	return httptransport.ResumeDTO{
		ID:         resume.ID,
		OwnerID:    resume.OwnerID,
		Filename:   resume.Filename,
		Blob:       resume.Blob,
		CreateDate: resume.CreateDate,
	}
}

func toApplicationDTO(app entities.Application) httptransport.ApplicationDTO {
	return httptransport.ApplicationDTO{
		ID:               app.ID,
		ResumeID:         app.ResumeID,
		OpeningID:        app.OpeningID,
		ApplicantID:      app.ApplicantID,
		CreateDate:       app.CreateDate,
		Status:           string(app.Status),
		StatusChangeDate: app.StatusChangeDate,
		StatusChangerID:  app.StatusChangerID,
	}
}

func toApplicationList(apps []entities.Application) httptransport.ListApplicationsResponse {
	items := make([]httptransport.ApplicationDTO, 0, len(apps))
	for _, app := range apps {
		items = append(items, toApplicationDTO(app))
	}
	return httptransport.ListApplicationsResponse{Applications: items}
}
