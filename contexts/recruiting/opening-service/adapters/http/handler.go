package httpadapter

import (
	"context"
	"log/slog"

	"openings/contexts/recruiting/opening-service/application"
	"openings/contexts/recruiting/opening-service/domain/entities"
	"openings/contexts/recruiting/opening-service/ports"
	httptransport "openings/contexts/recruiting/opening-service/transport/http"
)

// Handler maps HTTP DTOs to application operations.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateOpeningHandler(ctx context.Context, actorID int64, request httptransport.CreateOpeningRequest) (httptransport.OpeningDTO, error) {
	opening, err := h.Service.CreateOpening(ctx, request.Title, request.Description, request.CompanyID, actorID)
	if err != nil {
		return httptransport.OpeningDTO{}, err
	}
	return toOpeningDTO(opening), nil
}

func (h Handler) UpdateOpeningHandler(ctx context.Context, actorID int64, openingID int64, request httptransport.UpdateOpeningRequest) error {
	return h.Service.UpdateOpening(ctx, openingID, request.Title, request.Description, actorID)
}

func (h Handler) CloseOpeningHandler(ctx context.Context, actorID int64, openingID int64) error {
	return h.Service.CloseOpening(ctx, openingID, actorID)
}

func (h Handler) GetOpeningHandler(ctx context.Context, openingID int64) (httptransport.OpeningDTO, error) {
	opening, err := h.Service.GetOpening(ctx, openingID)
	if err != nil {
		return httptransport.OpeningDTO{}, err
	}
	return toOpeningDTO(opening), nil
}

func (h Handler) ListOpeningsHandler(ctx context.Context, query httptransport.ListOpeningsQuery) (httptransport.ListOpeningsResponse, error) {
	var filter ports.ListFilter
	if query.Status != "" {
		status := entities.OpeningStatus(query.Status)
		filter.Status = &status
	}
	if query.CompanyID != 0 {
		companyID := query.CompanyID
		filter.CompanyID = &companyID
	}
	if query.CreatorID != 0 {
		creatorID := query.CreatorID
		filter.CreatorID = &creatorID
	}

	openings, err := h.Service.ListOpenings(ctx, filter)
	if err != nil {
		return httptransport.ListOpeningsResponse{}, err
	}
	items := make([]httptransport.OpeningDTO, 0, len(openings))
	for _, opening := range openings {
		items = append(items, toOpeningDTO(opening))
	}
	return httptransport.ListOpeningsResponse{Openings: items}, nil
}

func toOpeningDTO(opening entities.JobOpening) httptransport.OpeningDTO {
	return httptransport.OpeningDTO{
		ID:               opening.ID,
		Title:            opening.Title,
		Description:      opening.Description,
		CompanyID:        opening.CompanyID,
		CreateDate:       opening.CreateDate,
		CreatorID:        opening.CreatorID,
		Status:           string(opening.Status),
		StatusChangeDate: opening.StatusChangeDate,
		StatusChangerID:  opening.StatusChangerID,
	}
}
