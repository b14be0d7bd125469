package httpadapter

import (
	"context"
	"log/slog"

	"openings/contexts/recruiting/company-service/application"
	"openings/contexts/recruiting/company-service/domain/entities"
	httptransport "openings/contexts/recruiting/company-service/transport/http"
)

// Handler maps HTTP DTOs to application operations.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) RequestCreateCompanyHandler(ctx context.Context, actorID int64, request httptransport.RequestCreateCompanyRequest) (httptransport.CreationRequestDTO, error) {
	created, err := h.Service.RequestCreateCompany(ctx, request.Name, actorID)
	if err != nil {
		return httptransport.CreationRequestDTO{}, err
	}
	return toRequestDTO(created), nil
}

func (h Handler) CancelRequestHandler(ctx context.Context, actorID int64, requestID int64) error {
	return h.Service.CancelRequest(ctx, requestID, actorID)
}

func (h Handler) AcceptRequestHandler(ctx context.Context, actorID int64, requestID int64) (httptransport.CompanyDTO, error) {
	company, err := h.Service.AcceptRequest(ctx, requestID, actorID)
	if err != nil {
		return httptransport.CompanyDTO{}, err
	}
	return toCompanyDTO(company), nil
}

func (h Handler) DenyRequestHandler(ctx context.Context, actorID int64, requestID int64) error {
	return h.Service.DenyRequest(ctx, requestID, actorID)
}

func (h Handler) ListRequestsHandler(ctx context.Context, actorID int64) (httptransport.ListCreationRequestsResponse, error) {
	requests, err := h.Service.ListRequests(ctx, actorID)
	if err != nil {
		return httptransport.ListCreationRequestsResponse{}, err
	}
	return toRequestList(requests), nil
}

func (h Handler) ListMyRequestsHandler(ctx context.Context, actorID int64) (httptransport.ListCreationRequestsResponse, error) {
	requests, err := h.Service.ListRequestsByUser(ctx, actorID)
	if err != nil {
		return httptransport.ListCreationRequestsResponse{}, err
	}
	return toRequestList(requests), nil
}

func (h Handler) GetCompanyHandler(ctx context.Context, id int64) (httptransport.CompanyDTO, error) {
	company, err := h.Service.GetCompany(ctx, id)
	if err != nil {
		return httptransport.CompanyDTO{}, err
	}
	return toCompanyDTO(company), nil
}

func (h Handler) GetCompanyByNameHandler(ctx context.Context, name string) (httptransport.CompanyDTO, error) {
	company, err := h.Service.GetCompanyByName(ctx, name)
	if err != nil {
		return httptransport.CompanyDTO{}, err
	}
	return toCompanyDTO(company), nil
}

func (h Handler) ListCompaniesHandler(ctx context.Context) (httptransport.ListCompaniesResponse, error) {
	companies, err := h.Service.ListCompanies(ctx)
	if err != nil {
		return httptransport.ListCompaniesResponse{}, err
	}
	return toCompanyList(companies), nil
}

func (h Handler) ListAdministeredCompaniesHandler(ctx context.Context, actorID int64) (httptransport.ListCompaniesResponse, error) {
	companies, err := h.Service.ListCompaniesAdministeredBy(ctx, actorID)
	if err != nil {
		return httptransport.ListCompaniesResponse{}, err
	}
	return toCompanyList(companies), nil
}

func (h Handler) GrantCompanyPermissionHandler(ctx context.Context, actorID int64, companyID int64, request httptransport.CompanyPermissionRequest) error {
	return h.Service.GrantCompanyPermission(ctx, actorID, request.UserID, companyID, entities.CompanyPermission(request.Permission))
}

func (h Handler) RevokeCompanyPermissionHandler(ctx context.Context, actorID int64, companyID int64, request httptransport.CompanyPermissionRequest) error {
	return h.Service.RevokeCompanyPermission(ctx, actorID, request.UserID, companyID, entities.CompanyPermission(request.Permission))
}

func (h Handler) HasCompanyPermissionHandler(ctx context.Context, userID int64, companyID int64, permission string) (httptransport.HasCompanyPermissionResponse, error) {
	ok, err := h.Service.HasCompanyPermission(ctx, userID, companyID, entities.CompanyPermission(permission))
	if err != nil {
		return httptransport.HasCompanyPermissionResponse{}, err
	}
	return httptransport.HasCompanyPermissionResponse{
		UserID:     userID,
		CompanyID:  companyID,
		Permission: permission,
		Allowed:    ok,
	}, nil
}

func (h Handler) ListCompanyPermissionsHandler(ctx context.Context, userID int64, companyID int64) (httptransport.ListCompanyPermissionsResponse, error) {
	permissions, err := h.Service.ListCompanyPermissions(ctx, userID, companyID)
	if err != nil {
		return httptransport.ListCompanyPermissionsResponse{}, err
	}
	resp := httptransport.ListCompanyPermissionsResponse{
		UserID:      userID,
		CompanyID:   companyID,
		Permissions: make([]string, 0, len(permissions)),
	}
	for _, permission := range permissions {
		resp.Permissions = append(resp.Permissions, string(permission))
	}
	return resp, nil
}

func (h Handler) ListCompaniesWithPermissionHandler(ctx context.Context, userID int64, permission string) (httptransport.ListCompaniesResponse, error) {
	companies, err := h.Service.ListCompaniesWithPermission(ctx, userID, entities.CompanyPermission(permission))
	if err != nil {
		return httptransport.ListCompaniesResponse{}, err
	}
	return toCompanyList(companies), nil
}

func toCompanyDTO(company entities.Company) httptransport.CompanyDTO {
	return httptransport.CompanyDTO{
		ID:          company.ID,
		Name:        company.Name,
		AdminUserID: company.AdminUserID,
	}
}

func toCompanyList(companies []entities.Company) httptransport.ListCompaniesResponse {
	resp := httptransport.ListCompaniesResponse{Companies: make([]httptransport.CompanyDTO, 0, len(companies))}
	for _, company := range companies {
		resp.Companies = append(resp.Companies, toCompanyDTO(company))
	}
	return resp
}

func toRequestDTO(request entities.CompanyCreationRequest) httptransport.CreationRequestDTO {
	return httptransport.CreationRequestDTO{
		ID:               request.ID,
		CompanyName:      request.CompanyName,
		RequesterID:      request.RequesterID,
		RequestDate:      request.RequestDate,
		Status:           string(request.Status),
		StatusChangeDate: request.StatusChangeDate,
		StatusChangerID:  request.StatusChangerID,
	}
}

func toRequestList(requests []entities.CompanyCreationRequest) httptransport.ListCreationRequestsResponse {
	resp := httptransport.ListCreationRequestsResponse{Requests: make([]httptransport.CreationRequestDTO, 0, len(requests))}
	for _, request := range requests {
		resp.Requests = append(resp.Requests, toRequestDTO(request))
	}
	return resp
}
