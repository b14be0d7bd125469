package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"openings/contexts/recruiting/company-service/domain/entities"
	domainerrors "openings/contexts/recruiting/company-service/domain/errors"
	"openings/contexts/recruiting/company-service/ports"
)

type permissionKey struct {
	userID     int64
	companyID  int64
	permission entities.CompanyPermission
}

// Store is the in-memory repository used by tests and local development.
// A single mutex stands in for the row-level atomicity the postgres adapter
// gets from conditional updates and transactions.
type Store struct {
	mu          sync.RWMutex
	requests    map[int64]entities.CompanyCreationRequest
	companies   map[int64]entities.Company
	permissions map[permissionKey]struct{}
	requestSeq  int64
	companySeq  int64
}

func NewStore() *Store {
	return &Store{
		requests:    make(map[int64]entities.CompanyCreationRequest),
		companies:   make(map[int64]entities.Company),
		permissions: make(map[permissionKey]struct{}),
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) InsertRequest(ctx context.Context, companyName string, requesterID int64, now time.Time) (entities.CompanyCreationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requestSeq++
	request := entities.CompanyCreationRequest{
		ID:               s.requestSeq,
		CompanyName:      companyName,
		RequesterID:      requesterID,
		RequestDate:      now.UTC(),
		Status:           entities.RequestStatusPosted,
		StatusChangeDate: now.UTC(),
		StatusChangerID:  requesterID,
	}
	s.requests[request.ID] = request
	return request, nil
}

func (s *Store) GetRequest(ctx context.Context, id int64) (entities.CompanyCreationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	request, ok := s.requests[id]
	if !ok {
		return entities.CompanyCreationRequest{}, domainerrors.ErrRequestNotFound
	}
	return request, nil
}

func (s *Store) HasPostedRequest(ctx context.Context, requesterID int64, companyName string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, request := range s.requests {
		if request.RequesterID == requesterID &&
			request.CompanyName == companyName &&
			request.Status == entities.RequestStatusPosted {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListRequests(ctx context.Context) ([]entities.CompanyCreationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectRequests(func(entities.CompanyCreationRequest) bool { return true }), nil
}

func (s *Store) ListRequestsByUser(ctx context.Context, requesterID int64) ([]entities.CompanyCreationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectRequests(func(r entities.CompanyCreationRequest) bool {
		return r.RequesterID == requesterID
	}), nil
}

func (s *Store) TransitionRequest(ctx context.Context, id int64, from []entities.RequestStatus, to entities.RequestStatus, changerID int64, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.requests[id]
	if !ok || !statusIn(request.Status, from) {
		return false, nil
	}
	request.Status = to
	request.StatusChangeDate = now.UTC()
	request.StatusChangerID = changerID
	s.requests[id] = request
	return true, nil
}

func (s *Store) AcceptRequest(ctx context.Context, requestID int64, companyName string, requesterID int64, adminID int64, now time.Time) (ports.AcceptOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.requests[requestID]
	if !ok || !statusIn(request.Status, []entities.RequestStatus{
		entities.RequestStatusPosted,
		entities.RequestStatusDenied,
	}) {
		// No company row is created for a request that did not transition.
		return ports.AcceptOutcome{}, nil
	}

	s.companySeq++
	company := entities.Company{
		ID:          s.companySeq,
		Name:        companyName,
		AdminUserID: requesterID,
	}
	s.companies[company.ID] = company

	request.Status = entities.RequestStatusAccepted
	request.StatusChangeDate = now.UTC()
	request.StatusChangerID = adminID
	s.requests[requestID] = request

	return ports.AcceptOutcome{Company: company, Transitioned: true}, nil
}

func (s *Store) GetCompany(ctx context.Context, id int64) (entities.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	company, ok := s.companies[id]
	if !ok {
		return entities.Company{}, domainerrors.ErrCompanyNotFound
	}
	return company, nil
}

func (s *Store) GetCompanyByName(ctx context.Context, name string) (entities.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, company := range s.companies {
		if company.Name == name {
			return company, nil
		}
	}
	return entities.Company{}, domainerrors.ErrCompanyNotFound
}

func (s *Store) ListCompanies(ctx context.Context) ([]entities.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectCompanies(func(entities.Company) bool { return true }), nil
}

func (s *Store) ListCompaniesAdministeredBy(ctx context.Context, userID int64) ([]entities.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectCompanies(func(c entities.Company) bool { return c.AdminUserID == userID }), nil
}

func (s *Store) HasCompanyPermission(ctx context.Context, userID int64, companyID int64, permission entities.CompanyPermission) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.permissions[permissionKey{userID: userID, companyID: companyID, permission: permission}]
	return ok, nil
}

func (s *Store) InsertCompanyPermission(ctx context.Context, userID int64, companyID int64, permission entities.CompanyPermission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permissions[permissionKey{userID: userID, companyID: companyID, permission: permission}] = struct{}{}
	return nil
}

func (s *Store) DeleteCompanyPermission(ctx context.Context, userID int64, companyID int64, permission entities.CompanyPermission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.permissions, permissionKey{userID: userID, companyID: companyID, permission: permission})
	return nil
}

func (s *Store) ListCompanyPermissions(ctx context.Context, userID int64, companyID int64) ([]entities.CompanyPermission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.CompanyPermission, 0)
	for key := range s.permissions {
		if key.userID == userID && key.companyID == companyID {
			items = append(items, key.permission)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
	return items, nil
}

func (s *Store) ListCompaniesWithPermission(ctx context.Context, userID int64, permission entities.CompanyPermission) ([]entities.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Company, 0)
	for key := range s.permissions {
		if key.userID == userID && key.permission == permission {
			if company, ok := s.companies[key.companyID]; ok {
				items = append(items, company)
			}
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// CompanyCount is a test helper for accept-atomicity assertions.
func (s *Store) CompanyCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.companies)
}

// PermissionCount reports relation rows for one (user, company, kind) triple.
// Test helper for grant idempotence assertions.
func (s *Store) PermissionCount(userID int64, companyID int64, permission entities.CompanyPermission) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.permissions[permissionKey{userID: userID, companyID: companyID, permission: permission}]; ok {
		return 1
	}
	return 0
}

func (s *Store) collectRequests(match func(entities.CompanyCreationRequest) bool) []entities.CompanyCreationRequest {
	items := make([]entities.CompanyCreationRequest, 0)
	for _, request := range s.requests {
		if match(request) {
			items = append(items, request)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func (s *Store) collectCompanies(match func(entities.Company) bool) []entities.Company {
	items := make([]entities.Company, 0)
	for _, company := range s.companies {
		if match(company) {
			items = append(items, company)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func statusIn(status entities.RequestStatus, set []entities.RequestStatus) bool {
	for _, candidate := range set {
		if status == candidate {
			return true
		}
	}
	return false
}
