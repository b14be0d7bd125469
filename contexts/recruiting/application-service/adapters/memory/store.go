package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"openings/contexts/recruiting/application-service/domain/entities"
	domainerrors "openings/contexts/recruiting/application-service/domain/errors"
	"openings/contexts/recruiting/application-service/ports"
)

// Store is the in-memory repository used by tests and local development.
// A single mutex stands in for the row-level atomicity the postgres adapter
// gets from conditional updates.
type Store struct {
	mu             sync.RWMutex
	resumes        map[int64]entities.Resume
	applications   map[int64]entities.Application
	resumeSeq      int64
	applicationSeq int64
}

func NewStore() *Store {
	return &Store{
		resumes:      make(map[int64]entities.Resume),
		applications: make(map[int64]entities.Application),
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) InsertResume(ctx context.Context, in ports.InsertResumeInput) (entities.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resumeSeq++
	resume := entities.Resume{
		ID:         s.resumeSeq,
		OwnerID:    in.OwnerID,
		Filename:   in.Filename,
		Blob:       in.Blob,
		CreateDate: in.CreateDate.UTC(),
	}
	s.resumes[resume.ID] = resume
	return resume, nil
}

func (s *Store) GetResume(ctx context.Context, id int64) (entities.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resume, ok := s.resumes[id]
	if !ok {
		return entities.Resume{}, domainerrors.ErrResumeNotFound
	}
	return resume, nil
}

func (s *Store) ListResumesByOwner(ctx context.Context, ownerID int64) ([]entities.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Resume, 0)
	for _, resume := range s.resumes {
		if resume.OwnerID == ownerID {
			items = append(items, resume)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Store) InsertApplication(ctx context.Context, in ports.InsertApplicationInput) (entities.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.applicationSeq++
	app := entities.Application{
		ID:               s.applicationSeq,
		ResumeID:         in.ResumeID,
		OpeningID:        in.OpeningID,
		ApplicantID:      in.ApplicantID,
		CreateDate:       in.CreateDate.UTC(),
		Status:           entities.ApplicationStatusPosted,
		StatusChangeDate: in.CreateDate.UTC(),
		StatusChangerID:  in.ApplicantID,
	}
	s.applications[app.ID] = app
	return app, nil
}

func (s *Store) GetApplication(ctx context.Context, id int64) (entities.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	app, ok := s.applications[id]
	if !ok {
		return entities.Application{}, domainerrors.ErrApplicationNotFound
	}
	return app, nil
}

func (s *Store) TransitionApplication(ctx context.Context, id int64, from []entities.ApplicationStatus, to entities.ApplicationStatus, changerID int64, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.applications[id]
	if !ok || !statusIn(app.Status, from) {
		return false, nil
	}
	app.Status = to
	app.StatusChangeDate = now.UTC()
	app.StatusChangerID = changerID
	s.applications[id] = app
	return true, nil
}

func (s *Store) ListApplicationsByApplicant(ctx context.Context, applicantID int64, status *entities.ApplicationStatus) ([]entities.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(a entities.Application) bool {
		return a.ApplicantID == applicantID && (status == nil || a.Status == *status)
	}), nil
}

func (s *Store) ListApplicationsForOpenings(ctx context.Context, openingIDs []int64, status *entities.ApplicationStatus) ([]entities.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[int64]struct{}, len(openingIDs))
	for _, id := range openingIDs {
		wanted[id] = struct{}{}
	}
	return s.collect(func(a entities.Application) bool {
		_, ok := wanted[a.OpeningID]
		return ok && (status == nil || a.Status == *status)
	}), nil
}

func (s *Store) collect(match func(entities.Application) bool) []entities.Application {
	items := make([]entities.Application, 0)
	for _, app := range s.applications {
		if match(app) {
			items = append(items, app)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func statusIn(status entities.ApplicationStatus, set []entities.ApplicationStatus) bool {
	for _, candidate := range set {
		if status == candidate {
			return true
		}
	}
	return false
}
