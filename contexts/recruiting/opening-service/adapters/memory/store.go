package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"openings/contexts/recruiting/opening-service/domain/entities"
	domainerrors "openings/contexts/recruiting/opening-service/domain/errors"
	"openings/contexts/recruiting/opening-service/ports"
)

// Store is the in-memory repository used by tests and local development.
type Store struct {
	mu       sync.RWMutex
	openings map[int64]entities.JobOpening
	sequence int64
}

func NewStore() *Store {
	return &Store{openings: make(map[int64]entities.JobOpening)}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) InsertOpening(ctx context.Context, in ports.InsertOpeningInput) (entities.JobOpening, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequence++
	opening := entities.JobOpening{
		ID:               s.sequence,
		Title:            in.Title,
		Description:      in.Description,
		CompanyID:        in.CompanyID,
		CreateDate:       in.CreateDate.UTC(),
		CreatorID:        in.CreatorID,
		Status:           entities.OpeningStatusPosted,
		StatusChangeDate: in.CreateDate.UTC(),
		StatusChangerID:  in.CreatorID,
	}
	s.openings[opening.ID] = opening
	return opening, nil
}

func (s *Store) GetOpening(ctx context.Context, id int64) (entities.JobOpening, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	opening, ok := s.openings[id]
	if !ok {
		return entities.JobOpening{}, domainerrors.ErrOpeningNotFound
	}
	return opening, nil
}

func (s *Store) UpdateOpening(ctx context.Context, id int64, in ports.UpdateOpeningInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	opening, ok := s.openings[id]
	if !ok {
		return domainerrors.ErrOpeningNotFound
	}
	opening.Title = in.Title
	opening.Description = in.Description
	s.openings[id] = opening
	return nil
}

func (s *Store) CloseOpening(ctx context.Context, id int64, changerID int64, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opening, ok := s.openings[id]
	if !ok || opening.Status != entities.OpeningStatusPosted {
		return false, nil
	}
	opening.Status = entities.OpeningStatusClosed
	opening.StatusChangeDate = now.UTC()
	opening.StatusChangerID = changerID
	s.openings[id] = opening
	return true, nil
}

func (s *Store) ListOpenings(ctx context.Context, filter ports.ListFilter) ([]entities.JobOpening, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.JobOpening, 0)
	for _, opening := range s.openings {
		if filter.Status != nil && opening.Status != *filter.Status {
			continue
		}
		if filter.CompanyID != nil && opening.CompanyID != *filter.CompanyID {
			continue
		}
		if filter.CreatorID != nil && opening.CreatorID != *filter.CreatorID {
			continue
		}
		items = append(items, opening)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}
