package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"openings/contexts/recruiting/opening-service/domain/entities"
	domainerrors "openings/contexts/recruiting/opening-service/domain/errors"
	"openings/contexts/recruiting/opening-service/ports"
)

// Service implements the job opening registry and its lifecycle. Create,
// update and close all require the work_with_openings permission on the
// opening's company, checked through the CompanyPermissionChecker port.
type Service struct {
	Repo    ports.Repository
	Company ports.CompanyPermissionChecker
	Clock   ports.Clock
	Logger  *slog.Logger

	// AllowEditClosedOpening permits UpdateOpening on closed openings. The
	// default deployment enables it; editing never reopens the opening.
	AllowEditClosedOpening bool
}

func (s Service) CreateOpening(ctx context.Context, title, description string, companyID, creatorID int64) (entities.JobOpening, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return entities.JobOpening{}, domainerrors.ErrTitleEmpty
	}
	if err := s.requireWorkPermission(ctx, creatorID, companyID); err != nil {
		return entities.JobOpening{}, err
	}

	opening, err := s.Repo.InsertOpening(ctx, ports.InsertOpeningInput{
		Title:       title,
		Description: description,
		CompanyID:   companyID,
		CreatorID:   creatorID,
		CreateDate:  s.now(),
	})
	if err != nil {
		return entities.JobOpening{}, err
	}
	s.logger().Info("job opening created",
		"event", "opening_created",
		"module", "recruiting/opening-service",
		"layer", "application",
		"opening_id", opening.ID,
		"company_id", companyID,
		"creator_id", creatorID,
	)
	return opening, nil
}

func (s Service) UpdateOpening(ctx context.Context, id int64, title, description string, editorID int64) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return domainerrors.ErrTitleEmpty
	}
	opening, err := s.Repo.GetOpening(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireWorkPermission(ctx, editorID, opening.CompanyID); err != nil {
		return err
	}
	if opening.Status == entities.OpeningStatusClosed && !s.AllowEditClosedOpening {
		return domainerrors.ErrOpeningClosed
	}
	if err := s.Repo.UpdateOpening(ctx, id, ports.UpdateOpeningInput{
		Title:       title,
		Description: description,
	}); err != nil {
		return err
	}
	s.logger().Info("job opening updated",
		"event", "opening_updated",
		"module", "recruiting/opening-service",
		"layer", "application",
		"opening_id", id,
		"editor_id", editorID,
	)
	return nil
}

// CloseOpening is idempotent: closing an already closed opening succeeds.
// The status write is conditional on the opening still being posted; when it
// changes no row the opening is re-read, and only a vanished row is an error.
func (s Service) CloseOpening(ctx context.Context, id int64, closerID int64) error {
	opening, err := s.Repo.GetOpening(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireWorkPermission(ctx, closerID, opening.CompanyID); err != nil {
		return err
	}
	if opening.Status == entities.OpeningStatusClosed {
		return nil
	}

	ok, err := s.Repo.CloseOpening(ctx, id, closerID, s.now())
	if err != nil {
		return err
	}
	if !ok {
		// Lost a race: a concurrent close is still a success, a concurrent
		// delete is not.
		if _, err := s.Repo.GetOpening(ctx, id); err != nil {
			return err
		}
		return nil
	}
	s.logger().Info("job opening closed",
		"event", "opening_closed",
		"module", "recruiting/opening-service",
		"layer", "application",
		"opening_id", id,
		"closer_id", closerID,
	)
	return nil
}

func (s Service) GetOpening(ctx context.Context, id int64) (entities.JobOpening, error) {
	return s.Repo.GetOpening(ctx, id)
}

func (s Service) ListOpenings(ctx context.Context, filter ports.ListFilter) ([]entities.JobOpening, error) {
	return s.Repo.ListOpenings(ctx, filter)
}

func (s Service) requireWorkPermission(ctx context.Context, userID, companyID int64) error {
	allowed, err := s.Company.CanWorkWithOpenings(ctx, userID, companyID)
	if err != nil {
		return err
	}
	if !allowed {
		return domainerrors.ErrNoRightToWorkWithOpenings
	}
	return nil
}

func (s Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
