package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"openings/contexts/recruiting/application-service/domain/entities"
	domainerrors "openings/contexts/recruiting/application-service/domain/errors"
	"openings/contexts/recruiting/application-service/ports"
)

// Service implements resumes and the application workflow. Applicants act on
// their own resumes and applications; accept/deny go to managers, meaning
// anyone holding work_with_openings on the opening's company.
//
// Every transition re-reads current state before writing, and the write
// itself is conditional on the expected source status; a caller that lost a
// race sees the same error it would have seen arriving second.
type Service struct {
	Repo     ports.Repository
	Openings ports.OpeningDirectory
	Company  ports.CompanyPermissionChecker
	Clock    ports.Clock
	Logger   *slog.Logger

	// AllowApplyToClosedOpening permits posting applications against closed
	// openings. The default deployment enables it.
	AllowApplyToClosedOpening bool
}

func (s Service) StoreResume(ctx context.Context, ownerID int64, filename string, blob []byte) (entities.Resume, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return entities.Resume{}, domainerrors.ErrResumeFilenameEmpty
	}
	resume, err := s.Repo.InsertResume(ctx, ports.InsertResumeInput{
		OwnerID:    ownerID,
		Filename:   filename,
		Blob:       blob,
		CreateDate: s.now(),
	})
	if err != nil {
		return entities.Resume{}, err
	}
	s.logger().Info("resume stored",
		"event", "resume_stored",
		"module", "recruiting/application-service",
		"layer", "application",
		"resume_id", resume.ID,
		"owner_id", ownerID,
	)
	return resume, nil
}

// GetResume is owner-only: a resume is private until attached to an
// application the reader may see.
func (s Service) GetResume(ctx context.Context, id int64, actorID int64) (entities.Resume, error) {
	resume, err := s.Repo.GetResume(ctx, id)
	if err != nil {
		return entities.Resume{}, err
	}
	if resume.OwnerID != actorID {
		return entities.Resume{}, domainerrors.ErrNotResumeOwner
	}
	return resume, nil
}

func (s Service) ListMyResumes(ctx context.Context, actorID int64) ([]entities.Resume, error) {
	return s.Repo.ListResumesByOwner(ctx, actorID)
}

func (s Service) PostApplication(ctx context.Context, resumeID, openingID, actorID int64) (entities.Application, error) {
	resume, err := s.Repo.GetResume(ctx, resumeID)
	if err != nil {
		return entities.Application{}, err
	}
	if resume.OwnerID != actorID {
		return entities.Application{}, domainerrors.ErrNotResumeOwner
	}

	opening, ok, err := s.Openings.GetOpening(ctx, openingID)
	if err != nil {
		return entities.Application{}, err
	}
	if !ok {
		return entities.Application{}, domainerrors.ErrOpeningNotFound
	}
	if opening.Closed && !s.AllowApplyToClosedOpening {
		return entities.Application{}, domainerrors.ErrOpeningClosed
	}

	created, err := s.Repo.InsertApplication(ctx, ports.InsertApplicationInput{
		ResumeID:    resumeID,
		OpeningID:   openingID,
		ApplicantID: actorID,
		CreateDate:  s.now(),
	})
	if err != nil {
		return entities.Application{}, err
	}
	s.logger().Info("application posted",
		"event", "application_posted",
		"module", "recruiting/application-service",
		"layer", "application",
		"application_id", created.ID,
		"opening_id", openingID,
		"applicant_id", actorID,
	)
	return created, nil
}

func (s Service) CancelApplication(ctx context.Context, id int64, actorID int64) error {
	app, err := s.Repo.GetApplication(ctx, id)
	if err != nil {
		return err
	}
	if app.ApplicantID != actorID {
		return domainerrors.ErrNotApplicationOwner
	}
	if err := cancelTransitionError(app.Status); err != nil {
		return err
	}

	ok, err := s.Repo.TransitionApplication(ctx, id,
		[]entities.ApplicationStatus{entities.ApplicationStatusPosted},
		entities.ApplicationStatusCancelled, actorID, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return s.applicationRaceError(ctx, id, cancelTransitionError)
	}
	s.logger().Info("application cancelled",
		"event", "application_cancelled",
		"module", "recruiting/application-service",
		"layer", "application",
		"application_id", id,
	)
	return nil
}

// AcceptApplication is legal from Posted and from Denied: a manager may
// reverse an earlier deny as long as nothing terminal happened since.
func (s Service) AcceptApplication(ctx context.Context, id int64, actorID int64) error {
	app, err := s.Repo.GetApplication(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireManager(ctx, actorID, app.OpeningID); err != nil {
		return err
	}
	if err := acceptTransitionError(app.Status); err != nil {
		return err
	}

	ok, err := s.Repo.TransitionApplication(ctx, id,
		[]entities.ApplicationStatus{
			entities.ApplicationStatusPosted,
			entities.ApplicationStatusDenied,
		},
		entities.ApplicationStatusAccepted, actorID, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return s.applicationRaceError(ctx, id, acceptTransitionError)
	}
	s.logger().Info("application accepted",
		"event", "application_accepted",
		"module", "recruiting/application-service",
		"layer", "application",
		"application_id", id,
		"manager_id", actorID,
	)
	return nil
}

func (s Service) DenyApplication(ctx context.Context, id int64, actorID int64) error {
	app, err := s.Repo.GetApplication(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireManager(ctx, actorID, app.OpeningID); err != nil {
		return err
	}
	if err := denyTransitionError(app.Status); err != nil {
		return err
	}

	ok, err := s.Repo.TransitionApplication(ctx, id,
		[]entities.ApplicationStatus{entities.ApplicationStatusPosted},
		entities.ApplicationStatusDenied, actorID, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return s.applicationRaceError(ctx, id, denyTransitionError)
	}
	s.logger().Info("application denied",
		"event", "application_denied",
		"module", "recruiting/application-service",
		"layer", "application",
		"application_id", id,
		"manager_id", actorID,
	)
	return nil
}

// GetApplication is visible to the applicant and to managers of the
// opening's company.
func (s Service) GetApplication(ctx context.Context, id int64, actorID int64) (entities.Application, error) {
	app, err := s.Repo.GetApplication(ctx, id)
	if err != nil {
		return entities.Application{}, err
	}
	if app.ApplicantID == actorID {
		return app, nil
	}
	if err := s.requireManager(ctx, actorID, app.OpeningID); err != nil {
		if errors.Is(err, domainerrors.ErrCannotManageApplication) {
			return entities.Application{}, domainerrors.ErrCannotViewApplication
		}
		return entities.Application{}, err
	}
	return app, nil
}

func (s Service) ListMyApplications(ctx context.Context, actorID int64, status *entities.ApplicationStatus) ([]entities.Application, error) {
	return s.Repo.ListApplicationsByApplicant(ctx, actorID, status)
}

// ListApplicationsForMyOpenings returns applications against openings the
// actor created, regardless of who manages them now.
func (s Service) ListApplicationsForMyOpenings(ctx context.Context, actorID int64, status *entities.ApplicationStatus) ([]entities.Application, error) {
	openings, err := s.Openings.ListOpeningsCreatedBy(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if len(openings) == 0 {
		return []entities.Application{}, nil
	}
	ids := make([]int64, 0, len(openings))
	for _, opening := range openings {
		ids = append(ids, opening.ID)
	}
	return s.Repo.ListApplicationsForOpenings(ctx, ids, status)
}

func (s Service) requireManager(ctx context.Context, actorID, openingID int64) error {
	opening, ok, err := s.Openings.GetOpening(ctx, openingID)
	if err != nil {
		return err
	}
	if !ok {
		return domainerrors.ErrOpeningNotFound
	}
	allowed, err := s.Company.CanWorkWithOpenings(ctx, actorID, opening.CompanyID)
	if err != nil {
		return err
	}
	if !allowed {
		return domainerrors.ErrCannotManageApplication
	}
	return nil
}

// applicationRaceError re-reads the application after a conditional write
// changed no row and reports the transition error the current status implies.
func (s Service) applicationRaceError(ctx context.Context, id int64, classify func(entities.ApplicationStatus) error) error {
	app, err := s.Repo.GetApplication(ctx, id)
	if err != nil {
		return err
	}
	if err := classify(app.Status); err != nil {
		return err
	}
	return domainerrors.ErrApplicationNotFound
}

func cancelTransitionError(status entities.ApplicationStatus) error {
	switch status {
	case entities.ApplicationStatusCancelled:
		return domainerrors.ErrAlreadyCancelled
	case entities.ApplicationStatusAccepted, entities.ApplicationStatusDenied:
		return domainerrors.ErrAlreadyProceeded
	}
	return nil
}

func acceptTransitionError(status entities.ApplicationStatus) error {
	switch status {
	case entities.ApplicationStatusAccepted:
		return domainerrors.ErrAlreadyAccepted
	case entities.ApplicationStatusCancelled:
		return domainerrors.ErrCannotAcceptCancelled
	}
	return nil
}

func denyTransitionError(status entities.ApplicationStatus) error {
	switch status {
	case entities.ApplicationStatusAccepted:
		return domainerrors.ErrCannotDenyAccepted
	case entities.ApplicationStatusDenied:
		return domainerrors.ErrAlreadyDenied
	case entities.ApplicationStatusCancelled:
		return domainerrors.ErrCannotDenyCancelled
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
