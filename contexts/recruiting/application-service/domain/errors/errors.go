package errors

import "errors"

var (
	ErrResumeNotFound      = errors.New("cannot load resume with specified id")
	ErrNotResumeOwner      = errors.New("it's not your resume")
	ErrResumeFilenameEmpty = errors.New("resume filename cannot be empty")
	ErrApplicationNotFound = errors.New("cannot load application with specified id")
	ErrOpeningNotFound     = errors.New("cannot load job opening with specified id")

	// ErrOpeningClosed applies only when the deployment disables applying
	// to closed openings.
	ErrOpeningClosed = errors.New("cannot apply to closed opening")

	ErrNotApplicationOwner     = errors.New("it's not your application")
	ErrCannotManageApplication = errors.New("you cannot manage this opening's application")

	// ErrCannotViewApplication reports both read-access failures at once:
	// the caller is neither the applicant nor a manager of the opening.
	ErrCannotViewApplication = errors.New("it's not your application and you cannot manage this opening's application")

	ErrAlreadyCancelled      = errors.New("already cancelled")
	ErrAlreadyProceeded      = errors.New("cannot cancel already proceeded application")
	ErrAlreadyAccepted       = errors.New("already accepted")
	ErrAlreadyDenied         = errors.New("already denied")
	ErrCannotAcceptCancelled = errors.New("cannot accept already cancelled application")
	ErrCannotDenyCancelled   = errors.New("cannot deny already cancelled application")
	ErrCannotDenyAccepted    = errors.New("cannot deny already accepted application")
)
