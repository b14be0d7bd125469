package errors

import "errors"

var (
	ErrOpeningNotFound = errors.New("opening with such id doesn't exist")
	ErrTitleEmpty      = errors.New("opening title cannot be empty")

	// ErrNoRightToWorkWithOpenings covers create, update and close alike:
	// all of them require the work_with_openings permission on the company.
	ErrNoRightToWorkWithOpenings = errors.New("you have not got the right to work with openings of this company")

	// ErrOpeningClosed is returned from edits on a closed opening when the
	// deployment disables editing closed openings.
	ErrOpeningClosed = errors.New("cannot edit already closed opening")
)
