package errors

import "errors"

var (
	ErrCompanyNameEmpty = errors.New("company name cannot be empty")
	ErrCompanyNotFound  = errors.New("no company with such id")
	ErrRequestNotFound  = errors.New("there is no create company request with such id")

	// A requester may have at most one posted request per company name.
	ErrDuplicateRequest = errors.New("create company request for this name is already in process")

	ErrNotRequestOwner = errors.New("cannot cancel create company requests which are not yours")

	ErrRequestAlreadyCancelled = errors.New("already cancelled")
	ErrRequestAlreadyProceeded = errors.New("cannot cancel already proceeded request")
	ErrRequestAlreadyAccepted  = errors.New("already accepted")
	ErrRequestAlreadyDenied    = errors.New("already denied")
	ErrCannotAcceptCancelled   = errors.New("cannot accept already cancelled request")
	ErrCannotDenyAccepted      = errors.New("cannot deny already accepted request")
	ErrCannotDenyCancelled     = errors.New("cannot deny already cancelled request")

	ErrNoPermissionToAdjudicate   = errors.New("no permission to accept company requests")
	ErrNoRightToGrantCompanyPerm  = errors.New("no right to grant company permission")
	ErrNoRightToRevokeCompanyPerm = errors.New("no right to revoke company permission")
	ErrInvalidPermission          = errors.New("invalid company permission")
)
