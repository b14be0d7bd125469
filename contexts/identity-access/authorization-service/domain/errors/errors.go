package errors

import "errors"

var (
	ErrInvalidPermission       = errors.New("invalid user permission")
	ErrNoRightToGrantAdmin     = errors.New("no right to grant admin rights")
	ErrNoRightToRevokeAdmin    = errors.New("no right to revoke admin rights")
	ErrNoRightToGrantUserPerm  = errors.New("no right to grant user permission")
	ErrNoRightToRevokeUserPerm = errors.New("no right to revoke user permission")
)
