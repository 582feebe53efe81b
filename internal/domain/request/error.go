package request

import (
	"errors"
)

var (
	ErrNotFound = errors.New("request not found")
	// ErrAlreadyResolved: a request leaves pending exactly once; there is no
	// un-rejecting and no re-fulfilling.
	ErrAlreadyResolved = errors.New("request already resolved")
	// ErrFieldMismatch: fulfillment answers must cover the declared fields
	// exactly, matched by name.
	ErrFieldMismatch = errors.New("answers do not match requested fields")
	// ErrNotFulfilled: reveal is only meaningful once the request carries
	// encrypted answers.
	ErrNotFulfilled = errors.New("request not fulfilled yet")
	ErrNotRequester = errors.New("request belongs to another requester")
	ErrInvalidSpec  = errors.New("invalid request specification")
	// ErrTokenMismatch: the presented key token decodes fine but is not the
	// key this request was created with; the caller does not hold the link.
	ErrTokenMismatch = errors.New("token does not match request key")
)
