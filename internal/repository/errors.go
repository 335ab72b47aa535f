package repository

import "errors"

// Storage-level sentinels. Implementations translate their native failure
// modes (SQLSTATEs, map lookups) into exactly these so services never
// inspect driver errors.
var (
	ErrNotFound              = errors.New("account not found")
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrDuplicateHandle       = errors.New("handle already taken")
	ErrDuplicateSubscription = errors.New("already subscribed to channel")
	ErrUnavailable           = errors.New("storage unavailable")
)
