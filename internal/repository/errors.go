package repository

import "errors"

// ErrUnavailable is returned when the backing store is temporarily refusing
// calls, e.g. because a circuit breaker is open.
var ErrUnavailable = errors.New("lesson store unavailable")
