package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrTransient marks storage conflicts that succeed on retry.
	ErrTransient     = errors.New("transient storage conflict, retry the request")
	ErrJobInProgress = errors.New("job is already running")
)
