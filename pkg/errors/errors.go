package errors

import "errors"

var (
	// ErrOptimisticLock the row was changed by someone else since it was read
	ErrOptimisticLock = errors.New("record was modified by another request, reload and retry")

	// ErrUnavailable an optional collaborator (Redis, AI model) is not configured
	ErrUnavailable = errors.New("collaborator unavailable")
)
