package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrUnauthorized will throw if the operation needs an authenticated actor
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden will throw if the actor may not touch the target resource
	ErrForbidden = errors.New("forbidden")

	// ErrCacheMiss is an internal sentinel, it never crosses the usecase boundary
	ErrCacheMiss = errors.New("cache miss")
)
