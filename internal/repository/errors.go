package repository

import "errors"

var (
	ErrNotFound           = errors.New("entity not found")
	ErrConnectionFailed   = errors.New("database connection failed")
	ErrQueryFailed        = errors.New("database query failed")
	ErrBackendUnavailable = errors.New("commerce backend unavailable")
	ErrUnexpectedResponse = errors.New("unexpected commerce backend response")
)
