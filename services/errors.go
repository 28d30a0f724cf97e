package services

import "errors"

// Sentinel errors services return so handlers can map HTTP status codes.
// Transient infrastructure failures (cache, push transport) are absorbed
// inside the services and never surface through these.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
