package models

import "errors"

// Domain error taxonomy. Handlers translate these into HTTP status codes;
// everything else surfaces as an upstream failure.
var (
	ErrNotFound          = errors.New("flight not found")
	ErrUpstreamForbidden = errors.New("upstream denied access")
)
