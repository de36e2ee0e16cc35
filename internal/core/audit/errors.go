package audit

import "errors"

var (
	ErrInvalidRules      = errors.New("audit: invalid rules")
	ErrSourceUnavailable = errors.New("audit: source unavailable")
	ErrNilSource         = errors.New("audit: source is required")
)
