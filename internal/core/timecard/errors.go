package timecard

import "errors"

var (
	ErrInvalidIdentityStrategy = errors.New("timecard: invalid identity strategy")
	ErrMissingIdentity         = errors.New("timecard: missing employee identity")
	ErrMissingTimestamp        = errors.New("timecard: missing timestamp")
	ErrInvalidTimestamp        = errors.New("timecard: invalid timestamp")
)
