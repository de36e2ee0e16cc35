package handler

import (
	"context"
	"errors"

	"github.com/ogurasousui/timecard-audit/internal/core/audit"
	"github.com/ogurasousui/timecard-audit/internal/core/timecard"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, timecard.ErrInvalidIdentityStrategy),
		errors.Is(err, audit.ErrNilSource):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, audit.ErrSourceUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, audit.ErrInvalidRules):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
