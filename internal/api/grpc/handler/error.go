package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/courseauth/internal/model"
)

func handleError(err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidSession),
		errors.Is(err, model.ErrSessionRevoked),
		errors.Is(err, model.ErrSessionExpired):
		return status.Error(codes.Unauthenticated, "session is not valid")
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}

// validationError converts a validator failure to InvalidArgument naming
// the first offending field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return status.Errorf(codes.InvalidArgument, "invalid %s: failed %s", fe.Field(), fe.Tag())
	}
	return status.Error(codes.InvalidArgument, err.Error())
}
