package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rdvdesk/core/internal/export"
	"github.com/rdvdesk/core/internal/intake"
	"github.com/rdvdesk/core/internal/repository"
)

// toStatus maps domain errors onto gRPC codes. op prefixes the message.
func toStatus(op string, err error) error {
	if err == nil {
		return nil
	}

	var (
		ve *intake.ValidationError
		fe *export.FormatError
		se *repository.StoreError
	)
	switch {
	case errors.As(err, &ve):
		return invalidArgument(op, ve)
	case errors.As(err, &fe):
		return status.Errorf(codes.FailedPrecondition, "%s: %v", op, fe)
	case errors.Is(err, repository.ErrNotFound):
		return status.Errorf(codes.NotFound, "%s: %v", op, err)
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s: %v", op, err)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s: %v", op, err)
	case errors.As(err, &se):
		return status.Errorf(codes.Internal, "%s: %v", op, se)
	default:
		return status.Errorf(codes.Internal, "%s: %v", op, err)
	}
}

// invalidArgument carries every offending field as a BadRequest violation,
// sorted by field name.
func invalidArgument(op string, ve *intake.ValidationError) error {
	keys := make([]string, 0, len(ve.Fields))
	for k := range ve.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	br := &errdetails.BadRequest{FieldViolations: make([]*errdetails.BadRequest_FieldViolation, 0, len(keys))}
	for _, k := range keys {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       k,
			Description: ve.Fields[k],
		})
	}

	st := status.New(codes.InvalidArgument, fmt.Sprintf("%s: %v", op, ve))
	withDetails, err := st.WithDetails(br)
	if err != nil {
		return st.Err()
	}
	return withDetails.Err()
}
