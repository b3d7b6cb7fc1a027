package grpcgw

import (
	"fmt"

	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// sentinels the store reports verbatim as status messages.
var sentinels = []error{
	common.ErrorNotFound,
	common.ErrorAlreadyExists,
	common.ErrorUnauthorized,
	common.ErrReadOnlyTable,
	common.ErrValidationFailed,
	common.ErrTokenExpired,
	common.ErrRefreshTokenExpired,
	common.ErrInvalidToken,
	common.ErrLockboxLocked,
	common.ErrLockboxNotSet,
	common.ErrIncorrectPassword,
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}

	for _, s := range sentinels {
		if st.Message() == s.Error() {
			switch s {
			case common.ErrTokenExpired, common.ErrRefreshTokenExpired, common.ErrInvalidToken:
				return fmt.Errorf("%w: %w", common.ErrorUnauthorized, s)
			}
			return s
		}
	}

	switch st.Code() {
	case codes.NotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrValidationFailed, st.Message())
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
