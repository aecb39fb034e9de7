package middleware

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Logging writes one line per call. Server-side failures (Internal,
// Unknown) are logged at error level, everything else at info.
func Logging(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)
		code := status.Code(err)

		ev := log.Info()
		if code == codes.Internal || code == codes.Unknown {
			ev = log.Error().Err(err)
		}
		ev.
			Str("method", info.FullMethod).
			Str("peer", peerHost(ctx)).
			Str("code", code.String()).
			Dur("elapsed", time.Since(start)).
			Msg("grpc call")
		return resp, err
	}
}
