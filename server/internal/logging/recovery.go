package logging

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RecoveryInterceptor converts a handler panic into codes.Internal and logs
// the panic value with its stack. The client never sees the panic text.
func RecoveryInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return recovery.UnaryServerInterceptor(
		recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
			logger.ErrorContext(ctx, "grpc: handler panicked",
				"request_id", RequestID(ctx),
				"panic", p,
				"stack", string(debug.Stack()),
			)
			return status.Error(codes.Internal, "internal error")
		}),
	)
}
