package interceptors

import (
	"context"
	"log/slog"
	"runtime/debug"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pribylovaa/go-tender-aggregator/internal/pkg/log"
)

// Recover перехватывает паники unary-обработчиков, логирует метод и стек
// и отвечает codes.Internal без деталей.
// Логгер берётся из контекста, иначе base, иначе slog.Default().
func Recover(base *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logPanic(ctx, base, info.FullMethod, r)
				resp, err = nil, status.Error(codes.Internal, "internal server error")
			}
		}()

		return handler(ctx, req)
	}
}

// RecoverStream - то же для stream-обработчиков.
func RecoverStream(base *slog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logPanic(ss.Context(), base, info.FullMethod, r)
				err = status.Error(codes.Internal, "internal server error")
			}
		}()

		return handler(srv, ss)
	}
}

func logPanic(ctx context.Context, base *slog.Logger, method string, r any) {
	l := log.From(ctx)
	if l == slog.Default() && base != nil {
		l = base
	}

	l.Error("panic_recovered",
		slog.String("method", method),
		slog.Any("panic", r),
		slog.String("stack", string(debug.Stack())),
	)
}
