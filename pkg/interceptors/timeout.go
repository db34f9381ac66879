// interceptors - серверные gRPC-интерсепторы tender-service
// (health-check и служебные сервисы): таймаут, логирование, перехват паник.
package interceptors

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// WithTimeout навешивает таймаут d на контекст unary-вызова, если дедлайна ещё нет.
// d <= 0 делает интерсептор no-op.
func WithTimeout(d time.Duration) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx, cancel := withDeadline(ctx, d)
		defer cancel()

		return handler(ctx, req)
	}
}

// withDeadline уважает существующий дедлайн входящего контекста.
func withDeadline(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, d)
}
