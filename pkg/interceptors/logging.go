package interceptors

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/pribylovaa/go-tender-aggregator/internal/pkg/log"
)

// UnaryLoggingInterceptor кладёт в контекст логгер с request_id/method/peer
// и после вызова пишет одну запись msg="grpc" с кодом и длительностью.
// x-request-id берётся из metadata, иначе генерируется UUID.
func UnaryLoggingInterceptor(base *slog.Logger) grpc.UnaryServerInterceptor {
	if base == nil {
		base = slog.Default()
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		l := requestLogger(ctx, base, info.FullMethod)
		resp, err := handler(log.Into(ctx, l), req)
		logResult(ctx, l, err, start)

		return resp, err
	}
}

// StreamLoggingInterceptor - то же для stream-вызовов (health Watch).
func StreamLoggingInterceptor(base *slog.Logger) grpc.StreamServerInterceptor {
	if base == nil {
		base = slog.Default()
	}

	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		ctx := ss.Context()

		l := requestLogger(ctx, base, info.FullMethod)
		err := handler(srv, &ctxStream{ServerStream: ss, ctx: log.Into(ctx, l)})
		logResult(ctx, l, err, start)

		return err
	}
}

func requestLogger(ctx context.Context, base *slog.Logger, method string) *slog.Logger {
	var rid string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get("x-request-id"); len(v) > 0 && v[0] != "" {
			rid = v[0]
		}
	}
	if rid == "" {
		rid = uuid.NewString()
	}

	peerStr := "-"
	if p, ok := peer.FromContext(ctx); ok && p != nil && p.Addr != nil {
		peerStr = p.Addr.String()
	}

	return base.With(
		slog.String("request_id", rid),
		slog.String("method", method),
		slog.String("peer", peerStr),
	)
}

// logResult: Internal/Unknown/DataLoss -> Error, остальные коды -> Info.
func logResult(ctx context.Context, l *slog.Logger, err error, start time.Time) {
	code := status.Code(err)

	level := slog.LevelInfo
	switch code {
	case codes.Internal, codes.Unknown, codes.DataLoss:
		level = slog.LevelError
	}

	l.LogAttrs(ctx, level, "grpc",
		slog.String("code", code.String()),
		slog.Duration("dur", time.Since(start)),
	)
}

// ctxStream подменяет контекст серверного стрима.
type ctxStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *ctxStream) Context() context.Context { return s.ctx }
