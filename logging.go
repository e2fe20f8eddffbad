package rivet

import (
	"context"
	"log/slog"
	"time"
)

// LoggingInterceptor creates an interceptor that logs round trips using slog.
// It logs the start and end of each call, including duration, status, and
// error outcome.
func LoggingInterceptor(logger *slog.Logger) UnaryInterceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, req *ResolvedRequest, next RoundTripFunc) (*Response, error) {
		start := time.Now()

		logger.InfoContext(ctx, "request started",
			slog.String("method", req.Method),
			slog.String("url", req.URL),
		)

		res, err := next(ctx, req)
		duration := time.Since(start)

		if err != nil {
			logger.ErrorContext(ctx, "request failed",
				slog.String("method", req.Method),
				slog.String("url", req.URL),
				slog.Duration("duration", duration),
				slog.Any("error", err),
			)
		} else {
			logger.InfoContext(ctx, "request completed",
				slog.String("method", req.Method),
				slog.String("url", req.URL),
				slog.Int("status", res.Status),
				slog.Duration("duration", duration),
			)
		}

		return res, err
	}
}
