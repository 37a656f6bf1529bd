package llm

import (
	"context"
	"log/slog"
	"time"
)

// LoggingMiddleware logs each completion at debug level: provider, model,
// message count, duration, token usage, and any error.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(ctx context.Context, req Request, next func(context.Context, Request) (*Response, error)) (*Response, error) {
		start := time.Now()
		resp, err := next(ctx, req)
		elapsed := time.Since(start)

		if err != nil {
			logger.Warn("llm completion failed",
				"provider", req.Provider,
				"model", req.Model,
				"messages", len(req.Messages),
				"duration", elapsed,
				"error", err)
			return nil, err
		}

		logger.Debug("llm completion",
			"provider", resp.Provider,
			"model", resp.Model,
			"messages", len(req.Messages),
			"duration", elapsed,
			"input_tokens", resp.Usage.InputTokens,
			"output_tokens", resp.Usage.OutputTokens)
		return resp, nil
	}
}

// RetryMiddleware wraps the downstream call with the given retry policy.
func RetryMiddleware(policy RetryPolicy) Middleware {
	return func(ctx context.Context, req Request, next func(context.Context, Request) (*Response, error)) (*Response, error) {
		return Retry(ctx, policy, func(ctx context.Context) (*Response, error) {
			return next(ctx, req)
		})
	}
}
