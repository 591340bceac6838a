package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// requestMeta travels with a request so every log line it produces can be correlated.
type requestMeta struct {
	requestID string
	userID    string
}

func metaFrom(ctx context.Context) requestMeta {
	if ctx == nil {
		return requestMeta{}
	}
	m, _ := ctx.Value(ctxKey{}).(requestMeta)
	return m
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	m := metaFrom(ctx)
	m.requestID = requestID
	return context.WithValue(ctx, ctxKey{}, m)
}

// WithUserID tags the context once authentication has resolved the caller.
func WithUserID(ctx context.Context, userID string) context.Context {
	m := metaFrom(ctx)
	m.userID = userID
	return context.WithValue(ctx, ctxKey{}, m)
}

// RequestID returns the correlation id or "" outside a request.
func RequestID(ctx context.Context) string {
	return metaFrom(ctx).requestID
}

func FromContext(ctx context.Context) *slog.Logger {
	l := GetLogger()
	m := metaFrom(ctx)
	switch {
	case m.requestID != "" && m.userID != "":
		return l.With("request_id", m.requestID, "user_id", m.userID)
	case m.requestID != "":
		return l.With("request_id", m.requestID)
	case m.userID != "":
		return l.With("user_id", m.userID)
	}
	return l
}

func CtxInfo(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

func CtxWarn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

func CtxError(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Error(msg, args...)
}

// CtxWithError logs at error level with err flattened into the "error" field.
func CtxWithError(ctx context.Context, msg string, err error, args ...any) {
	FromContext(ctx).Error(msg, append([]any{"error", err.Error()}, args...)...)
}
