package slogx

import (
	"context"
	"log/slog"
)

const previewLen = 50

type ctxKey struct{}

func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("err", "<nil>")
	}

	return slog.String("err", err.Error())
}

func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

// Content logs a note body cut to its first 50 runes.
func Content(content string) slog.Attr {
	return slog.String("content", Preview(content, previewLen))
}

func Preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n]) + "..."
}

// WithAttrs returns a context whose attributes are appended to every record
// logged through this package with that context.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	prev := attrsFromContext(ctx)

	merged := make([]slog.Attr, 0, len(prev)+len(attrs))
	merged = append(merged, prev...)
	merged = append(merged, attrs...)

	return context.WithValue(ctx, ctxKey{}, merged)
}

func attrsFromContext(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}

	attrs, _ := ctx.Value(ctxKey{}).([]slog.Attr)
	return attrs
}
