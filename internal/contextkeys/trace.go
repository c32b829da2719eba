package contextkeys

import "context"

type traceIDKey struct{}

// TraceHeader - заголовок, в котором trace_id приходит от шлюза и уходит в ответ.
const TraceHeader = "X-Trace-ID"

func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext возвращает пустую строку, если trace_id не задан.
func TraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	return traceID
}
