package ctxutil

import "context"

type traceDataKey struct{}

// TraceData carries the identifiers the trace-context middleware minted
// for one request (or accepted from X-Trace-Id / X-Request-Id).
type TraceData struct {
	TraceID   string
	RequestID string
}

// LogFields returns the non-empty identifiers as logger key/value pairs.
// Safe on a nil receiver so callers can chain it off GetTraceData.
func (td *TraceData) LogFields() []interface{} {
	if td == nil {
		return nil
	}
	var fields []interface{}
	if td.TraceID != "" {
		fields = append(fields, "trace_id", td.TraceID)
	}
	if td.RequestID != "" {
		fields = append(fields, "request_id", td.RequestID)
	}
	return fields
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	val := ctx.Value(traceDataKey{})
	if td, ok := val.(*TraceData); ok {
		return td
	}
	return nil
}
