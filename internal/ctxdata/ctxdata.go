package ctxdata

import (
	"context"
)

type traceIDKey struct{}
type studentIDKey struct{}

var (
	traceIDKeyInstance   = traceIDKey{}
	studentIDKeyInstance = studentIDKey{}
)

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKeyInstance, traceID)
}

func GetTraceID(ctx context.Context) (string, bool) {
	v := ctx.Value(traceIDKeyInstance)
	traceID, ok := v.(string)
	return traceID, ok
}

func WithStudentID(ctx context.Context, studentID string) context.Context {
	return context.WithValue(ctx, studentIDKeyInstance, studentID)
}

func GetStudentID(ctx context.Context) (string, bool) {
	v := ctx.Value(studentIDKeyInstance)
	studentID, ok := v.(string)
	return studentID, ok
}
