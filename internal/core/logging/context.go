package logging

import "context"

type contextKey string

const (
	commandKey contextKey = "command"
	backendKey contextKey = "backend"
)

// WithCommand records the CLI command being run.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// WithBackend records the storage backend serving the run.
func WithBackend(ctx context.Context, backend string) context.Context {
	return context.WithValue(ctx, backendKey, backend)
}

// GetCommand returns the command name from ctx, or "" if unset.
func GetCommand(ctx context.Context) string {
	if v, ok := ctx.Value(commandKey).(string); ok {
		return v
	}
	return ""
}

// GetBackend returns the storage backend from ctx, or "" if unset.
func GetBackend(ctx context.Context) string {
	if v, ok := ctx.Value(backendKey).(string); ok {
		return v
	}
	return ""
}
