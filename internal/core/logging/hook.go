package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies the command and backend stored in the event context onto
// the log event.
type ContextHook struct{}

// Run implements zerolog.Hook.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if cmd := GetCommand(ctx); cmd != "" {
		e.Str("command", cmd)
	}

	if backend := GetBackend(ctx); backend != "" {
		e.Str("backend", backend)
	}
}
