package docagent

import "log/slog"

// Option configures a Toolkit instance.
type Option func(*Toolkit)

// WithLogger sets the diagnostic logger. Swallowed per-image failures and
// dispatch traces go here; nothing on this channel affects tool results.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Toolkit) {
		t.logger = logger
	}
}

// WithEditLogger sets the edit-history collaborator invoked once per
// successfully changed edit operation.
func WithEditLogger(l EditLogger) Option {
	return func(t *Toolkit) {
		t.editLogger = l
	}
}

// EditLogger records applied edit operations. Implementations live outside
// this engine; the default discards everything.
type EditLogger interface {
	LogEdit(filePath, operationType, target, newContent string, lineNumber int)
}

// nopEditLogger is the default EditLogger.
type nopEditLogger struct{}

func (nopEditLogger) LogEdit(string, string, string, string, int) {}
