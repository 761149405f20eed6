// Package logging builds the slog loggers used across cinescout.
//
// It exposes JSON and console handlers behind a single Options struct, plus
// attribute helpers so call sites stay terse. Component loggers stamp a
// standardized "component" field used by the console handler's prefix.
package logging
