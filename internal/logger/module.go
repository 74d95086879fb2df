package logger

import "go.uber.org/fx"

// Module wires the configured slog logger for dependency injection.
var Module = fx.Provide(New)
