package clock

import "go.uber.org/fx"

// Module provides the wall clock.
var Module = fx.Provide(NewSystem)
