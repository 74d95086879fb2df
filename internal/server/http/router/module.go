package router

import (
	"go.uber.org/fx"

	"github.com/polkiloo/dealership/internal/app"
	"github.com/polkiloo/dealership/internal/server/http/handlers"
)

func asHandlersFacade(f *app.DealershipFacade) handlers.DealershipFacade {
	return f
}

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(asHandlersFacade, Setup)
