package components

import (
	"gst-lifecycle/internal/handler"
	"gst-lifecycle/internal/handler/api"
	"gst-lifecycle/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewDocumentHandler,
		api.NewTaxHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
