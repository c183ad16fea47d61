package components

import (
	"time"

	"gst-lifecycle/internal/infra/export"
	"gst-lifecycle/internal/pkg/clock"
	"gst-lifecycle/internal/pkg/config"
	"gst-lifecycle/internal/usecase"
	"gst-lifecycle/internal/usecase/commands"
	"gst-lifecycle/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		NewAuditExporter,
		fx.As(new(queries.AuditExporter)),
	),
	NewEngineOptions,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewLifecycleEngine,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewDocumentQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewEngineOptions(cfg config.Config) commands.EngineOptions {
	return commands.EngineOptions{
		GatewayTimeout: cfg.Gateway.Timeout,
		SuccessCodes:   cfg.Gateway.SuccessCodes,
	}
}

// NewAuditExporter renders timestamps in the zone the logs use.
func NewAuditExporter(cfg config.Config) *export.AuditXLSXExporter {
	return export.NewAuditXLSXExporter(time.FixedZone(cfg.Log.TimeZone, cfg.Log.TimeZoneOffset))
}
