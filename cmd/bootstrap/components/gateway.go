package components

import (
	"log/slog"

	"gst-lifecycle/internal/infra/gateway"
	"gst-lifecycle/internal/pkg/clock"
	"gst-lifecycle/internal/pkg/config"
	"gst-lifecycle/internal/usecase/shared"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			NewGatewayClient,
			fx.As(new(shared.ComplianceGateway)),
		),
		fx.Annotate(
			NewCredentialsProvider,
			fx.As(new(shared.CredentialsProvider)),
		),
	),
)

func NewGatewayClient(cfg config.Config, clk clock.Clock, logger *slog.Logger) (*gateway.Client, error) {
	return gateway.NewClient(cfg.Gateway, clk, logger)
}

func NewCredentialsProvider(cfg config.Config) *gateway.EnvCredentialsProvider {
	return gateway.NewEnvCredentialsProvider(cfg.Gateway)
}
