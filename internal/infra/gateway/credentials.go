package gateway

import (
	"context"

	"gst-lifecycle/internal/pkg/config"
	"gst-lifecycle/internal/usecase/shared"
)

// EnvCredentialsProvider serves the GATEWAY_* credentials loaded at startup.
type EnvCredentialsProvider struct {
	creds shared.Credentials
}

func NewEnvCredentialsProvider(cfg config.GatewayConfig) *EnvCredentialsProvider {
	return &EnvCredentialsProvider{creds: shared.Credentials{
		Username:     cfg.Username,
		Password:     cfg.Password,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		GSTIN:        cfg.GSTIN,
	}}
}

func (p *EnvCredentialsProvider) Credentials(_ context.Context) (shared.Credentials, error) {
	return p.creds, nil
}
