// Package secrets resolves credentials for optional cloud integrations.
// The desktop build normally runs with local storage and never touches it.
package secrets

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// SecretSource defines where secrets are loaded from
type SecretSource string

const (
	SourceEnvironment SecretSource = "environment"
	SourceVault       SecretSource = "vault"
	// SourceAuto uses the environment in development and the vault elsewhere
	SourceAuto SecretSource = "auto"
)

// Getter is the lookup surface shared by the environment and vault backends
type Getter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// Provider abstracts secret retrieval from different sources
type Provider struct {
	source SecretSource
	vault  Getter
	logger *zap.Logger
}

// ProviderConfig holds configuration for the secrets provider
type ProviderConfig struct {
	Source       SecretSource
	VaultName    string
	Environment  string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// NewProvider creates a secrets provider, connecting to Key Vault only when
// the resolved source requires it.
func NewProvider(cfg *ProviderConfig, logger *zap.Logger) (*Provider, error) {
	source := ResolveSource(cfg.Source, cfg.Environment, cfg.VaultName)

	p := &Provider{source: source, logger: logger}

	if source == SourceVault {
		vault, err := NewVaultClient(&VaultConfig{
			VaultName:    cfg.VaultName,
			CacheEnabled: cfg.CacheEnabled,
			CacheTTL:     cfg.CacheTTL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize vault client: %w", err)
		}
		p.vault = vault
	}

	logger.Info("Secrets provider initialized",
		zap.String("source", string(source)),
		zap.String("environment", cfg.Environment),
	)
	return p, nil
}

// ResolveSource turns "auto" (or an empty value) into a concrete source.
// Without a vault name there is nothing to connect to, so the environment wins.
func ResolveSource(source SecretSource, environment, vaultName string) SecretSource {
	if source != SourceAuto && source != "" {
		return source
	}
	switch environment {
	case "development", "local", "test", "":
		return SourceEnvironment
	}
	if vaultName == "" {
		return SourceEnvironment
	}
	return SourceVault
}

// GetSecret retrieves a secret by name. For the environment source the name
// is used as the variable name.
func (p *Provider) GetSecret(ctx context.Context, name string) (string, error) {
	switch p.source {
	case SourceEnvironment:
		value := os.Getenv(name)
		if value == "" {
			return "", fmt.Errorf("environment variable '%s' not set", name)
		}
		return value, nil
	case SourceVault:
		if p.vault == nil {
			return "", fmt.Errorf("vault client not initialized")
		}
		return p.vault.GetSecret(ctx, name)
	default:
		return "", fmt.Errorf("unknown secret source: %s", p.source)
	}
}

// GetSecretOrEnv prefers an explicitly set environment variable, then the configured source
func (p *Provider) GetSecretOrEnv(ctx context.Context, secretName, envName string) (string, error) {
	if envValue := os.Getenv(envName); envValue != "" {
		p.logger.Debug("Using environment variable override", zap.String("env_name", envName))
		return envValue, nil
	}
	return p.GetSecret(ctx, secretName)
}

// GetSecretOrEnvWithDefault combines GetSecretOrEnv with a default fallback
func (p *Provider) GetSecretOrEnvWithDefault(ctx context.Context, secretName, envName, defaultValue string) string {
	value, err := p.GetSecretOrEnv(ctx, secretName, envName)
	if err != nil {
		p.logger.Debug("Using default value",
			zap.String("secret_name", secretName),
			zap.String("env_name", envName),
		)
		return defaultValue
	}
	return value
}

// Source returns the resolved secret source
func (p *Provider) Source() SecretSource {
	return p.source
}
