package secrets_test

import (
	"context"
	"testing"

	"github.com/imanage/imanage-api/internal/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolveSource(t *testing.T) {
	tests := []struct {
		name        string
		source      secrets.SecretSource
		environment string
		vaultName   string
		expected    secrets.SecretSource
	}{
		{"explicit environment", secrets.SourceEnvironment, "production", "kv", secrets.SourceEnvironment},
		{"explicit vault", secrets.SourceVault, "development", "kv", secrets.SourceVault},
		{"auto in development", secrets.SourceAuto, "development", "kv", secrets.SourceEnvironment},
		{"auto in production with vault", secrets.SourceAuto, "production", "kv", secrets.SourceVault},
		{"auto in production without vault", secrets.SourceAuto, "production", "", secrets.SourceEnvironment},
		{"empty source", "", "", "", secrets.SourceEnvironment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, secrets.ResolveSource(tt.source, tt.environment, tt.vaultName))
		})
	}
}

func TestProvider_EnvironmentSource(t *testing.T) {
	t.Setenv("IMANAGE_TEST_SECRET", "s3cret")

	p, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:      secrets.SourceEnvironment,
		Environment: "development",
	}, zap.NewNop())
	require.NoError(t, err)

	value, err := p.GetSecret(context.Background(), "IMANAGE_TEST_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", value)

	_, err = p.GetSecret(context.Background(), "IMANAGE_TEST_MISSING")
	assert.Error(t, err)

	assert.Equal(t, "fallback", p.GetSecretOrEnvWithDefault(context.Background(), "IMANAGE_TEST_MISSING", "IMANAGE_TEST_MISSING_ENV", "fallback"))
}

func TestProvider_EnvOverride(t *testing.T) {
	t.Setenv("OVERRIDE_ENV", "from-env")

	p, err := secrets.NewProvider(&secrets.ProviderConfig{Source: secrets.SourceEnvironment}, zap.NewNop())
	require.NoError(t, err)

	value, err := p.GetSecretOrEnv(context.Background(), "unused-secret", "OVERRIDE_ENV")
	require.NoError(t, err)
	assert.Equal(t, "from-env", value)
}
