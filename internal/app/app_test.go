package app

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-tender-aggregator/internal/config"
)

func TestOpenStorage_UnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := OpenStorage(context.Background(), config.DBConfig{Driver: "sqlite", URL: "file::memory:"})
	require.ErrorContains(t, err, `unknown driver "sqlite"`)
}

func TestOpenStorage_InvalidPostgresURL(t *testing.T) {
	t.Parallel()

	_, err := OpenStorage(context.Background(), config.DBConfig{Driver: config.DriverPostgres, URL: "://bad"})
	require.Error(t, err)
}

func TestOptionalDependencies_Disabled(t *testing.T) {
	t.Parallel()

	l, err := OpenLocker(config.RedisConfig{})
	require.NoError(t, err)
	require.Nil(t, l)

	opt, err := ArchiveOption(context.Background(), config.ArchiveConfig{})
	require.NoError(t, err)
	require.NotNil(t, opt)
}

func TestSetupLogger(t *testing.T) {
	t.Parallel()

	for _, env := range []string{EnvLocal, EnvDev, EnvProd, "unknown"} {
		require.NotNil(t, SetupLogger(env), env)
	}
	require.False(t, SetupLogger(EnvProd).Enabled(context.Background(), slog.LevelDebug))
	require.True(t, SetupLogger(EnvDev).Enabled(context.Background(), slog.LevelDebug))
}

func TestNewLogger_JSONInDev(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewLogger(&buf, EnvDev).Info("probe", slog.String("k", "v"))
	require.Contains(t, buf.String(), `"msg":"probe"`)
	require.Contains(t, buf.String(), `"k":"v"`)
}
