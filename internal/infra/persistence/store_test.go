package persistence

import (
	"io"
	"log/slog"
	"testing"

	"gatekeeper/config"
	"gatekeeper/internal/infra/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newParams(t *testing.T, driver string) Params {
	t.Helper()

	cfg := &config.Config{}
	cfg.Store.Driver = driver

	return Params{
		Lifecycle: fxtest.NewLifecycle(t),
		Config:    cfg,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestNewCredentialRepository_Memory(t *testing.T) {
	for _, driver := range []string{config.StoreDriverMemory, ""} {
		repo, err := NewCredentialRepository(newParams(t, driver))
		require.NoError(t, err)
		assert.IsType(t, &memory.CredentialRepository{}, repo)
	}
}

func TestNewCredentialRepository_UnknownDriver(t *testing.T) {
	repo, err := NewCredentialRepository(newParams(t, "mongo"))
	require.Error(t, err)
	assert.Nil(t, repo)
	assert.Contains(t, err.Error(), "unsupported store driver: mongo")
}
