// Package persistence selects the credential store backend from configuration.
package persistence

import (
	"log/slog"

	"gatekeeper/config"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/errors"
	"gatekeeper/internal/infra/persistence/memory"
	"gatekeeper/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// Params defines the dependencies of the credential store, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewCredentialRepository builds the store named by store.driver.
func NewCredentialRepository(params Params) (repository.CredentialRepository, error) {
	switch params.Config.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}
		params.Logger.Info("Using postgres credential store")

		return postgres.NewCredentialRepository(db), nil
	case config.StoreDriverMemory, "":
		params.Logger.Warn("Using in-memory credential store, accounts are lost on restart")

		return memory.NewCredentialRepository(), nil
	default:
		return nil, errors.Errorf("unsupported store driver: %s", params.Config.Store.Driver)
	}
}
