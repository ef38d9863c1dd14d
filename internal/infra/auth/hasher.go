package auth

import (
	"gatekeeper/config"
	"gatekeeper/internal/domain/service"
)

// NewPasswordHasher builds the hasher selected by auth.algorithm.
func NewPasswordHasher(cfg *config.Config) service.PasswordHasher {
	authCfg := cfg.Auth
	if authCfg == nil {
		authCfg = &config.AuthConfig{}
	}

	if authCfg.Algorithm == config.AlgorithmArgon2id {
		return NewArgon2Hasher(Argon2Params{
			Time:    authCfg.Argon2Time,
			Memory:  authCfg.Argon2Memory,
			Threads: authCfg.Argon2Threads,
		}, authCfg.MaxConcurrentHashes)
	}

	return NewBcryptHasherWithCost(authCfg.BcryptCost, authCfg.MaxConcurrentHashes)
}
