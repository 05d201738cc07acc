package providers

import (
	"github.com/samber/do/v2"

	"github.com/driftapp/drift-server/internal/auth"
	"github.com/driftapp/drift-server/internal/config"
)

// AuthKey is the hex-encoded symmetric token key.
type AuthKey string

// ProvideAuthKey loads the token key from disk, generating one on first run.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)

	key, err := auth.LoadOrGenerateKey(cfg.Store.DataPath)
	if err != nil {
		return "", err
	}
	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	key := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService(string(key), cfg.Auth.TokenDuration)
}
