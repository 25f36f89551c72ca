package main

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go"

	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/identity"
)

// newVerifier выбирает способ проверки личности по auth.mode.
// Возвращаемая функция освобождает ресурсы верификатора.
func newVerifier(ctx context.Context, cfg config.AuthConfig, app *firebase.App) (identity.Verifier, func(), error) {
	noop := func() {}

	switch cfg.Mode {
	case "firebase":
		if app == nil {
			return nil, noop, errors.New("firebase app is not initialized")
		}
		client, err := app.Auth(ctx)
		if err != nil {
			return nil, noop, fmt.Errorf("firebase auth client: %w", err)
		}
		return identity.NewFirebaseVerifier(client), noop, nil

	case "jwt":
		if cfg.JWKSURL != "" {
			v, err := identity.NewJWKSVerifier(ctx, cfg.JWKSURL, cfg.Issuer, cfg.Audience)
			if err != nil {
				return nil, noop, err
			}
			return v, v.Close, nil
		}
		v := identity.NewHMACVerifier([]byte(cfg.JWTSecret), cfg.Issuer, cfg.Audience)
		return v, v.Close, nil

	case "header":
		return identity.NewHeaderVerifier(), noop, nil
	}

	return nil, noop, fmt.Errorf("%w: %q", identity.ErrUnknownMode, cfg.Mode)
}
