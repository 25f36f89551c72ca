package firebaseapp

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go"
	"google.golang.org/api/option"
)

// Config параметры подключения к проекту Firebase
type Config struct {
	ProjectID       string
	CredentialsFile string // пусто: Application Default Credentials
}

// NewApp создает приложение Firebase Admin SDK.
// Одно приложение обслуживает и Firestore, и проверку ID-токенов.
func NewApp(ctx context.Context, cfg Config) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: project=%s: %v", ErrInitApp, cfg.ProjectID, err)
	}
	return app, nil
}
