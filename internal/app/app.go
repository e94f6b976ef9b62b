package app

import (
	"context"

	"github.com/abdulachik/fanpost/internal/config"
	"github.com/abdulachik/fanpost/internal/db"
	"github.com/abdulachik/fanpost/internal/fanvue"
	"github.com/abdulachik/fanpost/internal/generator"
	"github.com/abdulachik/fanpost/internal/pipeline"
	"github.com/abdulachik/fanpost/internal/session"
)

// App is the main application container holding all dependencies.
type App struct {
	Config    *config.Config
	Store     *db.Store
	Session   *session.Store
	Client    *fanvue.Client
	Uploader  *fanvue.Uploader
	Publisher *fanvue.Publisher
	Pipeline  *pipeline.Pipeline
	Generator *generator.Client
}

// New creates a new application instance with all dependencies wired up.
// A previously persisted session is restored so login is not required on
// every run.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Create database connection
	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}

	// Restore session
	sess := session.NewStore(store)
	if err := sess.Load(ctx); err != nil {
		store.Close()
		return nil, err
	}

	// Create API client and the components on top of it
	client := fanvue.NewClient(fanvue.Config{
		BaseURL:     cfg.FanvueAPIBase,
		APIVersion:  cfg.FanvueAPIVersion,
		Credentials: sess,
	})
	uploader := fanvue.NewUploader(client, cfg.UploadTimeout)
	publisher := fanvue.NewPublisher(client)

	// Generator is optional; commands that need it validate the key first
	var gen *generator.Client
	if cfg.OpenAIAPIKey != "" {
		gen = generator.NewClient(generator.Config{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
		})
	}

	return &App{
		Config:    cfg,
		Store:     store,
		Session:   sess,
		Client:    client,
		Uploader:  uploader,
		Publisher: publisher,
		Pipeline:  pipeline.New(uploader, publisher),
		Generator: gen,
	}, nil
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
