package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/jonathan/career-platform/internal/config"
	"github.com/jonathan/career-platform/internal/db"
	"github.com/jonathan/career-platform/internal/llm"
	validators "github.com/jonathan/career-platform/internal/schemas"
	"github.com/jonathan/career-platform/internal/server"
	"github.com/jonathan/career-platform/internal/session"
	"github.com/jonathan/career-platform/internal/storage"
	schemadocs "github.com/jonathan/career-platform/schemas"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the authentication, profile, navigation, and resume review endpoints.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		database.Close()
		return err
	}

	blobs, err := newBlobStore(ctx, cfg.Storage)
	if err != nil {
		database.Close()
		return err
	}

	parser, closeParser, err := newResumeParser(ctx, cfg)
	if err != nil {
		database.Close()
		return err
	}
	defer closeParser()

	srv, err := server.New(server.Options{
		Port:     cfg.Port,
		DB:       database,
		CloseDB:  database.Close,
		Sessions: sessions,
		Storage:  blobs,
		Parser:   parser,
		Password: cfg.Password,
		JWT:      cfg.JWT,
	})
	if err != nil {
		database.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

func newSessionStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return session.NewRedisStore(client, "", cfg.ReviewTTL), nil
}

func newBlobStore(ctx context.Context, sc config.StorageConfig) (storage.Store, error) {
	switch sc.Backend {
	case config.StorageS3:
		return storage.NewS3Store(ctx, storage.S3Options{
			Bucket:        sc.Bucket,
			Region:        sc.Region,
			Endpoint:      sc.Endpoint,
			AccessKey:     sc.AccessKey,
			SecretKey:     sc.SecretKey,
			PublicBaseURL: sc.PublicBaseURL,
		})
	case config.StorageLocal:
		return storage.NewLocalStore(sc.LocalDir, sc.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", sc.Backend)
	}
}

func newResumeParser(ctx context.Context, cfg *config.Config) (*llm.Parser, func(), error) {
	client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create model client: %w", err)
	}

	validator, err := validators.NewValidator(schemadocs.ParsedResume())
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to compile parser schema: %w", err)
	}

	return llm.NewParser(client, validator), func() { _ = client.Close() }, nil
}
