package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/spotjobs/spotjobs-api/internal/api"
	"github.com/spotjobs/spotjobs-api/internal/infrastructure/db/mongo"
	"github.com/spotjobs/spotjobs-api/internal/infrastructure/db/redis"
	"github.com/spotjobs/spotjobs-api/internal/infrastructure/email"
	"github.com/spotjobs/spotjobs-api/internal/infrastructure/queue"
	"github.com/spotjobs/spotjobs-api/internal/infrastructure/scoring"
	"github.com/spotjobs/spotjobs-api/internal/infrastructure/storage"
	"github.com/spotjobs/spotjobs-api/internal/pkg/config"
	"github.com/spotjobs/spotjobs-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Redis ---
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- AWS clients ---
	awsOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWS.Region),
	}
	if cfg.AWS.AccessKeyID != "" {
		awsOpts = append(awsOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWS.AccessKeyID, cfg.AWS.SecretAccessKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("aws config failed")
	}

	notifier := email.NewNotifier(awsCfg, cfg.AWS.SESSender)
	blobs := storage.NewBlobStore(awsCfg, cfg.AWS.S3Bucket)
	invoker := scoring.NewInvoker(awsCfg, cfg.Scoring.FunctionName, cfg.BackendURL, cfg.Scoring.CallbackToken)

	// --- Scoring dispatcher ---
	dispatcher := queue.NewDispatcher(cfg.Scoring.Workers, invoker, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		Mongo:         db,
		Redis:         rdb,
		Notifier:      notifier,
		Blobs:         blobs,
		Dispatcher:    dispatcher,
		JWTSecret:     cfg.JWTSecret,
		CallbackToken: cfg.Scoring.CallbackToken,
		Log:           log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// ensureIndexes creates the unique and listing indexes before the server
// starts accepting traffic. The unique (user_id, job_id) application index is
// a correctness requirement, not an optimisation.
func ensureIndexes(ctx context.Context, db *mongodriver.Database) error {
	if err := mongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongo.NewJobRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongo.NewApplicationRepository(db).EnsureIndexes(ctx)
}
