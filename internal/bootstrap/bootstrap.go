package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	appMigrations "github.com/yigit/schoolrecords/internal/app/migrations"
	"github.com/yigit/schoolrecords/internal/config"
	"github.com/yigit/schoolrecords/internal/db"
	pkgAuth "github.com/yigit/schoolrecords/internal/pkg/auth"
	"github.com/yigit/schoolrecords/internal/pkg/logger"
	"github.com/yigit/schoolrecords/internal/seed"
)

// ConfigPathEnv overrides the default config file location
const ConfigPathEnv = "RECORDS_CONFIG"

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if p := os.Getenv(ConfigPathEnv); p != "" {
		configPath = p
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects, installs the schema and returns a Store over the pool.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.Store, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	hasher, err := pkgAuth.NewBcryptHasher(cfg.Security.BcryptCost)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("invalid password hashing configuration: %w", err)
	}
	lgr.Debug().Int("bcryptCost", hasher.Cost()).Msg("Password hasher configured")
	store := db.NewStore(database.Pool, hasher)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		store.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Installing database schema...")
	if err := appMigrations.NewMigrator(database.Pool).Migrate(context.Background()); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		store.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database schema up to date.")

	return store, nil
}

// SeedIfEnabled creates the demo data when seed.enabled is set. Failures are
// logged and do not stop startup.
func SeedIfEnabled(ctx context.Context, cfg *config.Config, store *db.Store, lgr zerolog.Logger) {
	if !cfg.Seed.Enabled {
		lgr.Debug().Msg("Seeding disabled")
		return
	}
	if err := seed.CreateDefaultData(ctx, store, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// Summary logs row counts so an operator can see the store is usable.
func Summary(ctx context.Context, store *db.Store, lgr zerolog.Logger) error {
	students, err := store.Repos().Students.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list students: %w", err)
	}
	lgr.Info().Int("students", len(students)).Msg("Records store ready")
	return nil
}
