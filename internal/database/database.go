// Package database opens the configured storage backend and hands back a
// repository.Store.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mindora/wellness/internal/config"
	"github.com/mindora/wellness/internal/models"
	"github.com/mindora/wellness/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a PostgreSQL pool.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected", "driver", config.DriverPostgres)
	return db, nil
}

// Migrate runs AutoMigrate for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.MoodEntry{},
		&models.JournalEntry{},
		&models.ExerciseSession{},
		&models.SystemLog{},
	)
}

// ConnectMongo opens a client and verifies it with a ping.
func ConnectMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	slog.Info("database connected", "driver", config.DriverMongo, "database", cfg.MongoDB)
	return client, nil
}

// Backend is an open store plus, for PostgreSQL, the GORM handle the log
// sink and cleanup job need.
type Backend struct {
	Store *repository.Store
	SQL   *gorm.DB
}

// Open connects to the backend named by cfg.DBDriver. PostgreSQL schemas are
// migrated and Mongo indexes are ensured before returning.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		db, err := Connect(cfg)
		if err != nil {
			return nil, err
		}
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
		return &Backend{Store: repository.NewPostgresStore(db), SQL: db}, nil

	case config.DriverMongo:
		client, err := ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		mdb := client.Database(cfg.MongoDB)
		if err := repository.EnsureIndexes(ctx, mdb); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &Backend{Store: repository.NewMongoStore(client, mdb)}, nil

	case config.DriverMemory:
		slog.Warn("using in-memory storage, data will not survive a restart")
		return &Backend{Store: repository.NewMemoryStore()}, nil
	}
	return nil, &config.Error{Key: "DB_DRIVER", Reason: "unsupported driver " + cfg.DBDriver}
}
