package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"chilume_backend/internals/configs"
	"chilume_backend/internals/logger"
)

// ConnectDB opens the Postgres pool. PreferSimpleProtocol keeps PgBouncer
// in transaction pooling mode happy.
func ConnectDB(cfg configs.DBConfig) (*gorm.DB, error) {
	logger.LogI("connecting to postgres", "host", cfg.Host, "db", cfg.Name)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	TunePool(db)
	logger.LogI("postgres connected")
	return db, nil
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.LogW("pool tune failed", "error", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// WarmUpQueries fills the pool in the background once the server is up.
func WarmUpQueries(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err == nil {
			err = db.WithContext(ctx).Exec("SELECT 1 FROM events LIMIT 1").Error
		}
		if err != nil {
			logger.LogW("warm-up query failed", "error", err)
		}
	}()
}
