package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	connMaxAttempts  = 5
	connInitialDelay = 500 * time.Millisecond
)

func BuildDSN(dbname, host, port, user, pas string) string {
	return fmt.Sprintf("user=%s password=%s host=%s port=%s dbname=%s sslmode=disable", user, pas, host, port, dbname)
}

func GetDbConn(ctx context.Context, dbname, host, port, user, pas string) (*gorm.DB, error) {
	return GetDbConnByDSN(ctx, BuildDSN(dbname, host, port, user, pas))
}

// GetDbConnByDSN 連線失敗時以指數退避重試, 最多 connMaxAttempts 次
func GetDbConnByDSN(ctx context.Context, dsn string) (*gorm.DB, error) {
	var lastErr error
	delay := connInitialDelay
	for attempt := 1; attempt <= connMaxAttempts; attempt++ {
		db, err := open(ctx, dsn)
		if err == nil {
			return db, nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", delay).Msg("database connection failed")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return nil, fmt.Errorf("connect database after %d attempts: %w", connMaxAttempts, lastErr)
}

func open(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}
