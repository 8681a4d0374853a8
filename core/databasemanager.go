package core

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cardtime.app/cardtime/core/models"
)

type LogLevel int

const (
	LogLevelSilent LogLevel = iota + 1
	LogLevelError
	LogLevelWarn
	LogLevelInfo
)

type DatabaseManager struct {
	DB *gorm.DB
}

// New opens the connection pool. dsn must include the schema and
// parseTime is not needed since punch timestamps are stored as strings.
func New(dsn string, maxConnection int, level LogLevel) (*DatabaseManager, error) {
	gormLogLevel := logger.Silent
	switch level {
	case LogLevelError:
		gormLogLevel = logger.Error
	case LogLevelWarn:
		gormLogLevel = logger.Warn
	case LogLevelInfo:
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxConnection)
	sqlDB.SetMaxIdleConns(maxConnection)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping pool: %w", err)
	}

	return &DatabaseManager{DB: db}, nil
}

// Migrate creates or updates the schema for every table the server owns.
func (dm *DatabaseManager) Migrate() error {
	return dm.DB.AutoMigrate(
		&models.User{},
		&models.Card{},
		&models.CardHistory{},
		&models.Menu{},
		&models.MenuTranslation{},
		&models.Language{},
		&models.ForgotPassword{},
		&models.File{},
		&models.Connection{},
	)
}

// ResetConnections wipes the websocket connection registry. Called once at
// startup since rows from a previous process are stale by definition.
func (dm *DatabaseManager) ResetConnections() error {
	return dm.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Connection{}).Error
}

func (dm *DatabaseManager) Close() error {
	sqlDB, err := dm.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
