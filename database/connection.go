// Package database opens the gorm connection for the configured engine, migrates the
// schema and loads the demo data.
package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/jimlawless/whereami"
	_ "github.com/lib/pq"
	"github.com/mytheresa/go-inventory/config"
	"github.com/mytheresa/go-inventory/pkg/e"
	"github.com/mytheresa/go-inventory/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const slowQueryThreshold = 200 * time.Millisecond

// Open connects to the engine selected by cfg.Driver.
func Open(cfg *config.DatabaseConfig, log logger.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{
		Logger: NewGormLogger(log, cfg.QueryLog, slowQueryThreshold),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to connect to database: %w", err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to get database instance: %w", err))
	}

	if cfg.Driver == config.DriverSQLite {
		// One writer at a time; also keeps a ":memory:" database alive on its only connection.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to ping database: %w", err))
	}

	log.Infof("Database connection established (%s)", describe(cfg))
	return db, nil
}

func dialectorFor(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(cfg.SQLitePath + "?_pragma=foreign_keys(1)"), nil
	case config.DriverPostgres:
		if cfg.PgDriver == "pq" {
			return postgres.New(postgres.Config{DriverName: "postgres", DSN: cfg.GetDSN()}), nil
		}
		return postgres.Open(cfg.GetDSN()), nil
	}
	return nil, fmt.Errorf("%w: no database for DB_DRIVER %q", e.ErrIncorrectEnvVariable, cfg.Driver)
}

func describe(cfg *config.DatabaseConfig) string {
	if cfg.Driver == config.DriverSQLite {
		return "sqlite " + cfg.SQLitePath
	}
	return fmt.Sprintf("postgres/%s %s@%s:%s/%s", cfg.PgDriver, cfg.User, cfg.Host, cfg.Port, cfg.DBName)
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
