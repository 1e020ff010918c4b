package database

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/armii/platform-admin/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

var (
	db          *gorm.DB
	err         error
	client_once sync.Once
)

// InitDB opens the process-wide connection once and runs migrations.
func InitDB(dbc config.Database) error {
	client_once.Do(func() {
		db, err = Open(dbc)
	})
	return err
}

// Open connects to the configured driver, pings it and migrates the schema.
func Open(dbc config.Database) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dbc.Driver {
	case config.DriverSQLite:
		// pure-Go driver registered by modernc.org/sqlite under the name "sqlite"
		dialector = sqlite.Dialector{DriverName: "sqlite", DSN: dbc.Path}
	default:
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbc.Host, dbc.Port, dbc.User, dbc.Pass, dbc.Name)
		dialector = postgres.New(
			postgres.Config{
				DSN:                  dsn,
				PreferSimpleProtocol: true,
			},
		)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		slog.Error("database: failed to initialize database", "driver", dbc.Driver, "error", err)
		return nil, fmt.Errorf("open %s database: %w", dbc.Driver, err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying database connection: %w", err)
	}
	if dbc.Driver == config.DriverSQLite {
		// sqlite allows one writer; ":memory:" databases are also per connection
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.Ping(); err != nil {
		slog.Error("database: failed to ping database", "driver", dbc.Driver, "error", err)
		return nil, fmt.Errorf("ping database: %w", err)
	}
	slog.Info("database: connection established", "driver", dbc.Driver)

	if err := AutoMigrate(conn); err != nil {
		slog.Error("database: migration failed", "error", err)
		return nil, fmt.Errorf("migrate: %w", err)
	}
	slog.Info("database: migrations completed")

	return conn, nil
}

func DBClient() *gorm.DB {
	if db == nil {
		panic("database is not initialized. Call InitDB first.")
	}
	return db
}

// Close releases the process-wide connection.
func Close() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
