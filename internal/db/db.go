package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/makeup-studio/internal/config"
	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

func NewDB(cfg *config.Config, logger zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBBackend {
	case config.BackendPostgres:
		dialector = postgres.Open(cfg.DBUrl)
	case config.BackendSQLite:
		dialector = sqlite.Open(SQLiteDSN(cfg.DBUrl))
	default:
		return nil, fmt.Errorf("unsupported database backend %q", cfg.DBBackend)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	if cfg.DBBackend == config.BackendSQLite {
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Info().
		Str("backend", cfg.DBBackend).
		Msg("database ready")

	return db, nil
}

// SQLiteDSN turns on foreign key enforcement, which SQLite leaves off per
// connection unless asked.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Service{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
