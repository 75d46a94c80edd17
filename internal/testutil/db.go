// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/makeup-studio/internal/audit"
	"github.com/BruksfildServices01/makeup-studio/internal/db"
	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

// NewDB opens a migrated in-memory SQLite database that lives for the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(db.SQLiteDSN(":memory:")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

// NewAuditDispatcher returns a dispatcher writing to gdb that is drained when
// the test ends.
func NewAuditDispatcher(t testing.TB, gdb *gorm.DB) *audit.Dispatcher {
	t.Helper()

	d := audit.NewDispatcher(audit.New(gdb), zerolog.Nop())
	t.Cleanup(d.Close)
	return d
}

// SeedService inserts a catalog entry.
func SeedService(t testing.TB, gdb *gorm.DB, name string, minutes int, price float64) models.Service {
	t.Helper()

	s := models.Service{Name: name, DurationMinutes: minutes, Price: price}
	if err := gdb.Create(&s).Error; err != nil {
		t.Fatalf("seed service %q: %v", name, err)
	}
	return s
}
