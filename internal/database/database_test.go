package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Kola-Kola/personal-finance/internal/config"
	"github.com/Kola-Kola/personal-finance/internal/models"
	"github.com/Kola-Kola/personal-finance/internal/store"
	"github.com/Kola-Kola/personal-finance/internal/testutil"
)

func sqliteConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "nested", "finance.db"),
	}
}

func TestConfigURLs(t *testing.T) {
	pg := &Config{Driver: config.DriverPostgres, Host: "db", Port: "5432", User: "u", Password: "p@ss", DBName: "finance", SSLMode: "disable"}
	if got := pg.MigrateURL(); got != "postgres://u:p%40ss@db:5432/finance?sslmode=disable" {
		t.Errorf("unexpected postgres url %q", got)
	}
	if pg.MigrationsDir() != "postgres" {
		t.Errorf("unexpected migrations dir %q", pg.MigrationsDir())
	}

	lite := &Config{Driver: config.DriverSQLite, SQLitePath: "data/finance.db"}
	if got := lite.DSN(); got != "data/finance.db?_foreign_keys=1&_busy_timeout=5000" {
		t.Errorf("unexpected sqlite dsn %q", got)
	}
	if lite.MigrationsDir() != "sqlite" {
		t.Errorf("unexpected migrations dir %q", lite.MigrationsDir())
	}
}

func TestNewManagerRejectsMemoryDriver(t *testing.T) {
	_, err := NewManager(&Config{Driver: config.DriverMemory})
	if !errors.Is(err, ErrUnsupportedDriver) {
		t.Errorf("expected ErrUnsupportedDriver, got %v", err)
	}
}

func TestSQLiteMigrations(t *testing.T) {
	m, err := NewManager(sqliteConfig(t))
	testutil.AssertNoError(t, err)
	defer m.Close()

	testutil.AssertNoError(t, m.RunMigrations())
	// Running again is a no-op.
	testutil.AssertNoError(t, m.RunMigrations())

	version, dirty, err := m.MigrationVersion()
	testutil.AssertNoError(t, err)
	if version != 2 || dirty {
		t.Errorf("expected clean version 2, got %d (dirty=%v)", version, dirty)
	}

	s := store.NewGormStore(m.DB())
	tx := testutil.CreateTestTransaction(t, s, testutil.Recurring(500, models.CategoryMortgage,
		testutil.Override(550, testutil.Date(2024, time.June, 1))))

	got, err := s.Get(context.Background(), tx.ID)
	testutil.AssertNoError(t, err)
	if len(got.Overrides) != 1 {
		t.Errorf("expected override to round trip through migrated schema, got %d", len(got.Overrides))
	}

	testutil.AssertNoError(t, m.RollbackMigrations(1))
	version, _, err = m.MigrationVersion()
	testutil.AssertNoError(t, err)
	if version != 1 {
		t.Errorf("expected version 1 after rollback, got %d", version)
	}

	testutil.AssertNoError(t, m.RollbackMigrations(0))
	version, _, err = m.MigrationVersion()
	testutil.AssertNoError(t, err)
	if version != 0 {
		t.Errorf("expected no version after full rollback, got %d", version)
	}
}
