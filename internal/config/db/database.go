package db

import (
	"fmt"
	"time"

	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/internal/domain/audit"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/domain/submission"
	"github.com/linskybing/formflow/internal/domain/tenant"
	"github.com/linskybing/formflow/internal/domain/user"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Models lists every table owned by the service, parents first.
func Models() []any {
	return []any{
		&tenant.Tenant{},
		&user.User{},
		&form.Form{},
		&form.Question{},
		&submission.Submission{},
		&submission.Answer{},
		&audit.AuditLog{},
	}
}

func dialector() (gorm.Dialector, error) {
	switch config.DbDriver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			config.DbHost,
			config.DbPort,
			config.DbUser,
			config.DbPassword,
			config.DbName,
		)
		return postgres.Open(dsn), nil
	case "sqlite", "":
		return sqlite.Open(config.SqlitePath + "?_busy_timeout=5000&_foreign_keys=on"), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", config.DbDriver)
	}
}

// Open connects with the configured driver. Duplicate-key errors are
// translated to gorm.ErrDuplicatedKey.
func Open() (*gorm.DB, error) {
	d, err := dialector()
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if config.LogLevel == "debug" {
		level = logger.Info
	}

	gdb, err := gorm.Open(d, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", config.DbDriver, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if config.DbDriver == "postgres" {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		// one writer at a time keeps SQLite away from SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	}
	return gdb, nil
}

func Init(log *zap.Logger) error {
	gdb, err := Open()
	if err != nil {
		return err
	}
	DB = gdb
	log.Info("database connected", zap.String("driver", config.DbDriver))
	return nil
}

func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func InitWithGormDB(gormDB *gorm.DB) {
	DB = gormDB
}
