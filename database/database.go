package database

import (
	"cafein/config"
	"cafein/model"
	"fmt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"log"
)

// InitDatabase opens and migrates the configured database, exiting on failure.
func InitDatabase(cfg *config.Config) *gorm.DB {
	db, err := Open(cfg.DBDriver, cfg.DatabaseDSN, logger.Default.LogMode(logger.Info))
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Database is not reachable: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Printf("Database (%s) connected and migrated", cfg.DBDriver)
	return db
}

func Open(driver, dsn string, l logger.Interface) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	if l == nil {
		l = logger.Default.LogMode(logger.Silent)
	}
	return gorm.Open(dialector, &gorm.Config{Logger: l})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Owner{},
		&model.Cafe{},
		&model.CafeFacility{},
	)
}
