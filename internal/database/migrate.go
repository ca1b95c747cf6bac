package database

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DB wraps the gorm connection
type DB struct {
	*gorm.DB
}

// Open opens a connection to the SQLite database with foreign keys and WAL enabled.
func Open(path string, maxOpen, maxIdle int) (*DB, error) {
	gormDB, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Every connection to :memory: is a separate database
	if path == MemoryPath {
		maxOpen, maxIdle = 1, 1
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		sqlDB.SetMaxIdleConns(maxIdle)
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{gormDB}, nil
}

func dsn(path string) string {
	if path == MemoryPath {
		return "file::memory:?_foreign_keys=on"
	}
	return path + "?_foreign_keys=on&_journal_mode=WAL"
}

// Migrate creates all tables and indexes. It is safe to run on every start.
func (db *DB) Migrate() error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range CreateTablesSQL {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to create table: %w", err)
			}
		}

		for _, stmt := range CreateIndexesSQL {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}
		}

		meta := Metadata{Key: MetaSchemaVersion, Value: strconv.Itoa(SchemaVersion)}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&meta).Error; err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}

		return nil
	})
}

// GetSchemaVersion returns the current schema version
func (db *DB) GetSchemaVersion() (int, error) {
	var meta Metadata
	err := db.Where("key = ?", MetaSchemaVersion).First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(meta.Value)
}

// Ping checks that the underlying connection is alive.
func (db *DB) Ping() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
