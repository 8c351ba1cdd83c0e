// Package store persists parsed login entries into a relational store.
// It owns the single connection handle the capture loop writes through.
package store

import (
	"sync"

	"github.com/glebarez/sqlite"
	"github.com/wscrape/wscrape/internal/config"
	"github.com/wscrape/wscrape/internal/errors"
	"github.com/wscrape/wscrape/internal/logger"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store wraps the database handle with idempotent close semantics.
type Store struct {
	db        *gorm.DB
	log       logger.Logger
	closeOnce sync.Once
	closeErr  error
}

// Open connects to the store described by dsn, substituting ${user} and
// ${pass} from the credential file, and migrates the logins table.
// Any failure here is fatal: the caller gets no partial Store.
func Open(dsn string, creds *config.Credentials, log logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Default()
	}

	expanded := config.ExpandCredentials(dsn, creds)

	db, err := gorm.Open(sqlite.Open(expanded), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot open the store",
			"Check store.dsn in the config and that the store is reachable")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot access the store connection pool", "")
	}
	// A single writer owns this handle for its whole lifetime.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&LoginEntry{}); err != nil {
		sqlDB.Close()
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot migrate the logins table",
			"Check the store user has DDL permissions")
	}

	log.Debug("store opened")
	return &Store{db: db, log: log}, nil
}

// DB exposes the underlying handle for the repository layer.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close releases the store connection. Safe to call multiple times; the
// connection is closed exactly once and later calls return the same result.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		sqlDB, err := s.db.DB()
		if err != nil {
			s.closeErr = err
			return
		}
		s.closeErr = sqlDB.Close()
		s.log.Debug("store closed")
	})
	return s.closeErr
}
