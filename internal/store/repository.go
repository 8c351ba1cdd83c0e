package store

import (
	stderrors "errors"
	"strings"

	"github.com/wscrape/wscrape/internal/errors"
	"github.com/wscrape/wscrape/internal/logger"
	"gorm.io/gorm"
)

// LoginRepository handles writes and reads of login entries.
type LoginRepository interface {
	// Save issues one parameterized insert for the entry. A duplicate key
	// is returned as an error classifiable with IsDuplicate; the caller
	// decides whether that is noteworthy.
	Save(entry *LoginEntry) error

	// Recent returns up to limit entries, newest capture first.
	Recent(limit int) ([]LoginEntry, error)

	// Count returns the total number of persisted entries.
	Count() (int64, error)
}

type loginRepo struct {
	db  *gorm.DB
	log logger.Logger
}

// NewLoginRepository creates a repository over an open store handle.
func NewLoginRepository(db *gorm.DB, log logger.Logger) LoginRepository {
	if log == nil {
		log = logger.Default()
	}
	return &loginRepo{db: db, log: log}
}

func (r *loginRepo) Save(entry *LoginEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		return errors.WrapWithCode(err, errors.ErrStore,
			"Insert failed for "+entry.User+"@"+entry.TTY,
			"")
	}
	r.log.Debug("saved entry user=%s tty=%s at=%s", entry.User, entry.TTY, entry.RecordTime)
	return nil
}

func (r *loginRepo) Recent(limit int) ([]LoginEntry, error) {
	var entries []LoginEntry
	err := r.db.
		Order("record_time DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			"Query for recent entries failed", "")
	}
	return entries, nil
}

func (r *loginRepo) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&LoginEntry{}).Count(&count).Error; err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrStore,
			"Count query failed", "")
	}
	return count, nil
}

// IsDuplicate reports whether err is a primary-key constraint violation,
// as opposed to a connectivity or other store error. Checks both gorm's
// translated error and the raw sqlite message, since not every driver
// translates constraint failures.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "constraint failed")
}
