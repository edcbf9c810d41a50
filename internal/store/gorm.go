// Package store implements redirect.Store backends.
package store

import (
	"context"
	"errors"
	"fmt"

	"go_redirect/internal/model"
	"go_redirect/internal/redirect"

	"gorm.io/gorm"
)

// DefaultBatchSize is the number of rows fetched per round trip by EachTarget
const DefaultBatchSize = 100

// GormStore keeps rules in a relational table through gorm
type GormStore struct {
	db        *gorm.DB
	table     string
	batchSize int
}

// NewGormStore creates a GormStore over the given table.
// An empty table selects model.DefaultRedirectTable; batchSize <= 0 selects DefaultBatchSize.
func NewGormStore(db *gorm.DB, table string, batchSize int) *GormStore {
	if db == nil {
		panic("nil *gorm.DB passed to NewGormStore")
	}
	if table == "" {
		table = model.DefaultRedirectTable
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &GormStore{db: db, table: table, batchSize: batchSize}
}

func (s *GormStore) query(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table(s.table)
}

// FindTarget selects the target of an exact source match
func (s *GormStore) FindTarget(ctx context.Context, source string) (string, bool, error) {
	var targets []string
	if err := s.query(ctx).
		Where("source = ?", source).
		Limit(1).
		Pluck("target", &targets).Error; err != nil {
		return "", false, fmt.Errorf("failed to find redirect target: %w", err)
	}
	if len(targets) == 0 {
		return "", false, nil
	}
	return targets[0], true, nil
}

// Exists reports whether value is present in column
func (s *GormStore) Exists(ctx context.Context, value string, column redirect.Column) (bool, error) {
	col, err := redirect.ParseColumn(string(column))
	if err != nil {
		return false, err
	}

	var found []string
	if err := s.query(ctx).
		Where(map[string]interface{}{string(col): value}).
		Limit(1).
		Pluck("source", &found).Error; err != nil {
		return false, fmt.Errorf("failed to check redirect %s: %w", col, err)
	}
	return len(found) > 0, nil
}

// Insert creates a new rule row. A duplicate source is reported as ErrDuplicateSource
// when the connection was opened with TranslateError.
func (s *GormStore) Insert(ctx context.Context, source, target string) error {
	rule := model.Redirect{
		Source: source,
		Target: target,
	}
	if err := s.query(ctx).Create(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %v", ErrDuplicateSource, err)
		}
		return fmt.Errorf("failed to create redirect: %w", err)
	}
	return nil
}

// EachTarget walks the table in primary key order, batchSize rows at a time.
// FindInBatches pages on the primary key so no offset scan is needed.
func (s *GormStore) EachTarget(ctx context.Context, fn func(string) error) error {
	var batch []model.Redirect
	var fnErr error

	result := s.query(ctx).
		Select("source", "target").
		FindInBatches(&batch, s.batchSize, func(tx *gorm.DB, _ int) error {
			for _, rule := range batch {
				if err := fn(rule.Target); err != nil {
					fnErr = err
					return err
				}
			}
			return nil
		})

	if fnErr != nil {
		return fnErr
	}
	if result.Error != nil {
		return fmt.Errorf("failed to scan redirect targets: %w", result.Error)
	}
	return nil
}
