package bootstrap

import (
	"fmt"

	"go_redirect/internal/cache"
	"go_redirect/internal/config"
	"go_redirect/internal/db"
	"go_redirect/internal/redirect"
	"go_redirect/internal/store"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OpenStore connects the backend selected by cfg.Redirect.Store and returns
// the rule store together with a function releasing its connection.
func OpenStore(cfg *config.Config) (redirect.Store, func(), error) {
	var handles store.Handles
	var closeFn func()

	switch cfg.Redirect.Store {
	case store.KindRedis:
		if err := cache.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
			return nil, nil, err
		}
		handles.Redis = cache.Client
		closeFn = func() {
			if err := cache.Close(); err != nil {
				logrus.WithError(err).Warn("failed to close Redis")
			}
		}
	default:
		if err := db.InitMySQL(cfg.MySQL.DSN); err != nil {
			return nil, nil, err
		}
		if cfg.Migrate {
			if err := db.Migrate(db.GetDB(), cfg.Redirect.Table); err != nil {
				db.Close()
				return nil, nil, err
			}
		}
		handles.DB = db.GetDB()
		closeFn = func() {
			if err := db.Close(); err != nil {
				logrus.WithError(err).Warn("failed to close MySQL")
			}
		}
	}

	s, err := store.New(cfg.Redirect.Store, handles, cfg.Redirect.Table, cfg.Redirect.ScanBatchSize)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return s, closeFn, nil
}

// OpenSQLite opens a local SQLite file as a rule store, migrating the table first
func OpenSQLite(path, table string, batchSize int) (redirect.Store, func(), error) {
	conn, err := gorm.Open(sqlite.Open(path), db.Config())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open SQLite database %s: %w", path, err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(conn, table); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}
	return store.NewGormStore(conn, table, batchSize), func() { sqlDB.Close() }, nil
}
