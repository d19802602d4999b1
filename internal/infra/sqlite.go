package infra

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bundebug"

	"xivcrit.app/backend/internal/app/appconfig"
)

func SQLite(conf *appconfig.Config) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", conf.DBURI)
	if err != nil {
		return nil, err
	}

	sqldb.SetMaxOpenConns(conf.DBMaxOpenConns)
	sqldb.SetMaxIdleConns(conf.DBMaxIdleConns)
	sqldb.SetConnMaxLifetime(conf.DBConnMaxLifeTime)
	sqldb.SetConnMaxIdleTime(conf.DBConnMaxIdleTime)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if conf.BunDebugVerbose {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	} else if conf.DevMode {
		db.AddQueryHook(bundebug.NewQueryHook())
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	if err := CreateSchema(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}
