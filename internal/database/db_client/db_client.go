package db_client

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

type Params struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SslMode  string
}

// DSN renders p as a postgres URL with credentials escaped.
func (p Params) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   fmt.Sprintf("%s:%s", p.Host, p.Port),
		Path:   "/" + p.Database,
	}
	if p.SslMode != "" {
		u.RawQuery = url.Values{"sslmode": {p.SslMode}}.Encode()
	}
	return u.String()
}

func Open(ctx context.Context, p Params) (*sql.DB, error) {
	db, err := sql.Open("pgx", p.DSN())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		zap.L().Error("pg_connect", zap.String("host", p.Host), zap.Error(err))
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}
	return db, nil
}
