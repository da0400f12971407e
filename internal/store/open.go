package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Supported backends for Open.
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Open connects to the configured backend and makes sure its schema exists.
func Open(ctx context.Context, dbType, databaseURL string, log *zap.Logger) (Store, error) {
	switch dbType {
	case TypeSQLite:
		s, err := NewSQLiteStore(ctx, databaseURL, log)
		if err != nil {
			return nil, err
		}
		if err := s.InitSchema(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	case TypePostgres:
		s, err := NewPostgresStore(ctx, databaseURL, log)
		if err != nil {
			return nil, err
		}
		if err := s.InitSchema(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q (want %q or %q)", dbType, TypeSQLite, TypePostgres)
	}
}
