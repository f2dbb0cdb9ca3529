package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
)

type Storage struct {
	Pool *pgxpool.Pool
}

func NewPostgresPool(username, password, host, port, dbName string) (*Storage, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", username, password, host, port, dbName)
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &Storage{Pool: pool}, nil
}

func (p *Storage) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}

func UnwrapPgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}

// retryableSeqNoErr reports whether an insert failed because two transactions
// raced for the same sequence number: either the isolation level detected the
// conflict (40001) or the unique constraint on the seq_no column caught it.
func retryableSeqNoErr(err error, seqNoConstraint string) bool {
	pgErr := UnwrapPgError(err)
	if pgErr == nil {
		return false
	}
	if pgErr.Code == codeSerializationFailure {
		return true
	}
	return pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == seqNoConstraint
}
