package mocks

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"timeless-server/internal/interfaces"
)

// StubDBTX - именованная заглушка querier'а. Репозитории в тестах замоканы,
// поэтому методы не вызываются; имя позволяет отличить пул от транзакции в ожиданиях.
type StubDBTX struct {
	Name string
}

var _ interfaces.DBTX = (*StubDBTX)(nil)

func (s *StubDBTX) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	panic("StubDBTX.Exec called on " + s.Name)
}

func (s *StubDBTX) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("StubDBTX.Query called on " + s.Name)
}

func (s *StubDBTX) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("StubDBTX.QueryRow called on " + s.Name)
}

// StubTxManager выполняет функцию сразу, передавая Tx как транзакцию.
type StubTxManager struct {
	Tx    interfaces.DBTX
	Calls int
}

var _ interfaces.TxManager = (*StubTxManager)(nil)

func (m *StubTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx interfaces.DBTX) error) error {
	m.Calls++
	return fn(ctx, m.Tx)
}
