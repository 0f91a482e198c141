package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"timeless-server/internal/interfaces"
)

var _ interfaces.TxManager = (*TxManager)(nil)

// TxManager выполняет функции в транзакции pgx.
type TxManager struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewTxManager создает новый помощник транзакций.
func NewTxManager(db *pgxpool.Pool, logger *zap.Logger) *TxManager {
	return &TxManager{
		db:     db,
		logger: logger.Named("TxManager"),
	}
}

// WithTransaction выполняет функцию в транзакции с автоматическим rollback при ошибке или панике.
func (h *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx interfaces.DBTX) error) error {
	tx, err := h.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				h.logger.Error("Failed to rollback transaction after panic",
					zap.Error(rollbackErr),
					zap.Any("panic", p))
			}
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			h.logger.Error("Failed to rollback transaction",
				zap.Error(rollbackErr),
				zap.NamedError("original_error", err))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
