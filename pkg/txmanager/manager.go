package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
)

// maxSerializableRetries максимальное число повторов сериализуемой транзакции
// при конфликте сериализации (SQLSTATE 40001) или deadlock (40P01)
const maxSerializableRetries = 3

// ErrTxFailed возвращается при ошибке управления транзакцией
var ErrTxFailed = errors.New("txmanager: transaction failed")

// TransactionManager менеджер транзакций поверх обёртки dbmetrics.DB.
// Кладет активную транзакцию в контекст, откуда её достают репозитории.
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return runInTx(ctx, m.db, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции.
// При конфликте сериализации транзакция автоматически повторяется
// до maxSerializableRetries раз.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt <= maxSerializableRetries; attempt++ {
		err = runInTx(ctx, m.db, opts, fn)
		if !IsSerializationError(err) {
			return err
		}
	}

	return fmt.Errorf("%w: serialization retries exhausted: %w", ErrTxFailed, err)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return runInTx(ctx, m.db, &sql.TxOptions{ReadOnly: true}, fn)
}

// TxBeginner интерфейс источника транзакций
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// runInTx выполняет fn внутри транзакции, передавая её через контекст.
// Откатывает транзакцию при любой ошибке fn или панике.
func runInTx(ctx context.Context, db TxBeginner, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrTxFailed, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	// Ошибка коммита пробрасывается через %w: конфликт сериализации (40001)
	// может проявиться именно на коммите, и IsSerializationError должен его
	// увидеть через errors.As
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrTxFailed, err)
	}

	return nil
}

// IsSerializationError проверяет, что ошибка вызвана конфликтом сериализации
// или deadlock-ом и транзакцию имеет смысл повторить
func IsSerializationError(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}

	return false
}
