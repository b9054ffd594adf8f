package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
)

// Стабы транзакций

type stubTx struct {
	commitErrs *[]error

	committed  bool
	rolledBack bool
}

func (t *stubTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *stubTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *stubTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *stubTx) Commit() error {
	t.committed = true
	if len(*t.commitErrs) == 0 {
		return nil
	}
	err := (*t.commitErrs)[0]
	*t.commitErrs = (*t.commitErrs)[1:]
	return err
}

func (t *stubTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type stubBeginner struct {
	commitErrs []error

	begun int
	txs   []*stubTx
}

func (b *stubBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begun++
	tx := &stubTx{commitErrs: &b.commitErrs}
	b.txs = append(b.txs, tx)
	return tx, nil
}

func serializationFailure() *pq.Error {
	return &pq.Error{Code: "40001", Message: "could not serialize access"}
}

// Тесты

func TestIsSerializationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "raw serialization failure", err: serializationFailure(), want: true},
		{name: "raw deadlock", err: &pq.Error{Code: "40P01"}, want: true},
		{name: "other pq code", err: &pq.Error{Code: "23505"}, want: false},
		{
			// Цепочка как в репозитории: sentinel + исходная ошибка через %w
			name: "wrapped by repository",
			err:  fmt.Errorf("%w: Create - execute insert: %w", errors.New("storage: failed to execute query"), serializationFailure()),
			want: true,
		},
		{
			name: "wrapped at commit",
			err:  fmt.Errorf("%w: commit: %w", ErrTxFailed, serializationFailure()),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSerializationError(tt.err))
		})
	}
}

func TestDoSerializable_RetriesOnCommitConflict(t *testing.T) {
	// Первые два коммита падают с конфликтом сериализации, третий проходит
	beginner := &stubBeginner{
		commitErrs: []error{serializationFailure(), serializationFailure()},
	}
	m := &TransactionManager{db: beginner}

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, beginner.begun)
	assert.Equal(t, 3, calls)
}

func TestDoSerializable_RetriesOnQueryConflict(t *testing.T) {
	// Конфликт виден уже при чтении внутри транзакции и приходит
	// обёрнутым по конвенции репозиториев
	beginner := &stubBeginner{}
	m := &TransactionManager{db: beginner}

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return fmt.Errorf("%w: FindOverlapping - execute query: %w",
				errors.New("storage: failed to execute query"), serializationFailure())
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	// Неудачная попытка откатывается, удачная коммитится
	assert.True(t, beginner.txs[0].rolledBack)
	assert.True(t, beginner.txs[1].committed)
}

func TestDoSerializable_RetriesExhausted(t *testing.T) {
	beginner := &stubBeginner{
		commitErrs: []error{
			serializationFailure(), serializationFailure(),
			serializationFailure(), serializationFailure(),
		},
	}
	m := &TransactionManager{db: beginner}

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTxFailed)
	assert.Equal(t, maxSerializableRetries+1, beginner.begun)
}

func TestDoSerializable_NoRetryOnOtherErrors(t *testing.T) {
	beginner := &stubBeginner{}
	m := &TransactionManager{db: beginner}

	boom := errors.New("boom")
	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.True(t, beginner.txs[0].rolledBack)
}
