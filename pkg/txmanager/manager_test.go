package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LL-SlotBookingService/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr   error
	rollbackErr error

	committed  bool
	rolledBack bool
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return t.rollbackErr
}

type fakeBeginner struct {
	tx       *fakeTx
	beginErr error
}

func (b *fakeBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

func TestDoSerializable_CommitsOnSuccess(t *testing.T) {
	tx := &fakeTx{}
	m := NewTransactionManager(&fakeBeginner{tx: tx})

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		// Транзакция доступна репозиториям через контекст
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestDoSerializable_RollsBackAndReturnsFnError(t *testing.T) {
	errBusiness := errors.New("slot unavailable")
	tx := &fakeTx{}
	m := NewTransactionManager(&fakeBeginner{tx: tx})

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return errBusiness
	})

	assert.ErrorIs(t, err, errBusiness)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestDoSerializable_RollbackFailureKeepsFnError(t *testing.T) {
	errBusiness := errors.New("slot unavailable")
	tx := &fakeTx{rollbackErr: errors.New("connection lost")}
	m := NewTransactionManager(&fakeBeginner{tx: tx})

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return errBusiness
	})

	// Ошибка rollback не подменяет ошибку бизнес-логики
	require.ErrorIs(t, err, errBusiness)
	assert.NotErrorIs(t, err, ErrTransaction)
	assert.Contains(t, err.Error(), "rollback failed")
}

func TestDoSerializable_CommitErrorIsTransactionError(t *testing.T) {
	tx := &fakeTx{commitErr: errors.New("serialization failure")}
	m := NewTransactionManager(&fakeBeginner{tx: tx})

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, ErrTransaction)
}

func TestDoSerializable_BeginErrorIsTransactionError(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{beginErr: errors.New("no connection")})

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not run when begin fails")
		return nil
	})

	assert.ErrorIs(t, err, ErrTransaction)
}
