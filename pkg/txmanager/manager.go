package txmanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

const (
	DefaultMaxAttempts = 5
	DefaultBackoff     = 10 * time.Millisecond
)

// Beginner источник транзакций (обычно *dbmetrics.DB)
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функцию внутри транзакции и кладёт её в контекст,
// репозитории достают транзакцию через dbmetrics.GetExecutor.
// При конфликте сериализации (40001, 40P01) функция перезапускается целиком.
type TransactionManager struct {
	db          Beginner
	maxAttempts int
	backoff     time.Duration
	metrics     *metrics.Metrics
}

type Option func(*TransactionManager)

func WithMaxAttempts(n int) Option {
	return func(m *TransactionManager) {
		if n > 0 {
			m.maxAttempts = n
		}
	}
}

func WithBackoff(d time.Duration) Option {
	return func(m *TransactionManager) {
		if d >= 0 {
			m.backoff = d
		}
	}
}

func WithMetrics(mc *metrics.Metrics) Option {
	return func(m *TransactionManager) {
		m.metrics = mc
	}
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db Beginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{
		db:          db,
		maxAttempts: DefaultMaxAttempts,
		backoff:     DefaultBackoff,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции REPEATABLE READ (согласованный снимок)
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		err = m.once(ctx, opts, fn)
		if err == nil {
			m.metrics.ObserveTxAttempt("committed")
			return nil
		}
		if !IsSerializationFailure(err) {
			m.metrics.ObserveTxAttempt("failed")
			return err
		}
		m.metrics.ObserveTxAttempt("retried")

		if attempt == m.maxAttempts {
			break
		}
		if waitErr := m.wait(ctx, attempt); waitErr != nil {
			return waitErr
		}
	}

	m.metrics.ObserveTxAttempt("failed")
	return fmt.Errorf("%w: %d attempts: %w", ErrTooManyRetries, m.maxAttempts, err)
}

func (m *TransactionManager) once(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
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

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}
	return nil
}

func (m *TransactionManager) wait(ctx context.Context, attempt int) error {
	if m.backoff == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(m.backoff * time.Duration(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
