package firestore

import (
	"context"

	gfs "cloud.google.com/go/firestore"
)

const (
	bookingsCollection = "appointments"
	ratingsCollection  = "ratings"
	ratingsByUser      = "byUser"
	outboxCollection   = "outbox"
)

type txKey struct{}

func withTx(ctx context.Context, tx *gfs.Transaction) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFromContext(ctx context.Context) (*gfs.Transaction, bool) {
	tx, ok := ctx.Value(txKey{}).(*gfs.Transaction)
	return tx, ok && tx != nil
}

// TxManager выполняет функции в транзакции Firestore.
// RunTransaction сам перезапускает функцию при конфликте, а после
// исчерпания попыток возвращает gRPC Aborted.
type TxManager struct {
	client      *gfs.Client
	maxAttempts int
}

func NewTxManager(client *gfs.Client, maxAttempts int) *TxManager {
	if maxAttempts <= 0 {
		maxAttempts = gfs.DefaultTransactionMaxAttempts
	}
	return &TxManager{client: client, maxAttempts: maxAttempts}
}

// Do выполняет fn в транзакции; вложенный вызов переиспользует внешнюю
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}
	return m.client.RunTransaction(ctx, func(ctx context.Context, tx *gfs.Transaction) error {
		return fn(withTx(ctx, tx))
	}, gfs.MaxAttempts(m.maxAttempts))
}

// DoSerializable транзакции Firestore всегда сериализуемы
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}
