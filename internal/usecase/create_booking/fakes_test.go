package create_booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// memStore хранилище в памяти с оптимистичными транзакциями:
// транзакция читает снимок, а при коммите проверяет, что версия не изменилась.
// Проигравшая транзакция перезапускается и видит запись победителя.
type memStore struct {
	mu       sync.Mutex
	version  int
	nextID   int
	bookings []*domain.Booking
	events   []*domain.OutboxEvent

	// afterRead вызывается после чтения снимка (для синхронизации гонок в тестах)
	afterRead func()
	readErr   error
	commits   int
	aborts    int
}

type memTx struct {
	version  int
	snapshot []*domain.Booking
	writes   []*domain.Booking
	events   []*domain.OutboxEvent
}

type memTxKey struct{}

func newMemStore(existing ...*domain.Booking) *memStore {
	s := &memStore{}
	for _, b := range existing {
		s.nextID++
		if b.ID == "" {
			b.ID = fmt.Sprintf("seed-%d", s.nextID)
		}
		s.bookings = append(s.bookings, b)
	}
	return s
}

func (s *memStore) confirmed() []*domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Booking
	for _, b := range s.bookings {
		if b.IsConfirmed() {
			out = append(out, b)
		}
	}
	return out
}

// DoSerializable реализует TransactionManager
func (s *memStore) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	const maxAttempts = 5
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.mu.Lock()
		tx := &memTx{version: s.version, snapshot: append([]*domain.Booking(nil), s.bookings...)}
		s.mu.Unlock()

		if err := fn(context.WithValue(ctx, memTxKey{}, tx)); err != nil {
			return err
		}

		s.mu.Lock()
		if s.version != tx.version {
			s.aborts++
			s.mu.Unlock()
			continue
		}
		for _, b := range tx.writes {
			s.nextID++
			b.ID = fmt.Sprintf("appt-%d", s.nextID)
			s.bookings = append(s.bookings, b)
		}
		for _, e := range tx.events {
			e.AggregateID = tx.writes[0].ID
		}
		s.events = append(s.events, tx.events...)
		if len(tx.writes) > 0 {
			s.version++
		}
		s.commits++
		s.mu.Unlock()
		return nil
	}
	return status.Error(codes.Aborted, "too much contention")
}

func (s *memStore) ListConfirmedStartingBefore(ctx context.Context, end time.Time) ([]*domain.Booking, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	tx, ok := ctx.Value(memTxKey{}).(*memTx)
	if !ok {
		return nil, fmt.Errorf("no transaction in context")
	}

	var out []*domain.Booking
	for _, b := range tx.snapshot {
		if b.IsConfirmed() && b.Start.Before(end) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })

	if s.afterRead != nil {
		s.afterRead()
	}
	return out, nil
}

func (s *memStore) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	tx := ctx.Value(memTxKey{}).(*memTx)
	tx.writes = append(tx.writes, b)
	return b, nil
}

func (s *memStore) Add(ctx context.Context, e *domain.OutboxEvent) error {
	tx := ctx.Value(memTxKey{}).(*memTx)
	tx.events = append(tx.events, e)
	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allowed, l.err
}

type stubTxManager struct{ err error }

func (m stubTxManager) DoSerializable(context.Context, func(context.Context) error) error {
	return m.err
}

type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *outcomeRecorder) ObserveBooking(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
