package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	gfs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
)

type bookingDoc struct {
	Start       time.Time `firestore:"start"`
	End         time.Time `firestore:"end"`
	UserID      string    `firestore:"userId"`
	Status      string    `firestore:"status"`
	Title       string    `firestore:"title"`
	Notes       string    `firestore:"notes"`
	ServiceType string    `firestore:"serviceType"`
	CreatedBy   string    `firestore:"createdBy"`
	CreatedAt   time.Time `firestore:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}

func toBookingDoc(b *domain.Booking) bookingDoc {
	return bookingDoc{
		Start:       b.Start.UTC(),
		End:         b.End.UTC(),
		UserID:      b.OwnerID,
		Status:      string(b.Status),
		Title:       b.Title,
		Notes:       b.Notes,
		ServiceType: b.ServiceType,
		CreatedBy:   b.OwnerID,
		CreatedAt:   b.CreatedAt.UTC(),
		UpdatedAt:   b.UpdatedAt.UTC(),
	}
}

func (d bookingDoc) toDomain(id string) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		OwnerID:     d.UserID,
		Start:       d.Start.UTC(),
		End:         d.End.UTC(),
		Status:      domain.BookingStatus(d.Status),
		Title:       d.Title,
		Notes:       d.Notes,
		ServiceType: d.ServiceType,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// BookingRepository хранилище бронирований в коллекции appointments
type BookingRepository struct {
	client *gfs.Client
}

func NewBookingRepository(client *gfs.Client) *BookingRepository {
	return &BookingRepository{client: client}
}

func (r *BookingRepository) collection() *gfs.CollectionRef {
	return r.client.Collection(bookingsCollection)
}

// Create добавляет бронирование; внутри транзакции запись попадает в неё
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	ref := r.collection().NewDoc()
	doc := toBookingDoc(booking)

	var err error
	if tx, ok := txFromContext(ctx); ok {
		err = tx.Create(ref, doc)
	} else {
		_, err = ref.Create(ctx, doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - %w", ErrWrite, err)
	}

	booking.ID = ref.ID
	return booking, nil
}

// GetByID получает бронирование по ID документа
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	snap, err := r.collection().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%w: GetByID - id=%s", bookingRepo.ErrBookingNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - %w", ErrQuery, err)
	}

	var doc bookingDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%w: GetByID - id=%s: %v", ErrDecode, id, err)
	}
	return doc.toDomain(snap.Ref.ID), nil
}

// GetByFilter выбирает бронирования по фильтру, отсортированные по началу.
// Firestore не допускает неравенства по двум полям в одном запросе,
// поэтому условие end > From проверяется после чтения.
func (r *BookingRepository) GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	q := r.collection().Query
	if filter.OwnerID != nil {
		q = q.Where("userId", "==", *filter.OwnerID)
	}
	if filter.Status != nil {
		q = q.Where("status", "==", string(*filter.Status))
	}
	if filter.To != nil {
		q = q.Where("start", "<", filter.To.UTC())
	}
	q = q.OrderBy("start", gfs.Asc)

	bookings, err := r.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - %w", ErrQuery, err)
	}

	if filter.From == nil {
		return bookings, nil
	}
	out := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.End.After(*filter.From) {
			out = append(out, b)
		}
	}
	return out, nil
}

// ListConfirmedStartingBefore читает подтверждённые бронирования с start < end.
// Внутри транзакции чтение фиксируется в ней, и конкурентная запись приведёт к перезапуску.
func (r *BookingRepository) ListConfirmedStartingBefore(ctx context.Context, end time.Time) ([]*domain.Booking, error) {
	q := r.collection().
		Where("status", "==", string(domain.StatusConfirmed)).
		Where("start", "<", end.UTC()).
		OrderBy("start", gfs.Asc)

	bookings, err := r.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedStartingBefore - %w", ErrQuery, err)
	}
	return bookings, nil
}

func (r *BookingRepository) query(ctx context.Context, q gfs.Query) ([]*domain.Booking, error) {
	var it *gfs.DocumentIterator
	if tx, ok := txFromContext(ctx); ok {
		it = tx.Documents(q)
	} else {
		it = q.Documents(ctx)
	}
	defer it.Stop()

	bookings := make([]*domain.Booking, 0)
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}

		var doc bookingDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("%w: id=%s: %v", ErrDecode, snap.Ref.ID, err)
		}
		bookings = append(bookings, doc.toDomain(snap.Ref.ID))
	}
	return bookings, nil
}

// Ping читает один документ коллекции, используется в /readyz
func (r *BookingRepository) Ping(ctx context.Context) error {
	it := r.collection().Limit(1).Documents(ctx)
	defer it.Stop()
	if _, err := it.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("%w: Ping - %v", ErrQuery, err)
	}
	return nil
}
