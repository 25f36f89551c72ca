package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	gfs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type outboxDoc struct {
	EventID       string     `firestore:"eventId"`
	AggregateType string     `firestore:"aggregateType"`
	AggregateID   string     `firestore:"aggregateId"`
	EventType     string     `firestore:"eventType"`
	Payload       []byte     `firestore:"payload"`
	Published     bool       `firestore:"published"`
	CreatedAt     time.Time  `firestore:"createdAt"`
	PublishedAt   *time.Time `firestore:"publishedAt"`
}

// OutboxRepository события хранятся в коллекции outbox, ID документа = eventId
type OutboxRepository struct {
	client *gfs.Client
}

func NewOutboxRepository(client *gfs.Client) *OutboxRepository {
	return &OutboxRepository{client: client}
}

func (r *OutboxRepository) collection() *gfs.CollectionRef {
	return r.client.Collection(outboxCollection)
}

func (r *OutboxRepository) Add(ctx context.Context, event *domain.OutboxEvent) error {
	ref := r.collection().Doc(event.EventID)
	doc := outboxDoc{
		EventID:       event.EventID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		Payload:       event.Payload,
		CreatedAt:     event.CreatedAt.UTC(),
	}

	var err error
	if tx, ok := txFromContext(ctx); ok {
		err = tx.Create(ref, doc)
	} else {
		_, err = ref.Create(ctx, doc)
	}
	if err != nil {
		return fmt.Errorf("%w: Add - %w", ErrWrite, err)
	}
	return nil
}

func (r *OutboxRepository) FetchUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	q := r.collection().
		Where("published", "==", false).
		OrderBy("createdAt", gfs.Asc).
		Limit(limit)

	var it *gfs.DocumentIterator
	if tx, ok := txFromContext(ctx); ok {
		it = tx.Documents(q)
	} else {
		it = q.Documents(ctx)
	}
	defer it.Stop()

	events := make([]*domain.OutboxEvent, 0)
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: FetchUnpublished - %w", ErrQuery, err)
		}

		var doc outboxDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("%w: FetchUnpublished - id=%s: %v", ErrDecode, snap.Ref.ID, err)
		}
		events = append(events, &domain.OutboxEvent{
			EventID:       snap.Ref.ID,
			AggregateType: doc.AggregateType,
			AggregateID:   doc.AggregateID,
			EventType:     doc.EventType,
			Payload:       doc.Payload,
			CreatedAt:     doc.CreatedAt,
		})
	}
	return events, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, events []*domain.OutboxEvent) error {
	updates := []gfs.Update{
		{Path: "published", Value: true},
		{Path: "publishedAt", Value: gfs.ServerTimestamp},
	}

	tx, inTx := txFromContext(ctx)
	for _, e := range events {
		ref := r.collection().Doc(e.EventID)

		var err error
		if inTx {
			err = tx.Update(ref, updates)
		} else {
			_, err = ref.Update(ctx, updates)
		}
		if err != nil {
			return fmt.Errorf("%w: MarkPublished - event=%s: %w", ErrWrite, e.EventID, err)
		}
	}
	return nil
}
