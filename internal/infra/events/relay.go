package events

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultBatchSize    = 100
)

// Config параметры relay
type Config struct {
	PollInterval time.Duration
	BatchSize    int
}

// Relay переносит события из outbox в Kafka.
// Выборка, запись в Kafka и отметка published выполняются в одной транзакции:
// если Kafka недоступна, события остаются неопубликованными до следующего тика.
type Relay struct {
	store     OutboxStore
	txManager TransactionManager
	writer    MessageWriter
	metrics   Metrics
	logger    Logger
	interval  time.Duration
	batchSize int
}

func NewRelay(store OutboxStore, txManager TransactionManager, writer MessageWriter, metrics Metrics, logger Logger, cfg Config) *Relay {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &Relay{
		store:     store,
		txManager: txManager,
		writer:    writer,
		metrics:   metrics,
		logger:    logger,
		interval:  cfg.PollInterval,
		batchSize: cfg.BatchSize,
	}
}

// NewKafkaWriter writer без фиксированного топика: топик берётся из сообщения
func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// Run публикует пачки событий до отмены контекста
func (r *Relay) Run(ctx context.Context) error {
	r.logger.Info("Outbox relay started: interval=%s, batch=%d", r.interval, r.batchSize)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Outbox relay stopped")
			return nil
		case <-ticker.C:
			n, err := r.PublishBatch(ctx)
			if err != nil {
				r.logger.Error("Outbox relay: publish failed: %v", err)
				continue
			}
			if n > 0 {
				r.logger.Info("Outbox relay: published %d events", n)
			}
		}
	}
}

// PublishBatch публикует одну пачку и возвращает число опубликованных событий
func (r *Relay) PublishBatch(ctx context.Context) (int, error) {
	ctx, span := otel.Tracer("outbox-relay").Start(ctx, "outbox.publish_batch")
	defer span.End()

	var published []*domain.OutboxEvent

	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		published = nil

		events, err := r.store.FetchUnpublished(txCtx, r.batchSize)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFetch, err)
		}
		if len(events) == 0 {
			return nil
		}

		msgs := make([]kafka.Message, 0, len(events))
		for _, e := range events {
			msgs = append(msgs, toMessage(ctx, e))
		}
		if err := r.writer.WriteMessages(ctx, msgs...); err != nil {
			return fmt.Errorf("%w: %v", ErrPublish, err)
		}

		if err := r.store.MarkPublished(txCtx, events); err != nil {
			return fmt.Errorf("%w: %v", ErrMarkPublished, err)
		}
		published = events
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	span.SetAttributes(attribute.Int("outbox.published", len(published)))
	r.observe(published)
	return len(published), nil
}

func (r *Relay) observe(events []*domain.OutboxEvent) {
	if r.metrics == nil {
		return
	}
	byType := make(map[string]int)
	for _, e := range events {
		byType[e.EventType]++
	}
	for eventType, n := range byType {
		r.metrics.ObserveOutboxPublished(eventType, n)
	}
}

func toMessage(ctx context.Context, e *domain.OutboxEvent) kafka.Message {
	msg := kafka.Message{
		Topic: e.EventType,
		Key:   []byte(e.AggregateID),
		Value: e.Payload,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(e.EventID)},
			{Key: HeaderEventType, Value: []byte(e.EventType)},
		},
	}
	msg.Headers = InjectTraceHeaders(ctx, msg.Headers)
	return msg
}
