package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	firebase "firebase.google.com/go"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers/health"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	firestoreRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/firestore"
	outboxRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/outbox"
	ratingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/rating"
	bookingsService "github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	ratingsService "github.com/m04kA/SMC-AppointmentService/internal/service/ratings"
	createBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

type bookingStore interface {
	bookingsService.BookingRepository
	getAvailableSlotsUC.BookingRepository
	createBookingUC.BookingRepository
}

type outboxStore interface {
	createBookingUC.OutboxRepository
	events.OutboxStore
}

type transactionManager interface {
	createBookingUC.TransactionManager
	events.TransactionManager
}

// backend репозитории выбранного хранилища (Postgres или Firestore)
type backend struct {
	bookings  bookingStore
	ratings   ratingsService.RatingRepository
	outbox    outboxStore
	txManager transactionManager
	ready     health.Checker
	close     func()
}

func newPostgresBackend(cfg *config.Config, mc *metrics.Metrics, log *logger.Logger) (*backend, error) {
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (driver=%s, host=%s, port=%d, db=%s)",
		cfg.Database.Driver, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stopStats := make(chan struct{})
	wrappedDB := dbmetrics.WrapWithDefault(db, mc, stopStats)

	return &backend{
		bookings: bookingRepo.NewRepository(wrappedDB),
		ratings:  ratingRepo.NewRepository(wrappedDB),
		outbox:   outboxRepo.NewRepository(wrappedDB),
		txManager: txmanager.NewTransactionManager(wrappedDB,
			txmanager.WithMaxAttempts(cfg.Database.TxMaxAttempts),
			txmanager.WithMetrics(mc),
		),
		ready: health.CheckerFunc(wrappedDB.PingContext),
		close: func() {
			close(stopStats)
			if err := db.Close(); err != nil {
				log.Error("Failed to close database: %v", err)
			}
		},
	}, nil
}

func newFirestoreBackend(ctx context.Context, app *firebase.App, cfg *config.Config, log *logger.Logger) (*backend, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	log.Info("Connected to Firestore (project=%s)", cfg.Storage.FirebaseProjectID)

	bookings := firestoreRepo.NewBookingRepository(client)

	return &backend{
		bookings:  bookings,
		ratings:   firestoreRepo.NewRatingRepository(client),
		outbox:    firestoreRepo.NewOutboxRepository(client),
		txManager: firestoreRepo.NewTxManager(client, cfg.Database.TxMaxAttempts),
		ready:     health.CheckerFunc(bookings.Ping),
		close: func() {
			if err := client.Close(); err != nil {
				log.Error("Failed to close Firestore client: %v", err)
			}
		},
	}, nil
}
