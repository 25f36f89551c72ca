package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	createBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_booking"
	getBusinessHoursHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_business_hours"
	getMyRatingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_my_rating"
	getResourceRatingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_resource_rating"
	getUserBookingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_user_bookings"
	healthHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_bookings"
	rateResourceHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/rate_resource"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/cache"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/events"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/firebaseapp"
	bookingsService "github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	ratingsService "github.com/m04kA/SMC-AppointmentService/internal/service/ratings"
	createBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/ratelimit"
	"github.com/m04kA/SMC-AppointmentService/pkg/tracing"
)

func main() {
	configPath := os.Getenv("SMC_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from %s (storage=%s, auth=%s)", configPath, cfg.Storage.Backend, cfg.Auth.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid timezone: %v", err)
	}
	hours, err := cfg.BusinessHours.ToDomain()
	if err != nil {
		log.Fatal("Invalid business hours: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Трассировка: пропагаторы ставятся всегда, экспорт только если включён
	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to set up tracing: %v", err)
	}

	// Firebase нужен для Firestore и для проверки ID-токенов
	var firebaseApp *firebase.App
	if cfg.Storage.Backend == "firestore" || cfg.Auth.Mode == "firebase" {
		firebaseApp, err = firebaseapp.NewApp(ctx, firebaseapp.Config{
			ProjectID:       cfg.Storage.FirebaseProjectID,
			CredentialsFile: cfg.Storage.CredentialsFile,
		})
		if err != nil {
			log.Fatal("Failed to initialize Firebase: %v", err)
		}
	}

	// Хранилище
	var store *backend
	if cfg.Storage.Backend == "firestore" {
		store, err = newFirestoreBackend(ctx, firebaseApp, cfg, log)
	} else {
		store, err = newPostgresBackend(cfg, metricsCollector, log)
	}
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	readiness := map[string]healthHandler.Checker{cfg.Storage.Backend: store.ready}

	// Redis: rate limit и кэш агрегатов оценок
	var (
		limiter    createBookingUC.RateLimiter
		statsCache ratingsService.StatsCache
	)
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		statsCache = cache.NewRatingStatsCache(rdb, cfg.Redis.RatingCacheTTL())
		readiness["redis"] = healthHandler.CheckerFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		if cfg.RateLimit.Enabled {
			limiter = ratelimit.NewRedisLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window(), "ratelimit:bookings:")
		}
		log.Info("Redis enabled (addr=%s)", cfg.Redis.Addr)
	} else if cfg.RateLimit.Enabled {
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Window())
		log.Warn("Redis is not configured, rate limit is per instance")
	}

	// Проверка личности вызывающего
	verifier, closeVerifier, err := newVerifier(ctx, cfg.Auth, firebaseApp)
	if err != nil {
		log.Fatal("Failed to initialize identity verifier: %v", err)
	}
	defer closeVerifier()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(store.bookings, log)
	ratingSvc := ratingsService.NewService(store.ratings, statsCache, log)

	// Инициализируем use cases
	createOpts := []createBookingUC.Option{
		createBookingUC.WithMetrics(metricsCollector),
		createBookingUC.WithTxTimeout(cfg.Booking.TxTimeout()),
	}
	if limiter != nil {
		createOpts = append(createOpts, createBookingUC.WithRateLimiter(limiter))
	}
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		store.outbox,
		store.txManager,
		location,
		log,
		createOpts...,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(store.bookings, hours, location, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBusinessHours := getBusinessHoursHandler.NewHandler(hours, location)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	rateResource := rateResourceHandler.NewHandler(ratingSvc, log)
	getResourceRating := getResourceRatingHandler.NewHandler(ratingSvc, log)
	getMyRating := getMyRatingHandler.NewHandler(ratingSvc, log)
	health := healthHandler.NewHandler(readiness, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/api/health", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health.Ready).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты на дату
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Рабочие часы и допустимая длительность
	api.HandleFunc("/business-hours", getBusinessHours.Handle).Methods(http.MethodGet)

	// Средняя оценка ресурса
	api.HandleFunc("/resources/{resourceId}/rating", getResourceRating.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют подтверждённой личности)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(verifier, log))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Оценки ---
	protected.HandleFunc("/resources/{resourceId}/rating", rateResource.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/resources/{resourceId}/rating/me", getMyRating.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	chain := alice.New(
		middleware.RequestID,
		middleware.AccessLog(log),
		otelhttp.NewMiddleware("appointment-service"),
		newCORS(cfg.CORS.AllowedOrigins).Handler,
	)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chain.Then(r),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// Outbox relay публикует доменные события в Kafka
	if cfg.Events.Enabled() {
		writer := events.NewKafkaWriter(cfg.Events.Brokers)
		defer writer.Close()

		relay := events.NewRelay(store.outbox, store.txManager, writer, metricsCollector, log, events.Config{
			PollInterval: cfg.Events.PollInterval(),
			BatchSize:    cfg.Events.BatchSize,
		})
		g.Go(func() error {
			return relay.Run(gctx)
		})
		log.Info("Outbox relay enabled (brokers=%v)", cfg.Events.Brokers)
	}

	// Graceful shutdown по сигналу или падению одной из горутин
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown: %v", err)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error("Failed to flush traces: %v", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Service stopped with error: %v", err)
		return
	}

	log.Info("Server stopped gracefully")
}
