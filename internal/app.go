package internal

import (
	"context"
	"fmt"
	token_adapter "github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/adapters/jwt"
	logger_adapter "github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/adapters/logger"
	memory_adapter "github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/adapters/memory"
	mysql_adapter "github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/adapters/mysql"
	postgres_adapter "github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/adapters/postgres"
	rabbitmq_adapter "github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/adapters/rabbitmq"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/adapters/rest"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/configs"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/constants"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contracts"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/usecase"
	fluentlogger "github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/pkg/fluent_logger"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/pkg/mysql"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/pkg/postgres"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/pkg/rabbitmq/rabbitmq_common"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/pkg/rabbitmq/rabbitmq_producer"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server

	storage       *storage
	connManager   *rabbitmq_common.ConnectionManager
	eventProducer *rabbitmq_producer.Publisher
	logger        port.LoggerPort
	fluentClient  *fluent.Fluent
}

// storage - набор адаптеров выбранного хранилища.
type storage struct {
	listings  port.ListingStoragePort
	related   port.RelatedEntitiesPort
	favorites port.FavoritesRepositoryPort
	health    func(ctx context.Context) error
	close     func()
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   appConfig.StdoutLogger.IsJSON,
		UseColor: !appConfig.StdoutLogger.IsJSON,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ ---
	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	application := &App{
		config:       appConfig,
		logger:       appLogger,
		fluentClient: fluentClient,
	}

	// --- 3. ХРАНИЛИЩЕ ---
	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	application.storage, err = newStorage(initCtx, appConfig, appLogger)
	if err != nil {
		application.closeResources()
		return nil, err
	}

	// --- 4. СОБЫТИЯ ИЗБРАННОГО ---
	var favoriteEvents port.FavoriteEventsPort
	if appConfig.RabbitMQ.Enabled {
		publisher, err := application.initEventPublisher(baseLogger)
		if err != nil {
			application.closeResources()
			return nil, err
		}
		favoriteEvents = publisher
	} else {
		appLogger.Info("RabbitMQ is disabled, favorite events will not be published", nil)
	}

	// --- 5. USE CASES ---
	enricher := usecase.NewListingEnricher(application.storage.related, application.storage.favorites)
	searchUseCase := usecase.NewSearchListingsUseCase(application.storage.listings, enricher, appConfig.Search.MaxPageSize)
	getByIDUseCase := usecase.NewGetListingByIDUseCase(application.storage.listings, enricher)
	addToFavoritesUseCase := usecase.NewAddToFavoritesUseCase(application.storage.favorites, application.storage.listings, favoriteEvents)
	removeFromFavoritesUseCase := usecase.NewRemoveFromFavoritesUseCase(application.storage.favorites, favoriteEvents)
	getUserFavoritesUseCase := usecase.NewGetUserFavoritesUseCase(application.storage.favorites, searchUseCase)
	getUserFavoritesIdsUseCase := usecase.NewGetUserFavoritesIdsUseCase(application.storage.favorites)
	getCategoriesUseCase := usecase.NewGetCategoriesUseCase(application.storage.related)

	appLogger.Info("All use cases initialized", nil)

	// --- 6. REST ---
	var tokens rest.TokenValidator
	if appConfig.Auth.JWTSigningKey != "" {
		validator, err := token_adapter.NewTokenValidator(appConfig.Auth.JWTSigningKey, appConfig.Auth.JWTIssuer)
		if err != nil {
			application.closeResources()
			return nil, fmt.Errorf("failed to create token validator: %w", err)
		}
		tokens = validator
		appLogger.Info("Bearer token authentication enabled", nil)
	}

	pagination := rest.PaginationConfig{
		DefaultPageSize: appConfig.Search.DefaultPageSize,
		MaxPageSize:     appConfig.Search.MaxPageSize,
	}
	metrics := rest.NewMetrics(appConfig.AppName)

	handlers := rest.Handlers{
		Listings:   rest.NewListingsHandler(searchUseCase, getByIDUseCase, pagination, metrics),
		Favorites:  rest.NewFavoritesHandler(addToFavoritesUseCase, removeFromFavoritesUseCase, getUserFavoritesUseCase, getUserFavoritesIdsUseCase, pagination),
		Categories: rest.NewCategoriesHandler(getCategoriesUseCase),
		Health:     application.storage.health,
	}
	router := rest.NewRouter(rest.RouterConfig{AllowedOrigins: appConfig.Rest.AllowedOrigins}, handlers, rest.NewAuthenticator(tokens), metrics, baseLogger)
	application.apiServer = rest.NewServer(appConfig.Rest.PORT, router, baseLogger)

	return application, nil
}

func newStorage(ctx context.Context, cfg *configs.AppConfig, appLogger port.LoggerPort) (*storage, error) {
	switch cfg.Storage.Driver {
	case configs.StorageDriverPostgres:
		pool, err := postgres.NewClient(ctx, postgres.Config{
			DatabaseURL:     cfg.Postgres.URL,
			MaxConns:        cfg.Postgres.MaxConns,
			MinConns:        cfg.Postgres.MinConns,
			MaxConnLifetime: cfg.Postgres.MaxConnLifetime,
		})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		listings, err := postgres_adapter.NewPostgresListingRepository(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		related, err := postgres_adapter.NewPostgresRelatedRepository(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		favorites, err := postgres_adapter.NewPostgresFavoritesRepository(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		appLogger.Info("PostgreSQL storage initialized", nil)
		return &storage{listings: listings, related: related, favorites: favorites, health: pool.Ping, close: pool.Close}, nil

	case configs.StorageDriverMySQL:
		db, err := mysql.NewClient(ctx, mysql.Config{
			DSN:             cfg.MySQL.DSN,
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
		})
		if err != nil {
			appLogger.Error("Failed to connect to MySQL", err, nil)
			return nil, fmt.Errorf("failed to connect to mysql: %w", err)
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				appLogger.Error("Error closing MySQL connection", err, nil)
			}
		}
		listings, err := mysql_adapter.NewMySQLListingRepository(db)
		if err != nil {
			closeDB()
			return nil, err
		}
		related, err := mysql_adapter.NewMySQLRelatedRepository(db)
		if err != nil {
			closeDB()
			return nil, err
		}
		favorites, err := mysql_adapter.NewMySQLFavoritesRepository(db)
		if err != nil {
			closeDB()
			return nil, err
		}
		appLogger.Info("MySQL storage initialized", nil)
		return &storage{listings: listings, related: related, favorites: favorites, health: db.PingContext, close: closeDB}, nil

	case configs.StorageDriverMemory:
		store := memory_adapter.NewStore()
		if cfg.Memory.SeedFile != "" {
			if err := store.LoadSeedFile(cfg.Memory.SeedFile); err != nil {
				appLogger.Error("Failed to load seed file", err, port.Fields{"path": cfg.Memory.SeedFile})
				return nil, fmt.Errorf("failed to load seed file: %w", err)
			}
		}
		appLogger.Warn("In-memory storage initialized, data is not persisted", port.Fields{"seed_file": cfg.Memory.SeedFile})
		return &storage{listings: store, related: store, favorites: store, close: func() {}}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func (a *App) initEventPublisher(baseLogger port.LoggerPort) (*rabbitmq_adapter.FavoriteEventsPublisher, error) {
	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
	connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}, connManagerBridge)
	if err != nil {
		a.logger.Error("Failed to create connection manager", err, nil)
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.connManager = connManager
	a.logger.Info("RabbitMQ Connection Manager initialized.", nil)

	producerCfg := rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: a.config.RabbitMQ.URL},
		ExchangeName:             constants.ExchangeListings,
		ExchangeType:             constants.ExchangeListingsType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
	}
	eventProducer, err := rabbitmq_producer.NewPublisher(producerCfg, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	a.eventProducer = eventProducer
	a.logger.Info("RabbitMQ Event Producer initialized.", nil)

	// Схемы событий проверяются до старта сервера.
	if _, err := contracts.DefaultRegistry(); err != nil {
		return nil, fmt.Errorf("failed to load event schemas: %w", err)
	}

	publisher, err := rabbitmq_adapter.NewFavoriteEventsPublisher(eventProducer, contracts.ValidateEvent)
	if err != nil {
		return nil, fmt.Errorf("failed to create favorite events publisher: %w", err)
	}
	return publisher, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if a.apiServer != nil {
			if err := a.apiServer.Stop(shutdownCtx); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		a.closeResources()
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", port.Fields{"port": a.config.Rest.PORT})

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	case err := <-serverErrors:
		a.logger.Error("HTTP server failed, shutting down", err, nil)
		runErr = err
	}

	return runErr
}

// closeResources закрывает все, что успело открыться, в обратном порядке.
func (a *App) closeResources() {
	if a.eventProducer != nil {
		if err := a.eventProducer.Close(); err != nil {
			a.logger.Error("Error closing event producer", err, nil)
		}
		a.eventProducer = nil
	}

	if a.connManager != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.connManager.Close(ctx); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
		cancel()
		a.connManager = nil
	}

	if a.storage != nil {
		a.storage.close()
		a.storage = nil
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent может быть уже недоступен, пишем в stdout
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
		a.fluentClient = nil
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
