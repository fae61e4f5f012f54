package main

import (
	"context"
	"fmt"
	kafka_client "itsector/clients/kafka"
	mongo_client "itsector/clients/mongo"
	rabbitmq_client "itsector/clients/rabbitmq"
	sqlite_client "itsector/clients/sqlite"
	"itsector/config"
	"itsector/controllers"
	"itsector/dataset"
	"itsector/middleware"
	"itsector/renderer"
	"itsector/routes"
	"itsector/services"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// GracefulShutdown stops the server on SIGINT/SIGTERM and then runs the
// cleanups. The returned channel is closed once they have finished.
func GracefulShutdown(server *http.Server, cleanups ...func(context.Context)) <-chan struct{} {
	done := make(chan struct{})
	stopper := make(chan os.Signal, 1)
	// Listen for interrupt and SIGTERM signals
	signal.Notify(stopper, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer close(done)
		<-stopper
		zap.L().Info("Shutting down gracefully...")

		// Create a context with a timeout for shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// Shut down the server
		if err := server.Shutdown(ctx); err != nil {
			zap.L().Error("Server shutdown failed", zap.Error(err))
		}
		for _, cleanup := range cleanups {
			cleanup(ctx)
		}
		zap.L().Info("Server exited gracefully")
	}()
	return done
}

func setupLogger(level string) {
	zapConfig := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zapConfig.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	zap.ReplaceGlobals(logger)
}

func setupSentry(cfg *config.Config) {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Environment:      cfg.Sentry.Environment,
		EnableTracing:    true,
		TracesSampleRate: cfg.Sentry.SampleRate,
	}); err != nil {
		zap.L().Error("Sentry initialization failed: ", zap.Any("error", err.Error()))
	}
}

func loadDataset(path string) (*dataset.Dataset, error) {
	if path == "" {
		return dataset.Sample(), nil
	}
	return dataset.Load(path)
}

// preferenceStore returns the configured store and its cleanup.
func preferenceStore(ctx context.Context, cfg *config.Config) (services.PreferenceStore, func(context.Context), error) {
	switch cfg.Preferences.Store {
	case config.StoreMongo:
		client, err := mongo_client.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, nil, err
		}
		store := mongo_client.NewPreferenceStore(client, cfg.Mongo.Database, cfg.Mongo.Collection)
		return store, func(ctx context.Context) {
			if err := store.Close(ctx); err != nil {
				zap.L().Error("Error disconnecting mongo", zap.Error(err))
			}
		}, nil
	case config.StoreSQLite:
		store, err := sqlite_client.NewPreferenceStore(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func(context.Context) {
			if err := store.Close(); err != nil {
				zap.L().Error("Error closing sqlite", zap.Error(err))
			}
		}, nil
	default:
		return services.NewMemoryStore(), func(context.Context) {}, nil
	}
}

func eventSink(cfg *config.Config) (services.EventSink, error) {
	switch cfg.Events.Sink {
	case config.SinkKafka:
		return kafka_client.NewEventSink(cfg.Kafka.BootstrapServers, cfg.Kafka.Topic)
	case config.SinkRabbitMQ:
		return rabbitmq_client.NewEventSink(rabbitmq_client.Options{
			Server:   cfg.RabbitMQ.Server,
			Port:     cfg.RabbitMQ.Port,
			User:     cfg.RabbitMQ.User,
			Password: cfg.RabbitMQ.Password,
			Queue:    cfg.RabbitMQ.Queue,
		})
	default:
		return services.NewNoopSink(), nil
	}
}

func run() error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	setupLogger(cfg.Log.Level)
	defer zap.L().Sync()

	setupSentry(cfg)
	defer sentry.Flush(2 * time.Second)

	data, err := loadDataset(cfg.Dataset.Path)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	zap.L().Info("Dataset loaded", zap.Int("companies", data.Len()))

	ctx := context.Background()
	store, closeStore, err := preferenceStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("preference store: %w", err)
	}

	sink, err := eventSink(cfg)
	if err != nil {
		closeStore(ctx)
		return fmt.Errorf("event sink: %w", err)
	}

	page, err := renderer.New(renderer.WithAnalyst(cfg.Report.Analyst))
	if err != nil {
		_ = sink.Close()
		closeStore(ctx)
		return err
	}

	dashboard := services.NewDashboard(data, page, services.NewThemeService(store),
		services.WithInitDelay(cfg.Dashboard.InitDelay),
		services.WithEventSink(sink))
	if err := dashboard.Init(ctx); err != nil {
		zap.L().Error("Dashboard initialisation incomplete", zap.Error(err))
	}

	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RecoveryMiddleware())

	router.Use(sentrygin.New(sentrygin.Options{}))
	router.Use(middleware.CORSMiddleware())

	routes.Routes(router, routes.Handlers{
		Dashboard: controllers.NewDashboardController(dashboard, page),
		Theme:     controllers.NewThemeController(dashboard),
		Export:    controllers.NewExportController(services.NewExportService(data, cfg.Report.Analyst), time.Now),
	})

	// Create a server instance using gin engine as handler
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	stopped := GracefulShutdown(server, closeStore, func(context.Context) {
		if err := dashboard.Close(); err != nil {
			zap.L().Error("Error closing event sink", zap.Error(err))
		}
	})

	zap.L().Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("error starting server: %w", err)
	}
	<-stopped
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}
