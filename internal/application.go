package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/sos-backend/internal/analytics"
	"github.com/rocketscienceinc/sos-backend/internal/bot"
	"github.com/rocketscienceinc/sos-backend/internal/config"
	"github.com/rocketscienceinc/sos-backend/internal/repository"
	"github.com/rocketscienceinc/sos-backend/internal/repository/storage"
	"github.com/rocketscienceinc/sos-backend/internal/usecase"
	"github.com/rocketscienceinc/sos-backend/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	producer := analytics.NewProducer(logger, conf.Kafka.Brokers, conf.Kafka.Topic)
	if producer == nil {
		log.Info("Kafka analytics disabled")
	}

	defer func() {
		if err = producer.Close(); err != nil {
			log.Error("could not close kafka producer", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage)
	heuristic := bot.NewSeededHeuristic(conf.Game.BotSeed)
	gameManager := usecase.NewGameManager(logger, gameRepo, heuristic, producer, conf.Game.DefaultBoardSize)

	router := rest.NewRouter(
		logger,
		rest.NewPingHandler(),
		rest.NewGameHandlers(logger, gameManager, conf.Game.DefaultMode),
	)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		httpErrCh <- rest.Start(ctx, conf.HTTPPort, router)
	}()

	select {
	case err = <-httpErrCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return <-httpErrCh
	}
}
