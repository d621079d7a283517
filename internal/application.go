package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/gridtictactoe/internal/apperror"
	"github.com/rocketscienceinc/gridtictactoe/internal/config"
	"github.com/rocketscienceinc/gridtictactoe/internal/monitor"
	"github.com/rocketscienceinc/gridtictactoe/internal/repository"
	"github.com/rocketscienceinc/gridtictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/gridtictactoe/internal/tictactoe"
	"github.com/rocketscienceinc/gridtictactoe/internal/usecase"
	"github.com/rocketscienceinc/gridtictactoe/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// expiringStore is a game store that removes expired games itself.
type expiringStore interface {
	RunSweeper(ctx context.Context, logger *slog.Logger) error
}

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gameRepo, closeRepo, err := newGameRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeRepo(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	metrics := monitor.NewMetrics(conf.MetricsName)

	board := tictactoe.Config{
		Rows:      conf.Board.Rows,
		Columns:   conf.Board.Columns,
		WinLength: conf.Board.WinLength,
	}

	gameManager, err := usecase.NewGameManager(logger, gameRepo, metrics, board)
	if err != nil {
		return fmt.Errorf("could not create game manager: %w", err)
	}

	errg, ctx := errgroup.WithContext(ctx)

	if sweeper, ok := gameRepo.(expiringStore); ok {
		errg.Go(func() error {
			return sweeper.RunSweeper(ctx, log)
		})
	}

	errg.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage)
		if httpErr := rest.New(logger, gameManager, metrics.Handler()).Start(ctx, conf.HTTPPort); httpErr != nil {
			return fmt.Errorf("HTTP server error: %w", httpErr)
		}
		return nil
	})

	if err = errg.Wait(); err != nil {
		return err
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func newGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func() error, error) {
	switch conf.Storage {
	case config.StorageMemory:
		return repository.NewMemoryGameRepository(conf.SessionTTL), func() error { return nil }, nil
	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedis(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewGameRepository(redisStorage, conf.SessionTTL), redisStorage.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", apperror.ErrUnknownStorage, conf.Storage)
	}
}
