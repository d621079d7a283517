package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/rocketscienceinc/gridtictactoe/internal/apperror"
	"github.com/rocketscienceinc/gridtictactoe/internal/entity"
	"github.com/rocketscienceinc/gridtictactoe/internal/monitor"
	"github.com/rocketscienceinc/gridtictactoe/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type sessionLock struct {
	mu sync.Mutex
	// refs counts calls holding or waiting for mu. Guarded by the map bucket.
	refs int
}

// GameManager hosts one game per session. Calls for the same session are
// serialized; different sessions proceed in parallel. A session's lock exists
// only while calls for it are in flight.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	metrics  *monitor.Metrics

	board tictactoe.Config
	locks *xsync.MapOf[string, *sessionLock]
}

// NewGameManager fails if board does not describe a playable default game.
func NewGameManager(logger *slog.Logger, gameRepo gameRepo, metrics *monitor.Metrics, board tictactoe.Config) (*GameManager, error) {
	if _, err := tictactoe.NewDefaultGame(board); err != nil {
		return nil, fmt.Errorf("invalid default board: %w", err)
	}

	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
		metrics:  metrics,

		board: board,
		locks: xsync.NewMapOf[string, *sessionLock](),
	}, nil
}

// GetOrCreateGame returns the session's game, starting a default one if the
// session has none.
func (that *GameManager) GetOrCreateGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	unlock, err := that.lock(sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	game, err := that.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return snapshot(sessionID, game), nil
}

// MakeTurn plays cell for the session's current player. Rejected moves leave
// the game unchanged and are not reported as errors.
func (that *GameManager) MakeTurn(ctx context.Context, sessionID string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "session_id", sessionID, "cell", cell)

	unlock, err := that.lock(sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	game, err := that.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err = game.Play(cell); err != nil {
		if !tictactoe.IsRejectedMove(err) {
			return nil, fmt.Errorf("failed to make turn: %w", err)
		}

		log.Debug("move rejected", "error", err)
		that.metrics.MovesRejected.WithLabelValues(rejectReason(err)).Inc()

		return snapshot(sessionID, game), nil
	}
	that.metrics.MovesAccepted.Inc()

	updated := snapshot(sessionID, game)
	if err = that.gameRepo.CreateOrUpdate(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if updated.IsFinished() {
		that.metrics.GamesFinished.WithLabelValues(updated.Winner).Inc()
		log.Info("game finished", "state", updated.Winner)
	}

	return updated, nil
}

// Reset replaces the session's game with a fresh default one.
func (that *GameManager) Reset(ctx context.Context, sessionID string) (*entity.Game, error) {
	unlock, err := that.lock(sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	game, err := that.createGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return snapshot(sessionID, game), nil
}

// EndSession drops the session's game. A session without a game is not an error.
func (that *GameManager) EndSession(ctx context.Context, sessionID string) error {
	unlock, err := that.lock(sessionID)
	if err != nil {
		return err
	}
	defer unlock()

	err = that.gameRepo.DeleteByID(ctx, sessionID)
	if err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("session ended", "session_id", sessionID)

	return nil
}

func (that *GameManager) lock(sessionID string) (func(), error) {
	if sessionID == "" {
		return nil, apperror.ErrEmptySessionID
	}

	entry, _ := that.locks.Compute(sessionID, func(entry *sessionLock, loaded bool) (*sessionLock, bool) {
		if !loaded {
			entry = &sessionLock{}
		}
		entry.refs++

		return entry, false
	})
	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		that.locks.Compute(sessionID, func(entry *sessionLock, _ bool) (*sessionLock, bool) {
			entry.refs--

			return entry, entry.refs == 0
		})
	}, nil
}

func (that *GameManager) loadOrCreate(ctx context.Context, sessionID string) (*tictactoe.Game, error) {
	stored, err := that.gameRepo.GetByID(ctx, sessionID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		return that.createGame(ctx, sessionID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	game, err := restore(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game %s: %w", sessionID, err)
	}

	return game, nil
}

func (that *GameManager) createGame(ctx context.Context, sessionID string) (*tictactoe.Game, error) {
	game, err := tictactoe.NewDefaultGame(that.board)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, snapshot(sessionID, game)); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	that.metrics.GamesStarted.Inc()

	that.logger.Info("game created", "session_id", sessionID)

	return game, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, tictactoe.ErrIndexOutOfRange):
		return "index_out_of_range"
	case errors.Is(err, tictactoe.ErrGameOver):
		return "game_over"
	case errors.Is(err, tictactoe.ErrOccupiedCell):
		return "occupied_cell"
	default:
		return "unknown"
	}
}
