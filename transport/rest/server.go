package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/gridtictactoe/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	GetOrCreateGame(ctx context.Context, sessionID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, sessionID string, cell int) (*entity.Game, error)
	Reset(ctx context.Context, sessionID string) (*entity.Game, error)
	EndSession(ctx context.Context, sessionID string) error
}

type Server struct {
	logger  *slog.Logger
	game    gameUseCase
	metrics http.Handler
}

// New builds the HTTP API. metrics may be nil to leave /metrics out.
func New(logger *slog.Logger, game gameUseCase, metrics http.Handler) *Server {
	return &Server{
		logger:  logger.With("component", "rest"),
		game:    game,
		metrics: metrics,
	}
}

func (that *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", that.handlePing)
	mux.HandleFunc("GET /game", that.handleGetGame)
	mux.HandleFunc("DELETE /game", that.handleEndSession)
	mux.HandleFunc("POST /game/move/{cell}", that.handleMove)
	mux.HandleFunc("POST /game/reset", that.handleReset)

	if that.metrics != nil {
		mux.Handle("GET /metrics", that.metrics)
	}

	return mux
}

// Start serves the API on port until ctx is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		return nil
	}
}
