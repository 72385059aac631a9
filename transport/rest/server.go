package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	GetGame(ctx context.Context, sessionID string) (entity.GameState, error)
	MakeMove(ctx context.Context, sessionID string, position int) (entity.GameState, error)
	ResetGame(ctx context.Context, sessionID string) (entity.GameState, error)
	EndSession(ctx context.Context, sessionID string) error
}

type Server struct {
	logger      *zap.Logger
	gameUseCase gameUseCase
	sessionTTL  time.Duration
}

func New(logger *zap.Logger, gameUseCase gameUseCase, sessionTTL time.Duration) *Server {
	return &Server{
		logger:      logger.With(zap.String("component", "rest")),
		gameUseCase: gameUseCase,
		sessionTTL:  sessionTTL,
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", pingHandler)
	mux.HandleFunc("GET /game", that.handleGetGame)
	mux.HandleFunc("POST /game", that.handleGameAction)
	mux.HandleFunc("DELETE /game", that.handleEndSession)

	return mux
}

// Start - serves HTTP until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", zap.Error(err))
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
