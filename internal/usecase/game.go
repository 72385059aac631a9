package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"go.uber.org/zap"
)

type GameUseCase interface {
	GetGame(ctx context.Context, sessionID string) (entity.GameState, error)
	MakeMove(ctx context.Context, sessionID string, position int) (entity.GameState, error)
	ResetGame(ctx context.Context, sessionID string) (entity.GameState, error)
	EndSession(ctx context.Context, sessionID string) error
}

type sessionRepo interface {
	Get(ctx context.Context, sessionID string) (entity.GameState, error)
	Save(ctx context.Context, sessionID string, state entity.GameState) error
	Delete(ctx context.Context, sessionID string) error
	Update(ctx context.Context, sessionID string, fn repository.UpdateFunc) (entity.GameState, error)
}

type gameUseCase struct {
	logger      *zap.Logger
	sessionRepo sessionRepo
}

func NewGameUseCase(logger *zap.Logger, sessionRepo sessionRepo) GameUseCase {
	return &gameUseCase{
		logger:      logger.With(zap.String("component", "game")),
		sessionRepo: sessionRepo,
	}
}

// GetGame returns the session's game, starting a new one if the session has none yet.
func (that *gameUseCase) GetGame(ctx context.Context, sessionID string) (entity.GameState, error) {
	state, err := that.sessionRepo.Get(ctx, sessionID)
	if err == nil {
		return state, nil
	}

	if !errors.Is(err, apperror.ErrSessionNotFound) {
		that.logger.Error("failed to load session", zap.String("session", sessionID), zap.Error(err))
		return entity.GameState{}, fmt.Errorf("failed to get game: %w", err)
	}

	// another request may have created the game in the meantime
	state, err = that.sessionRepo.Update(ctx, sessionID, func(current entity.GameState, found bool) (entity.GameState, error) {
		if found {
			return current, nil
		}
		return tictactoe.Reset(), nil
	})
	if err != nil {
		that.logger.Error("failed to create session", zap.String("session", sessionID), zap.Error(err))
		return entity.GameState{}, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("new game started", zap.String("session", sessionID))

	return state, nil
}

// MakeMove applies a move for the session's current player. Rejected moves return the unchanged
// state together with the rejection.
func (that *gameUseCase) MakeMove(ctx context.Context, sessionID string, position int) (entity.GameState, error) {
	log := that.logger.With(zap.String("session", sessionID), zap.Int("position", position))

	state, err := that.sessionRepo.Update(ctx, sessionID, func(current entity.GameState, found bool) (entity.GameState, error) {
		if !found {
			current = tictactoe.Reset()
		}
		return tictactoe.ApplyMove(current, position)
	})

	switch {
	case apperror.IsRejection(err):
		log.Debug("move rejected", zap.Error(err))
		return state, err
	case err != nil:
		log.Error("failed to make move", zap.Error(err))
		return entity.GameState{}, fmt.Errorf("failed to make move: %w", err)
	}

	if state.IsOver() {
		log.Info("game over", zap.String("status", string(state.Status)), zap.String("winner", string(state.Winner)))
	} else {
		log.Debug("move applied", zap.String("next", string(state.CurrentPlayer)))
	}

	return state, nil
}

func (that *gameUseCase) ResetGame(ctx context.Context, sessionID string) (entity.GameState, error) {
	state := tictactoe.Reset()

	if err := that.sessionRepo.Save(ctx, sessionID, state); err != nil {
		that.logger.Error("failed to reset game", zap.String("session", sessionID), zap.Error(err))
		return entity.GameState{}, fmt.Errorf("failed to reset game: %w", err)
	}

	that.logger.Debug("game reset", zap.String("session", sessionID))

	return state, nil
}

func (that *gameUseCase) EndSession(ctx context.Context, sessionID string) error {
	err := that.sessionRepo.Delete(ctx, sessionID)
	if err != nil && !errors.Is(err, apperror.ErrSessionNotFound) {
		return fmt.Errorf("failed to end session: %w", err)
	}

	return nil
}
