package websocket

import (
	"context"
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"go.uber.org/zap"
)

func (that *Server) handleState(ctx context.Context, sessionID string, _ *Message) Payload {
	state, err := that.gameUseCase.GetGame(ctx, sessionID)
	if err != nil {
		that.logger.Error("failed to get game", zap.String("session", sessionID), zap.Error(err))
		return Payload{Error: "failed to load the game"}
	}

	return gamePayload(state)
}

func (that *Server) handleMove(ctx context.Context, sessionID string, message *Message) Payload {
	var req MovePayload
	if err := json.Unmarshal(message.Payload, &req); err != nil || req.Position == nil {
		return Payload{Error: "position is required"}
	}

	state, err := that.gameUseCase.MakeMove(ctx, sessionID, *req.Position)
	if apperror.IsRejection(err) {
		payload := gamePayload(state)
		payload.Error = apperror.RejectionReason(err)
		return payload
	}

	if err != nil {
		that.logger.Error("failed to make move", zap.String("session", sessionID), zap.Error(err))
		return Payload{Error: "failed to make the move"}
	}

	return gamePayload(state)
}

func (that *Server) handleReset(ctx context.Context, sessionID string, _ *Message) Payload {
	state, err := that.gameUseCase.ResetGame(ctx, sessionID)
	if err != nil {
		that.logger.Error("failed to reset game", zap.String("session", sessionID), zap.Error(err))
		return Payload{Error: "failed to reset the game"}
	}

	return gamePayload(state)
}

// handleEnd drops the session's game. The next action on the session starts a new one.
func (that *Server) handleEnd(ctx context.Context, sessionID string, _ *Message) Payload {
	if err := that.gameUseCase.EndSession(ctx, sessionID); err != nil {
		that.logger.Error("failed to end session", zap.String("session", sessionID), zap.Error(err))
		return Payload{Error: "failed to end the session"}
	}

	return Payload{}
}

func gamePayload(state entity.GameState) Payload {
	view := tictactoe.NewView(state)
	return Payload{Game: &view}
}
