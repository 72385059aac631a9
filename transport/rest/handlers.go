package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"go.uber.org/zap"
)

const (
	ActionMove  = "move"
	ActionReset = "reset"

	maxBodyBytes = 1 << 10
)

var (
	errInvalidBody     = errors.New("invalid request body")
	errMissingPosition = errors.New("position is required for move")
	errInvalidPosition = errors.New("position must be a number")
)

// ActionRequest is the body of POST /game, sent as JSON or as form fields.
type ActionRequest struct {
	Action   string `json:"action"`
	Position *int   `json:"position,omitempty"`
}

type ErrorResponse struct {
	Error string           `json:"error"`
	Game  *entity.GameView `json:"game,omitempty"`
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sessionID := that.session(w, r)

	state, err := that.gameUseCase.GetGame(r.Context(), sessionID)
	if err != nil {
		that.logger.Error("failed to get game", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to load the game"})
		return
	}

	writeJSON(w, http.StatusOK, tictactoe.NewView(state))
}

func (that *Server) handleGameAction(w http.ResponseWriter, r *http.Request) {
	sessionID := that.session(w, r)

	req, err := decodeAction(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var state entity.GameState

	switch req.Action {
	case ActionMove:
		if req.Position == nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: errMissingPosition.Error()})
			return
		}
		state, err = that.gameUseCase.MakeMove(r.Context(), sessionID, *req.Position)
	case ActionReset:
		state, err = that.gameUseCase.ResetGame(r.Context(), sessionID)
	default:
		err = fmt.Errorf("%w: %q", apperror.ErrUnknownAction, req.Action)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	switch {
	case apperror.IsRejection(err):
		view := tictactoe.NewView(state)
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: apperror.RejectionReason(err), Game: &view})
	case err != nil:
		that.logger.Error("failed to apply action", zap.String("action", req.Action), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to apply the action"})
	default:
		writeJSON(w, http.StatusOK, tictactoe.NewView(state))
	}
}

func (that *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pkg.SessionFromRequest(r)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := that.gameUseCase.EndSession(r.Context(), sessionID); err != nil {
		that.logger.Error("failed to end session", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to end the session"})
		return
	}

	http.SetCookie(w, &http.Cookie{Name: pkg.SessionCookieName, Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

// decodeAction - reads a JSON body, or the action and position form fields of a form post.
func decodeAction(w http.ResponseWriter, r *http.Request) (ActionRequest, error) {
	var req ActionRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/x-www-form-urlencoded" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return ActionRequest{}, errInvalidBody
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return ActionRequest{}, errInvalidBody
	}

	req.Action = r.PostForm.Get("action")
	if raw := r.PostForm.Get("position"); raw != "" {
		position, err := strconv.Atoi(raw)
		if err != nil {
			return ActionRequest{}, errInvalidPosition
		}
		req.Position = &position
	}

	return req, nil
}

// session returns the caller's session ID, issuing a cookie for new callers.
func (that *Server) session(w http.ResponseWriter, r *http.Request) string {
	if sessionID, ok := pkg.SessionFromRequest(r); ok {
		return sessionID
	}

	sessionID := pkg.GenerateSessionID()
	http.SetCookie(w, pkg.NewSessionCookie(sessionID, that.sessionTTL))

	return sessionID
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
