package websocket

import (
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	ActionState = "game:state"
	ActionMove  = "game:move"
	ActionReset = "game:reset"
	ActionEnd   = "game:end"
)

// Message is a client request: an action and its optional payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type MovePayload struct {
	Position *int `json:"position"`
}

// Response echoes the request action.
type Response struct {
	Action  string  `json:"action"`
	Payload Payload `json:"payload"`
}

type Payload struct {
	Session string           `json:"session,omitempty"`
	Game    *entity.GameView `json:"game,omitempty"`
	Error   string           `json:"error,omitempty"`
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
