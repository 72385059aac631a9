package entity

// GameView is what presentation layers show after every action.
type GameView struct {
	Board      [BoardSize]string `json:"board"`
	PlayerTurn string            `json:"player_turn,omitempty"`
	Status     Status            `json:"status"`
	Winner     string            `json:"winner,omitempty"`
	Draw       bool              `json:"draw"`

	// AvailableMoves lists the open cells while the game is in progress.
	AvailableMoves []int `json:"available_moves,omitempty"`
}

func NewGameView(state GameState) GameView {
	view := GameView{Status: state.Status}

	for i, cell := range state.Board {
		view.Board[i] = string(cell)
	}

	switch state.Status {
	case StatusInProgress:
		view.PlayerTurn = string(state.CurrentPlayer)
	case StatusWon:
		view.Winner = string(state.Winner)
	case StatusDraw:
		view.Draw = true
	}

	return view
}
