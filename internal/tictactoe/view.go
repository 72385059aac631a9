package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// NewView builds the presentation view of state. Open cells are listed only while
// moves can still be made, so finished games offer none.
func NewView(state entity.GameState) entity.GameView {
	view := entity.NewGameView(state)

	if state.IsInProgress() {
		view.AvailableMoves = AvailableMoves(state.Board)
	}

	return view
}
