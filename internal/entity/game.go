package entity

type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

// Opponent returns the mark that moves after this one.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDraw       Status = "draw"
)

const BoardSize = 9

// Board is a 3x3 grid stored row-major: index 0 is top-left, index 8 is bottom-right.
type Board [BoardSize]Mark

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// Outcome is the result of evaluating a board. Winner is set only for StatusWon.
type Outcome struct {
	Status Status
	Winner Mark
}

func (that Outcome) IsTerminal() bool {
	return that.Status != StatusInProgress
}

// GameState holds everything a session persists about one game.
type GameState struct {
	Board         Board  `json:"board"`
	CurrentPlayer Mark   `json:"player_turn"`
	Status        Status `json:"status"`
	Winner        Mark   `json:"winner,omitempty"`
}

func (that GameState) IsOver() bool {
	return that.Status != StatusInProgress
}

func (that GameState) IsInProgress() bool {
	return that.Status == StatusInProgress
}
