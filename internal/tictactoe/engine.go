package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// WinCombos lists every triple in scan order: rows, then columns, then diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Reset returns the initial state: empty board, X to move.
func Reset() entity.GameState {
	return entity.GameState{
		Board:         entity.Board{},
		CurrentPlayer: entity.PlayerX,
		Status:        entity.StatusInProgress,
	}
}

// ApplyMove places the current player's mark at position and returns the resulting state.
// A rejected move returns the input state unchanged together with the reason.
func ApplyMove(state entity.GameState, position int) (entity.GameState, error) {
	if err := validateMove(state, position); err != nil {
		return state, fmt.Errorf("move rejected: %w", err)
	}

	next := state
	next.Board[position] = state.CurrentPlayer

	outcome := EvaluateTermination(next.Board)
	next.Status = outcome.Status
	next.Winner = outcome.Winner

	// the mark that ended the game stays as the current player
	if !outcome.IsTerminal() {
		next.CurrentPlayer = state.CurrentPlayer.Opponent()
	}

	return next, nil
}

// validateMove - checks if the move is valid.
func validateMove(state entity.GameState, position int) error {
	if state.IsOver() {
		return apperror.ErrGameAlreadyOver
	}

	if !IsValidPosition(position) {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidPosition, position)
	}

	if state.Board[position] != entity.EmptyCell {
		return fmt.Errorf("%w: %d", apperror.ErrCellOccupied, position)
	}

	return nil
}

// EvaluateTermination reports whether the board is won, drawn or still in progress.
// A full board with a completed triple counts as won.
func EvaluateTermination(board entity.Board) entity.Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return entity.Outcome{Status: entity.StatusWon, Winner: a}
		}
	}

	if board.IsFull() {
		return entity.Outcome{Status: entity.StatusDraw}
	}

	return entity.Outcome{Status: entity.StatusInProgress}
}

// AvailableMoves returns the indices of empty cells in ascending order.
func AvailableMoves(board entity.Board) []int {
	moves := make([]int, 0, entity.BoardSize)
	for i, cell := range board {
		if cell == entity.EmptyCell {
			moves = append(moves, i)
		}
	}
	return moves
}

func IsValidPosition(position int) bool {
	return position >= 0 && position < entity.BoardSize
}
