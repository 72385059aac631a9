package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

// play applies every position in order and fails the test on the first rejection.
func play(t *testing.T, positions ...int) entity.GameState {
	t.Helper()

	state := Reset()
	for _, position := range positions {
		var err error
		state, err = ApplyMove(state, position)
		require.NoError(t, err, "position %d", position)
	}

	return state
}

func TestReset(t *testing.T) {
	// When: resetting
	state := Reset()

	// Then: the state is the fixed initial state
	expected := entity.GameState{
		Board:         entity.Board{e, e, e, e, e, e, e, e, e},
		CurrentPlayer: x,
		Status:        entity.StatusInProgress,
	}
	require.Equal(t, expected, state)

	t.Run("Reset is identical regardless of the prior state", func(t *testing.T) {
		// Given: a won game and a drawn game
		won := play(t, 0, 4, 1, 3, 2)
		drawn := play(t, 0, 2, 1, 3, 5, 4, 6, 7, 8)
		require.True(t, won.IsOver())
		require.True(t, drawn.IsOver())

		// Then: reset always produces the same value
		assert.Equal(t, expected, Reset())
		assert.Equal(t, Reset(), Reset())
	})
}

func TestApplyMove(t *testing.T) {
	t.Run("Valid move places the mark and flips the turn", func(t *testing.T) {
		// Given: a new game
		state := Reset()

		// When: X moves to the centre
		next, err := ApplyMove(state, 4)
		require.NoError(t, err)

		// Then: the cell holds X and O is to move
		expected := entity.GameState{
			Board:         entity.Board{e, e, e, e, x, e, e, e, e},
			CurrentPlayer: o,
			Status:        entity.StatusInProgress,
		}
		require.Equal(t, expected, next)
	})

	t.Run("Prior state is not aliased by the returned state", func(t *testing.T) {
		// Given: a new game
		state := Reset()

		// When: a move is applied
		next, err := ApplyMove(state, 0)
		require.NoError(t, err)

		// Then: the prior value is untouched
		assert.Equal(t, Reset(), state)
		assert.NotEqual(t, state, next)
	})

	t.Run("Out of range positions are rejected", func(t *testing.T) {
		for _, position := range []int{-100, -1, 9, 10, 20, 1 << 20} {
			// Given: a game with one move played
			state := play(t, 0)

			// When: moving outside the board
			next, err := ApplyMove(state, position)

			// Then: the move is rejected and the state is unchanged
			require.ErrorIs(t, err, apperror.ErrInvalidPosition, "position %d", position)
			assert.True(t, apperror.IsRejection(err))
			assert.Equal(t, state, next)
		}
	})

	t.Run("Move to an occupied cell is rejected", func(t *testing.T) {
		// Given: X has taken cell 0
		state := play(t, 0)

		// When: O tries the same cell
		next, err := ApplyMove(state, 0)

		// Then: the move is rejected, board and turn unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, state, next)
		assert.Equal(t, o, next.CurrentPlayer)
		assert.Equal(t, entity.Board{x, e, e, e, e, e, e, e, e}, next.Board)
	})

	t.Run("Move after a win is rejected even on an empty cell", func(t *testing.T) {
		// Given: X has won on the top row
		state := play(t, 0, 4, 1, 3, 2)
		require.Equal(t, entity.StatusWon, state.Status)
		require.Equal(t, e, state.Board[8])

		// When: a move to an empty cell is attempted
		next, err := ApplyMove(state, 8)

		// Then: the game is already over
		require.ErrorIs(t, err, apperror.ErrGameAlreadyOver)
		assert.Equal(t, state, next)
	})

	t.Run("Game over is reported before position problems", func(t *testing.T) {
		state := play(t, 0, 4, 1, 3, 2)

		_, err := ApplyMove(state, 42)

		assert.ErrorIs(t, err, apperror.ErrGameAlreadyOver)
	})

	t.Run("Move after a draw is rejected", func(t *testing.T) {
		state := play(t, 0, 2, 1, 3, 5, 4, 6, 7, 8)
		require.Equal(t, entity.StatusDraw, state.Status)

		next, err := ApplyMove(state, 0)

		require.ErrorIs(t, err, apperror.ErrGameAlreadyOver)
		assert.Equal(t, state, next)
	})

	t.Run("Turn alternates strictly while the game continues", func(t *testing.T) {
		state := Reset()
		expectedTurns := []entity.Mark{o, x, o, x, o, x}

		for i, position := range []int{0, 1, 2, 4, 3, 5} {
			var err error
			state, err = ApplyMove(state, position)
			require.NoError(t, err)
			require.True(t, state.IsInProgress())

			assert.Equal(t, expectedTurns[i], state.CurrentPlayer, "after move %d", i)
		}
	})
}

func TestApplyMove_Scenarios(t *testing.T) {
	t.Run("X wins on the top row", func(t *testing.T) {
		// When: X plays 0, 1, 2 while O plays 4, 3
		state := play(t, 0, 4, 1, 3, 2)

		// Then: X has won and the turn stays with X
		assert.Equal(t, entity.Board{x, x, x, o, o, e, e, e, e}, state.Board)
		assert.Equal(t, entity.StatusWon, state.Status)
		assert.Equal(t, x, state.Winner)
		assert.Equal(t, x, state.CurrentPlayer)
	})

	t.Run("Full board without a triple is a draw", func(t *testing.T) {
		// When: X takes 0,1,5,6,8 and O takes 2,3,4,7
		state := play(t, 0, 2, 1, 3, 5, 4, 6, 7, 8)

		// Then: the game is drawn with no winner
		assert.Equal(t, entity.StatusDraw, state.Status)
		assert.Equal(t, e, state.Winner)
		assert.Equal(t, x, state.CurrentPlayer)
	})

	t.Run("Win on the last free cell is a win, not a draw", func(t *testing.T) {
		// When: X fills the board with the final move completing the diagonal
		state := play(t, 0, 1, 2, 3, 6, 5, 8, 7, 4)

		// Then: the board is full and X has won
		assert.True(t, state.Board.IsFull())
		assert.Equal(t, entity.StatusWon, state.Status)
		assert.Equal(t, x, state.Winner)
	})

	t.Run("O can win", func(t *testing.T) {
		state := play(t, 0, 2, 1, 4, 8, 6)

		assert.Equal(t, entity.StatusWon, state.Status)
		assert.Equal(t, o, state.Winner)
		assert.Equal(t, o, state.CurrentPlayer)
	})
}

func TestEvaluateTermination(t *testing.T) {
	t.Run("Every triple is detected", func(t *testing.T) {
		for _, combo := range WinCombos {
			// Given: a board with only this triple filled by O
			var board entity.Board
			for _, idx := range combo {
				board[idx] = o
			}

			// Then: O has won
			assert.Equal(t, entity.Outcome{Status: entity.StatusWon, Winner: o}, EvaluateTermination(board), "combo %v", combo)
		}
	})

	t.Run("Empty board is in progress", func(t *testing.T) {
		assert.Equal(t, entity.Outcome{Status: entity.StatusInProgress}, EvaluateTermination(entity.Board{}))
	})

	t.Run("Mixed triple is not a win", func(t *testing.T) {
		board := entity.Board{x, x, o, e, e, e, e, e, e}

		assert.Equal(t, entity.StatusInProgress, EvaluateTermination(board).Status)
	})

	t.Run("Board with two triples reports a single winner", func(t *testing.T) {
		// Given: X owns both row 0 and column 0
		board := entity.Board{x, x, x, x, o, o, x, o, o}

		assert.Equal(t, entity.Outcome{Status: entity.StatusWon, Winner: x}, EvaluateTermination(board))
	})

	t.Run("Every board has exactly one well-formed outcome", func(t *testing.T) {
		marks := []entity.Mark{e, x, o}

		// enumerate all 3^9 boards
		for n := 0; n < 19683; n++ {
			var board entity.Board
			v := n
			for i := range board {
				board[i] = marks[v%3]
				v /= 3
			}

			outcome := EvaluateTermination(board)

			switch outcome.Status {
			case entity.StatusWon:
				require.Contains(t, []entity.Mark{x, o}, outcome.Winner)
			case entity.StatusDraw:
				require.Equal(t, e, outcome.Winner)
				require.True(t, board.IsFull())
			case entity.StatusInProgress:
				require.Equal(t, e, outcome.Winner)
				require.False(t, board.IsFull())
			default:
				t.Fatalf("unexpected status %q", outcome.Status)
			}
		}
	})
}

func TestAvailableMoves(t *testing.T) {
	t.Run("All cells are available on an empty board", func(t *testing.T) {
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, AvailableMoves(entity.Board{}))
	})

	t.Run("Occupied cells are skipped", func(t *testing.T) {
		board := entity.Board{x, e, o, e, x, e, e, e, o}

		assert.Equal(t, []int{1, 3, 5, 6, 7}, AvailableMoves(board))
	})

	t.Run("Full board has no moves", func(t *testing.T) {
		board := entity.Board{x, o, x, o, x, o, o, x, o}

		assert.Empty(t, AvailableMoves(board))
	})
}

func TestIsValidPosition(t *testing.T) {
	assert.True(t, IsValidPosition(0))
	assert.True(t, IsValidPosition(8))
	assert.False(t, IsValidPosition(-1))
	assert.False(t, IsValidPosition(9))
}
