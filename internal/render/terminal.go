package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	colorX = "#ff5f87"
	colorO = "#5fafff"

	rowSeparator = "---+---+---"
)

// Terminal draws game states for a terminal. Colours follow the output's detected profile.
type Terminal struct {
	output *termenv.Output
}

func NewTerminal(output *termenv.Output) *Terminal {
	return &Terminal{output: output}
}

// Board draws the grid. Empty cells show their index so players know what to type.
func (that *Terminal) Board(board entity.Board) string {
	var sb strings.Builder

	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString(rowSeparator + "\n")
		}

		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			idx := row*3 + col
			cells[col] = " " + that.cell(board[idx], idx) + " "
		}

		sb.WriteString(strings.Join(cells, "|") + "\n")
	}

	return sb.String()
}

func (that *Terminal) cell(mark entity.Mark, idx int) string {
	switch mark {
	case entity.PlayerX:
		return that.output.String(string(mark)).Foreground(that.output.Color(colorX)).Bold().String()
	case entity.PlayerO:
		return that.output.String(string(mark)).Foreground(that.output.Color(colorO)).Bold().String()
	default:
		return that.output.String(strconv.Itoa(idx)).Faint().String()
	}
}

// Status describes whose turn it is or how the game ended.
func (that *Terminal) Status(state entity.GameState) string {
	switch state.Status {
	case entity.StatusWon:
		return that.output.String(fmt.Sprintf("Player %s wins!", state.Winner)).Bold().String()
	case entity.StatusDraw:
		return that.output.String("It's a draw!").Bold().String()
	default:
		return fmt.Sprintf("Current player: %s", state.CurrentPlayer)
	}
}

// OpenCells lists the cells that can still be played.
func (that *Terminal) OpenCells(moves []int) string {
	cells := make([]string, len(moves))
	for i, move := range moves {
		cells[i] = strconv.Itoa(move)
	}

	return that.output.String("Open cells: " + strings.Join(cells, " ")).Faint().String()
}

func (that *Terminal) Rejection(err error) string {
	return that.output.String("rejected: " + apperror.RejectionReason(err)).Italic().String()
}

// Game draws the board followed by the status line.
func (that *Terminal) Game(state entity.GameState) string {
	return that.Board(state.Board) + "\n" + that.Status(state) + "\n"
}
