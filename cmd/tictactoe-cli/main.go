package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/render"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const usage = "enter a cell 0-8, \"reset\" or \"quit\""

// main - plays a hot-seat game in the terminal.
func main() {
	output := termenv.NewOutput(os.Stdout)

	if err := run(os.Stdin, output, render.NewTerminal(output)); err != nil {
		fmt.Fprintf(os.Stderr, "tictactoe: %v\n", err)
		os.Exit(1)
	}
}

func show(out io.Writer, term *render.Terminal, state entity.GameState) {
	fmt.Fprint(out, term.Game(state))

	if state.IsInProgress() {
		fmt.Fprintln(out, term.OpenCells(tictactoe.AvailableMoves(state.Board)))
	}
}

func run(in io.Reader, out io.Writer, term *render.Terminal) error {
	state := tictactoe.Reset()

	fmt.Fprintln(out, usage)
	show(out, term, state)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		command := strings.TrimSpace(strings.ToLower(scanner.Text()))

		switch command {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "reset":
			state = tictactoe.Reset()
		default:
			position, err := strconv.Atoi(command)
			if err != nil {
				fmt.Fprintln(out, usage)
				continue
			}

			next, err := tictactoe.ApplyMove(state, position)
			if err != nil {
				fmt.Fprintln(out, term.Rejection(err))
				continue
			}
			state = next
		}

		show(out, term, state)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}
