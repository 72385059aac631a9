package apperror

import "errors"

var (
	ErrInvalidPosition  = errors.New("position is out of range")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrGameAlreadyOver  = errors.New("game is already over")
	ErrSessionNotFound  = errors.New("session not found")
	ErrConcurrentUpdate = errors.New("session was updated concurrently")
	ErrUnknownAction    = errors.New("unknown action")
)

// IsRejection reports whether err is a rejected move rather than a failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidPosition) ||
		errors.Is(err, ErrCellOccupied) ||
		errors.Is(err, ErrGameAlreadyOver)
}

// RejectionReason returns the bare rejection message without wrapping context.
func RejectionReason(err error) string {
	for _, rejection := range []error{ErrInvalidPosition, ErrCellOccupied, ErrGameAlreadyOver} {
		if errors.Is(err, rejection) {
			return rejection.Error()
		}
	}

	return err.Error()
}
