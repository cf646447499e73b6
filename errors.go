package pumpy

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when no terminated response arrives within the
	// configured window. A silent device at the addressed position is a
	// valid outcome; the caller decides whether to retry. The core never
	// retries on its own, since a delayed reply to the prior command could
	// be misread as the reply to a retry.
	ErrTimeout = errors.New("response timeout")

	// ErrDecode is returned when a response does not match the bound
	// dialect's status-token grammar.
	ErrDecode = errors.New("undecodable response")

	// ErrAddressMismatch is returned when a well-formed reply echoes a
	// different address than the one commanded.
	ErrAddressMismatch = errors.New("response address mismatch")

	// ErrCommandRejected is returned when the hardware answers a
	// configuration command with an error or alarm status.
	ErrCommandRejected = errors.New("command rejected by pump")

	// ErrInvalidSequence is returned before anything is sent when a family
	// is known to ignore the requested transition, such as a PHD2000
	// direction reversal without an intervening stop.
	ErrInvalidSequence = errors.New("invalid operation sequence")

	// ErrTargetTimeout is returned by WaitUntilTarget when its optional
	// bound elapses before the target volume is reached.
	ErrTargetTimeout = errors.New("target volume not reached in time")

	// ErrNotSupported is returned when the bound family has no such
	// operation, e.g. setting a diameter on a Mighty Mini.
	ErrNotSupported = errors.New("operation not supported by pump family")

	// ErrOutOfRange is returned for argument values the hardware would
	// refuse, before any bus exchange.
	ErrOutOfRange = errors.New("value out of range")
)

// AlarmError reports a decoded alarm status, with the fault code when the
// pump supplied one. The alarm is terminal until the hardware accepts an
// explicit stop or reset.
type AlarmError struct {
	Code int
}

func (e *AlarmError) Error() string {
	return fmt.Sprintf("pump alarm (code %d)", e.Code)
}
