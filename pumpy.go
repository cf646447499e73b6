// Package pumpy drives addressable laboratory syringe pumps that share a
// single RS-232 line in a multi-drop "pump chain". An address is set on each
// pump; a Chain owns the serial line and interleaves exchanges between the
// addressed devices. Each pump family speaks its own ASCII dialect, modeled
// as a Dialect implementation bound to a Pump.
//
// Supported families: Harvard Pump 11/11 Plus (Pump11), Harvard PHD2000
// (PHD2000), SSI Mighty Mini piston pump (MightyMini), and the Harvard
// Pump 33 dual-syringe controller (Pump33).
package pumpy

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Status is the pump operating state reported by a status token. It is
// always derived from the most recent decoded reply, never synthesized.
type Status int

const (
	Stopped Status = iota
	Infusing
	Withdrawing
	TargetReached
	Paused
	Alarmed
)

var statusNames = []string{
	Stopped:       "stopped",
	Infusing:      "infusing",
	Withdrawing:   "withdrawing",
	TargetReached: "target reached",
	Paused:        "paused",
	Alarmed:       "alarm",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// Operation is a logical pump operation, encoded into a family-specific
// command body by a Dialect.
type Operation int

const (
	OpInfuse Operation = iota
	OpWithdraw
	OpStop
	OpStart
	OpSetDiameter
	OpSetFlowRate
	OpSetTargetVolume
	OpSetDirection
	OpSetMode
	OpStatus
)

var opNames = []string{
	OpInfuse:          "infuse",
	OpWithdraw:        "withdraw",
	OpStop:            "stop",
	OpStart:           "start",
	OpSetDiameter:     "set diameter",
	OpSetFlowRate:     "set flow rate",
	OpSetTargetVolume: "set target volume",
	OpSetDirection:    "set direction",
	OpSetMode:         "set mode",
	OpStatus:          "status",
}

func (op Operation) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "unknown"
	}
	return opNames[op]
}

// Direction selects the travel direction of a Pump 33 syringe channel.
type Direction int

const (
	DirInfuse Direction = iota
	DirRefill
)

func (d Direction) String() string {
	if d == DirRefill {
		return "REF"
	}
	return "INF"
}

// Args carries the operation arguments a Dialect may need. Channel is 0 for
// single-syringe families and 1 or 2 for Pump 33 channel operations.
type Args struct {
	Value   float64
	Channel int
	Dir     Direction
	Mode    string
}

// Reply is a decoded pump response: the echoed address, the reported state,
// the alarm code when Status is Alarmed, and any remaining payload text.
type Reply struct {
	Address   int
	Status    Status
	AlarmCode int
	Payload   string
}

// Dialect is the per-family encode/decode ruleset. Implementations are pure:
// they hold no connection state and are safe to share between pumps.
type Dialect interface {
	// Encode builds the unterminated, unaddressed command body for op.
	// Operations a family lacks fail with ErrNotSupported; arguments the
	// hardware would refuse fail with ErrOutOfRange. Neither touches the bus.
	Encode(op Operation, args Args) (string, error)

	// Decode parses a trimmed response line into a Reply. Responses that do
	// not match the family's status vocabulary fail with ErrDecode.
	Decode(resp string) (Reply, error)
}

// Transport is a duplex byte stream to the physical serial line. It is owned
// exclusively by a Chain. The production implementation lives in comm/serial.
type Transport interface {
	Write(p []byte) (int, error)

	// ReadUntil blocks until term is seen or timeout elapses, returning the
	// bytes received before term. It fails with ErrTimeout when no terminator
	// arrives in time.
	ReadUntil(term byte, timeout time.Duration) ([]byte, error)

	Close() error
}

// DialectByName resolves a pump family name as used by the CLI and the
// device server.
func DialectByName(family string) (Dialect, error) {
	switch strings.ToLower(family) {
	case "pump11", "11":
		return Pump11{}, nil
	case "phd2000", "2000":
		return PHD2000{}, nil
	case "mightymini", "mini":
		return MightyMini{}, nil
	case "pump33", "33":
		return Pump33{}, nil
	}
	return nil, fmt.Errorf("unknown pump family %q", family)
}

// Status token vocabularies. The Harvard families share the full set; the
// Mighty Mini only ever reports stopped, running, or fault.
const (
	harvardTokens = "SIWTP*"
	miniTokens    = "SI*"
)

var tokenStatus = map[byte]Status{
	'S': Stopped,
	'I': Infusing,
	'W': Withdrawing,
	'T': TargetReached,
	'P': Paused,
	'*': Alarmed,
}

// decodeReply parses the shared reply framing: a two-digit address echo, a
// single status token from tokens, and an optional payload. The alarm token
// may be followed by a numeric fault code.
func decodeReply(text, tokens string) (Reply, error) {
	s := strings.TrimSpace(text)
	if len(s) < 3 {
		return Reply{}, fmt.Errorf("reply %q too short: %w", text, ErrDecode)
	}
	addr, err := strconv.Atoi(s[:2])
	if err != nil {
		return Reply{}, fmt.Errorf("reply %q: bad address echo: %w", text, ErrDecode)
	}
	tok := s[2]
	if !strings.ContainsRune(tokens, rune(tok)) {
		return Reply{}, fmt.Errorf("reply %q: unknown status token %q: %w", text, string(tok), ErrDecode)
	}
	r := Reply{
		Address: addr,
		Status:  tokenStatus[tok],
		Payload: strings.TrimSpace(s[3:]),
	}
	if r.Status == Alarmed && r.Payload != "" {
		if code, err := strconv.Atoi(r.Payload); err == nil {
			r.AlarmCode = code
		}
	}
	return r, nil
}
