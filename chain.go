package pumpy

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Terminator ends every framed command and every response on the wire.
const Terminator byte = '\r'

// DefaultTimeout is the response window used when none is configured.
const DefaultTimeout = 2 * time.Second

// Chain is the shared multi-drop bus. It owns its Transport exclusively and
// serializes every command/response exchange across the pumps addressed on
// it: at most one exchange is ever in flight, because the line is half
// duplex with no collision detection.
//
// A Chain does not lock against concurrent callers. Callers using one Chain
// from more than one goroutine must serialize access themselves.
type Chain struct {
	transport Transport
	timeout   time.Duration
	logger    *zap.Logger
}

// NewChain wraps transport, taking exclusive ownership of it. A nil logger
// disables logging.
func NewChain(transport Transport, logger *zap.Logger) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{
		transport: transport,
		timeout:   DefaultTimeout,
		logger:    logger,
	}
}

// SetTimeout adjusts the per-exchange response window.
func (c *Chain) SetTimeout(d time.Duration) {
	c.timeout = d
}

// Send frames body with the zero-padded two-digit address and the carriage
// return terminator, writes it, and blocks until the terminated response
// arrives. The response is returned with surrounding whitespace trimmed.
// A missing terminator within the window surfaces as ErrTimeout.
func (c *Chain) Send(address int, body string) (string, error) {
	if address < 0 || address > 99 {
		return "", fmt.Errorf("pump address %d: %w", address, ErrOutOfRange)
	}
	frame := fmt.Sprintf("%02d%s%c", address, body, Terminator)
	c.logger.Debug("send", zap.Int("address", address), zap.String("command", body))
	if _, err := c.transport.Write([]byte(frame)); err != nil {
		return "", fmt.Errorf("write %q to %02d: %w", body, address, err)
	}
	raw, err := c.transport.ReadUntil(Terminator, c.timeout)
	if err != nil {
		return "", fmt.Errorf("reply to %q from %02d: %w", body, address, err)
	}
	resp := strings.TrimSpace(string(raw))
	c.logger.Debug("recv", zap.Int("address", address), zap.String("response", resp))
	return resp, nil
}

// Close releases the underlying transport.
func (c *Chain) Close() error {
	return c.transport.Close()
}
