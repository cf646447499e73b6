package pumpy

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptTransport plays back canned response lines and records every frame
// written to it, standing in for the physical serial line.
type scriptTransport struct {
	writes  []string
	replies []string
}

func (t *scriptTransport) Write(p []byte) (int, error) {
	t.writes = append(t.writes, string(p))
	return len(p), nil
}

func (t *scriptTransport) ReadUntil(term byte, timeout time.Duration) ([]byte, error) {
	if len(t.replies) == 0 {
		return nil, fmt.Errorf("no terminator within %s: %w", timeout, ErrTimeout)
	}
	r := t.replies[0]
	t.replies = t.replies[1:]
	return []byte(r), nil
}

func (t *scriptTransport) Close() error { return nil }

func TestChainSendFraming(t *testing.T) {
	for _, address := range []int{0, 1, 9, 42, 99} {
		tr := &scriptTransport{replies: []string{fmt.Sprintf("%02dS", address)}}
		chain := NewChain(tr, nil)
		resp, err := chain.Send(address, "VOL")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%02dS", address), resp)
		require.Len(t, tr.writes, 1)
		assert.Equal(t, fmt.Sprintf("%02dVOL\r", address), tr.writes[0])
	}
}

func TestChainSendTrimsResponse(t *testing.T) {
	tr := &scriptTransport{replies: []string{"\n  01S  "}}
	chain := NewChain(tr, nil)
	resp, err := chain.Send(1, "VOL")
	require.NoError(t, err)
	assert.Equal(t, "01S", resp)
}

func TestChainSendAddressRange(t *testing.T) {
	chain := NewChain(&scriptTransport{}, nil)
	for _, address := range []int{-1, 100, 1000} {
		_, err := chain.Send(address, "VOL")
		assert.ErrorIs(t, err, ErrOutOfRange)
	}
}

func TestChainSendTimeoutPropagates(t *testing.T) {
	tr := &scriptTransport{}
	chain := NewChain(tr, nil)
	_, err := chain.Send(3, "RUN")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
	// the command still went out; only the reply is missing
	require.Len(t, tr.writes, 1)
	assert.Equal(t, "03RUN\r", tr.writes[0])
}
