package serial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"

	"github.com/jt05610/pumpy"
)

func TestListPorts(t *testing.T) {
	pp, err := ListPorts()
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range pp {
		t.Log(p)
	}
}

// fakePort hands out one scripted byte per read, returning (0, nil) when
// drained, which is how go.bug.st/serial reports a read timeout.
type fakePort struct {
	serial.Port
	data []byte
	pos  int
}

func (f *fakePort) Read(p []byte) (int, error) {
	if f.pos >= len(f.data) {
		return 0, nil
	}
	p[0] = f.data[f.pos]
	f.pos++
	return 1, nil
}

func (f *fakePort) Close() error { return nil }

func TestReadUntil(t *testing.T) {
	p := newPort(&fakePort{data: []byte("\n01S\rjunk")})
	got, err := p.ReadUntil('\r', time.Second)
	require.NoError(t, err)
	assert.Equal(t, "\n01S", string(got))
}

func TestReadUntilTimeout(t *testing.T) {
	p := newPort(&fakePort{data: []byte("01S")}) // no terminator ever arrives
	_, err := p.ReadUntil('\r', 10*time.Millisecond)
	assert.ErrorIs(t, err, pumpy.ErrTimeout)
}
