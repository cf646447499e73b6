// Package serial adapts a physical serial port to the pumpy.Transport
// contract using go.bug.st/serial.
package serial

import (
	"fmt"
	"time"

	"go.bug.st/serial"

	"github.com/jt05610/pumpy"
)

// pollTimeout bounds each raw read so ReadUntil can honor its own deadline.
const pollTimeout = 100 * time.Millisecond

// Port is a pumpy.Transport over a physical serial port.
type Port struct {
	port serial.Port
}

var _ pumpy.Transport = (*Port)(nil)

// ListPorts returns the serial port names present on the system.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, err
	}
	return ports, nil
}

// Open opens name at baud with no parity and 8 data bits. Harvard chains
// want two stop bits; the Mighty Mini wants one.
func Open(name string, baud int, stopBits int) (*Port, error) {
	stop := serial.TwoStopBits
	if stopBits == 1 {
		stop = serial.OneStopBit
	}
	p, err := serial.Open(name, &serial.Mode{
		BaudRate: baud,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: stop,
	})
	if err != nil {
		return nil, err
	}
	if err := p.SetReadTimeout(pollTimeout); err != nil {
		_ = p.Close()
		return nil, err
	}
	if err := p.ResetInputBuffer(); err != nil {
		_ = p.Close()
		return nil, err
	}
	return &Port{port: p}, nil
}

func newPort(p serial.Port) *Port {
	return &Port{port: p}
}

func (p *Port) Write(data []byte) (int, error) {
	return p.port.Write(data)
}

// ReadUntil accumulates bytes until term is seen, returning everything
// before it. It fails with pumpy.ErrTimeout when term does not arrive
// within timeout.
func (p *Port) ReadUntil(term byte, timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	buf := make([]byte, 0, 64)
	one := make([]byte, 1)
	for {
		n, err := p.port.Read(one)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			if one[0] == term {
				return buf, nil
			}
			buf = append(buf, one[0])
		}
		// n == 0 means the port-level read timed out with no data.
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("no terminator within %s: %w", timeout, pumpy.ErrTimeout)
		}
	}
}

func (p *Port) Close() error {
	return p.port.Close()
}
