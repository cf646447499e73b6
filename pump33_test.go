package pumpy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPump33ChannelSuffixes(t *testing.T) {
	var d Pump33
	one, err := d.Encode(OpSetDiameter, Args{Value: 10.3, Channel: 1})
	require.NoError(t, err)
	two, err := d.Encode(OpSetDiameter, Args{Value: 10.3, Channel: 2})
	require.NoError(t, err)
	assert.Equal(t, "DIA1 10.3", one)
	assert.Equal(t, "DIA2 10.3", two)
	assert.NotEqual(t, one, two)
}

func TestPump33Encode(t *testing.T) {
	var d Pump33
	cases := []struct {
		name string
		op   Operation
		args Args
		want string
	}{
		{"flow rate channel 1", OpSetFlowRate, Args{Value: 500, Channel: 1}, "RAT1 500"},
		{"flow rate channel 2", OpSetFlowRate, Args{Value: 0.5, Channel: 2}, "RAT2 .5"},
		{"direction infuse", OpSetDirection, Args{Dir: DirInfuse, Channel: 1}, "DIR1 INF"},
		{"direction refill", OpSetDirection, Args{Dir: DirRefill, Channel: 2}, "DIR2 REF"},
		{"mode", OpSetMode, Args{Mode: "PRO"}, "MOD PRO"},
		{"run", OpInfuse, Args{}, "RUN"},
		{"stop", OpStop, Args{}, "STP"},
		{"status", OpStatus, Args{}, "VOL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := d.Encode(tc.op, tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPump33EncodeRejects(t *testing.T) {
	var d Pump33
	// channel operations need an explicit channel
	for _, op := range []Operation{OpSetDiameter, OpSetFlowRate, OpSetDirection} {
		_, err := d.Encode(op, Args{Value: 10})
		assert.ErrorIs(t, err, ErrOutOfRange, "%s without channel", op)
		_, err = d.Encode(op, Args{Value: 10, Channel: 3})
		assert.ErrorIs(t, err, ErrOutOfRange, "%s channel 3", op)
	}
	// direction is per channel; a global withdraw does not exist
	_, err := d.Encode(OpWithdraw, Args{})
	assert.ErrorIs(t, err, ErrNotSupported)
	_, err = d.Encode(OpSetTargetVolume, Args{Value: 100})
	assert.ErrorIs(t, err, ErrNotSupported)
	_, err = d.Encode(OpSetMode, Args{})
	assert.ErrorIs(t, err, ErrOutOfRange)
}
