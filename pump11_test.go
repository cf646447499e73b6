package pumpy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPump11Encode(t *testing.T) {
	cases := []struct {
		name string
		op   Operation
		args Args
		want string
	}{
		{"diameter integer", OpSetDiameter, Args{Value: 10}, "MMD10"},
		{"diameter truncated", OpSetDiameter, Args{Value: 10.3456}, "MMD10.34"},
		{"diameter sub-millimeter", OpSetDiameter, Args{Value: 0.5}, "MMD.5"},
		{"flow rate", OpSetFlowRate, Args{Value: 25.5}, "ULM25.5"},
		{"flow rate wide", OpSetFlowRate, Args{Value: 1234.5}, "ULM1234"},
		{"target volume", OpSetTargetVolume, Args{Value: 500}, "MLT500"},
		{"infuse", OpInfuse, Args{}, "RUN"},
		{"withdraw", OpWithdraw, Args{}, "REV"},
		{"stop", OpStop, Args{}, "STP"},
		{"status", OpStatus, Args{}, "VOL"},
	}
	var d Pump11
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := d.Encode(tc.op, tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPump11EncodeRejects(t *testing.T) {
	var d Pump11
	_, err := d.Encode(OpSetDiameter, Args{Value: 36})
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = d.Encode(OpSetDiameter, Args{Value: 0.05})
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = d.Encode(OpSetMode, Args{Mode: "PRO"})
	assert.ErrorIs(t, err, ErrNotSupported)
	_, err = d.Encode(OpSetDirection, Args{Channel: 1})
	assert.ErrorIs(t, err, ErrNotSupported)
	_, err = d.Encode(OpSetDiameter, Args{Value: 10, Channel: 1})
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestPump11Decode(t *testing.T) {
	cases := []struct {
		resp    string
		address int
		status  Status
	}{
		{"01S", 1, Stopped},
		{"05W", 5, Withdrawing},
		{"01I", 1, Infusing},
		{"99T", 99, TargetReached},
		{"12P", 12, Paused},
	}
	var d Pump11
	for _, tc := range cases {
		reply, err := d.Decode(tc.resp)
		require.NoError(t, err, "decode %q", tc.resp)
		assert.Equal(t, tc.address, reply.Address)
		assert.Equal(t, tc.status, reply.Status)
	}
}

func TestPump11DecodeAlarmCode(t *testing.T) {
	var d Pump11
	reply, err := d.Decode("02*4")
	require.NoError(t, err)
	assert.Equal(t, Alarmed, reply.Status)
	assert.Equal(t, 4, reply.AlarmCode)

	reply, err = d.Decode("02*")
	require.NoError(t, err)
	assert.Equal(t, Alarmed, reply.Status)
	assert.Equal(t, 0, reply.AlarmCode)
}

func TestPump11DecodeFailures(t *testing.T) {
	var d Pump11
	for _, resp := range []string{"", "1S", "01X", "ABS", "01"} {
		_, err := d.Decode(resp)
		assert.ErrorIs(t, err, ErrDecode, "decode %q", resp)
	}
}
