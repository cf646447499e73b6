package pumpy

import (
	"fmt"
	"strconv"
)

// PHD2000 is the dialect of the Harvard PHD2000. It speaks the Pump 11
// grammar at Pump 11 precision so mixed chains stay compatible, with two
// firmware quirks: target volumes travel in mL rather than uL, and a
// direction reversal is silently ignored unless a stop is issued first.
//
// A target volume is only honored when the pump is in volume mode; waiting
// for the target outside volume mode never completes. That is a hardware
// limitation, not a protocol failure.
type PHD2000 struct{}

func (PHD2000) Encode(op Operation, args Args) (string, error) {
	if op == OpSetTargetVolume {
		if args.Channel != 0 {
			return "", fmt.Errorf("%s: channel %d: %w", op, args.Channel, ErrNotSupported)
		}
		if args.Value <= 0 {
			return "", fmt.Errorf("target volume %g uL: %w", args.Value, ErrOutOfRange)
		}
		// uL to mL, clipped to the five characters the firmware reads.
		s := strconv.FormatFloat(args.Value/1000.0, 'f', -1, 64)
		if len(s) > 5 {
			s = s[:5]
		}
		return "MLT" + s, nil
	}
	return Pump11{}.Encode(op, args)
}

func (PHD2000) Decode(resp string) (Reply, error) {
	return decodeReply(resp, harvardTokens)
}

// StopBetweenReversals marks the firmware's refusal to reverse direction
// without an intervening stop. Pump rejects such sequences locally rather
// than burn a bus exchange on a command the hardware will ignore.
func (PHD2000) StopBetweenReversals() bool { return true }
