package pumpy

import "fmt"

// Pump 11 diameter limits in mm; values outside are refused by the firmware.
const (
	minDiameter = 0.1
	maxDiameter = 35.0
)

// Pump11 is the dialect of the Harvard Pump 11 and 11 Plus.
type Pump11 struct{}

func (Pump11) Encode(op Operation, args Args) (string, error) {
	if args.Channel != 0 {
		return "", fmt.Errorf("%s: channel %d: %w", op, args.Channel, ErrNotSupported)
	}
	switch op {
	case OpSetDiameter:
		if args.Value < minDiameter || args.Value > maxDiameter {
			return "", fmt.Errorf("diameter %g mm (must be %g-%g mm): %w",
				args.Value, minDiameter, maxDiameter, ErrOutOfRange)
		}
		return "MMD" + truncateValue(args.Value), nil
	case OpSetFlowRate:
		if args.Value <= 0 {
			return "", fmt.Errorf("flow rate %g uL/min: %w", args.Value, ErrOutOfRange)
		}
		return "ULM" + truncateValue(args.Value), nil
	case OpSetTargetVolume:
		if args.Value <= 0 {
			return "", fmt.Errorf("target volume %g uL: %w", args.Value, ErrOutOfRange)
		}
		return "MLT" + truncateValue(args.Value), nil
	case OpInfuse:
		return "RUN", nil
	case OpWithdraw:
		return "REV", nil
	case OpStop:
		return "STP", nil
	case OpStatus:
		return "VOL", nil
	}
	return "", fmt.Errorf("%s: %w", op, ErrNotSupported)
}

func (Pump11) Decode(resp string) (Reply, error) {
	return decodeReply(resp, harvardTokens)
}
