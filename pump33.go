package pumpy

import "fmt"

// Pump33 is the dialect of the Harvard Pump 33 dual-syringe controller. Both
// syringe channels share one bus address; channel operations carry a 1 or 2
// suffix in the command body, each with its own diameter, flow rate, and
// travel direction (INF/REF). The mode setting (e.g. PRO) is global.
//
// Running and stopping are likewise global: direction per channel is chosen
// with OpSetDirection, then OpInfuse starts the controller, so there is no
// separate withdraw operation.
type Pump33 struct{}

func (Pump33) Encode(op Operation, args Args) (string, error) {
	switch op {
	case OpSetDiameter:
		suffix, err := channelSuffix(op, args.Channel)
		if err != nil {
			return "", err
		}
		if args.Value < minDiameter || args.Value > maxDiameter {
			return "", fmt.Errorf("diameter %g mm (must be %g-%g mm): %w",
				args.Value, minDiameter, maxDiameter, ErrOutOfRange)
		}
		return "DIA" + suffix + " " + truncateValue(args.Value), nil
	case OpSetFlowRate:
		suffix, err := channelSuffix(op, args.Channel)
		if err != nil {
			return "", err
		}
		if args.Value <= 0 {
			return "", fmt.Errorf("flow rate %g uL/min: %w", args.Value, ErrOutOfRange)
		}
		return "RAT" + suffix + " " + truncateValue(args.Value), nil
	case OpSetDirection:
		suffix, err := channelSuffix(op, args.Channel)
		if err != nil {
			return "", err
		}
		return "DIR" + suffix + " " + args.Dir.String(), nil
	case OpSetMode:
		if args.Mode == "" {
			return "", fmt.Errorf("empty mode: %w", ErrOutOfRange)
		}
		return "MOD " + args.Mode, nil
	case OpInfuse:
		return "RUN", nil
	case OpStop:
		return "STP", nil
	case OpStatus:
		return "VOL", nil
	}
	return "", fmt.Errorf("%s: %w", op, ErrNotSupported)
}

func (Pump33) Decode(resp string) (Reply, error) {
	return decodeReply(resp, harvardTokens)
}

func channelSuffix(op Operation, channel int) (string, error) {
	switch channel {
	case 1:
		return "1", nil
	case 2:
		return "2", nil
	}
	return "", fmt.Errorf("%s: channel must be 1 or 2, got %d: %w", op, channel, ErrOutOfRange)
}
