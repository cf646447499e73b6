package pumpy

import "fmt"

// maxMiniFlowRate is the largest flow rate the Mighty Mini display carries.
const maxMiniFlowRate = 9999

// MightyMini is the dialect of the SSI Mighty Mini piston pump. It only
// starts, stops, and sets a flow rate; there is no syringe diameter, no
// withdraw direction, and no target-volume concept, so its status
// vocabulary is reduced to stopped, running, and fault.
type MightyMini struct{}

func (MightyMini) Encode(op Operation, args Args) (string, error) {
	if args.Channel != 0 {
		return "", fmt.Errorf("%s: channel %d: %w", op, args.Channel, ErrNotSupported)
	}
	switch op {
	case OpSetFlowRate:
		if args.Value < 0 {
			return "", fmt.Errorf("flow rate %g uL/min: %w", args.Value, ErrOutOfRange)
		}
		rate := int(args.Value)
		if rate > maxMiniFlowRate {
			rate = maxMiniFlowRate
		}
		return fmt.Sprintf("FM%04d", rate), nil
	case OpStart, OpInfuse:
		return "RU", nil
	case OpStop:
		return "ST", nil
	case OpStatus:
		return "CC", nil
	}
	return "", fmt.Errorf("%s: %w", op, ErrNotSupported)
}

func (MightyMini) Decode(resp string) (Reply, error) {
	return decodeReply(resp, miniTokens)
}
