package pumpy

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultPollInterval is the WaitUntilTarget polling cadence used when the
// caller passes zero.
const DefaultPollInterval = 500 * time.Millisecond

// opNone marks a pump that has not issued a transition yet.
const opNone Operation = -1

// ChannelConfig is the locally remembered configuration of one syringe
// channel. Single-syringe families use channel 0; Pump 33 tracks channels
// 1 and 2 independently.
type ChannelConfig struct {
	Diameter     float64
	FlowRate     float64
	TargetVolume float64
	Direction    Direction
}

// reversalGuard is implemented by dialects whose firmware ignores direction
// reversals without an intervening stop.
type reversalGuard interface {
	StopBetweenReversals() bool
}

// Pump binds a Dialect to an address on a Chain and exposes the operation
// set of that family. It caches the last decoded status and the configured
// values per channel; the cache is private to this pump and only ever
// updated from replies addressed to it.
type Pump struct {
	chain   *Chain
	address int
	dialect Dialect
	logger  *zap.Logger

	status   Status
	lastMove Operation
	channels [3]ChannelConfig

	// sleep is swapped out in tests to make polling deterministic.
	sleep func(time.Duration)
}

// NewPump binds dialect to address on chain. A nil logger disables logging.
// The chain is shared, not owned: closing it is the caller's business.
func NewPump(chain *Chain, address int, dialect Dialect, logger *zap.Logger) *Pump {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pump{
		chain:    chain,
		address:  address,
		dialect:  dialect,
		logger:   logger.With(zap.Int("address", address)),
		lastMove: opNone,
		sleep:    time.Sleep,
	}
}

// Address returns the pump's bus address.
func (p *Pump) Address() int { return p.address }

// LastStatus returns the status decoded from the most recent exchange.
func (p *Pump) LastStatus() Status { return p.status }

// Config returns the remembered configuration of a channel. Use channel 0
// for single-syringe families.
func (p *Pump) Config(channel int) ChannelConfig {
	if channel < 0 || channel >= len(p.channels) {
		return ChannelConfig{}
	}
	return p.channels[channel]
}

// exchange encodes op, runs one bus exchange, and decodes the reply. The
// decoded status is cached. A reply echoing a foreign address fails with
// ErrAddressMismatch; interpreting an Alarmed status is left to the caller.
func (p *Pump) exchange(op Operation, args Args) (Reply, error) {
	body, err := p.dialect.Encode(op, args)
	if err != nil {
		return Reply{}, err
	}
	resp, err := p.chain.Send(p.address, body)
	if err != nil {
		return Reply{}, err
	}
	reply, err := p.dialect.Decode(resp)
	if err != nil {
		return Reply{}, err
	}
	if reply.Address != p.address {
		return Reply{}, fmt.Errorf("commanded %02d but %02d answered: %w",
			p.address, reply.Address, ErrAddressMismatch)
	}
	p.status = reply.Status
	return reply, nil
}

// configure runs a configuration exchange and reports hardware rejection.
func (p *Pump) configure(op Operation, args Args) error {
	reply, err := p.exchange(op, args)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if reply.Status == Alarmed {
		return fmt.Errorf("%s: %v: %w", op, &AlarmError{Code: reply.AlarmCode}, ErrCommandRejected)
	}
	return nil
}

// SetDiameter sets the syringe diameter in mm and remembers it on success.
func (p *Pump) SetDiameter(mm float64) error {
	if err := p.configure(OpSetDiameter, Args{Value: mm}); err != nil {
		return err
	}
	p.channels[0].Diameter = mm
	p.logger.Info("diameter set", zap.Float64("mm", mm))
	return nil
}

// SetFlowRate sets the flow rate in uL/min and remembers it on success.
func (p *Pump) SetFlowRate(ulMin float64) error {
	if err := p.configure(OpSetFlowRate, Args{Value: ulMin}); err != nil {
		return err
	}
	p.channels[0].FlowRate = ulMin
	p.logger.Info("flow rate set", zap.Float64("uL/min", ulMin))
	return nil
}

// SetTargetVolume sets the target volume in uL and remembers it on success.
// The dialect converts units where the firmware wants something else.
func (p *Pump) SetTargetVolume(ul float64) error {
	if err := p.configure(OpSetTargetVolume, Args{Value: ul}); err != nil {
		return err
	}
	p.channels[0].TargetVolume = ul
	p.logger.Info("target volume set", zap.Float64("uL", ul))
	return nil
}

// SetMode sets the global operating mode, e.g. "PRO". Pump 33 only.
func (p *Pump) SetMode(mode string) error {
	return p.configure(OpSetMode, Args{Mode: mode})
}

// SetChannelDiameter sets the diameter of one Pump 33 syringe channel.
func (p *Pump) SetChannelDiameter(channel int, mm float64) error {
	if err := p.configure(OpSetDiameter, Args{Value: mm, Channel: channel}); err != nil {
		return err
	}
	p.channels[channel].Diameter = mm
	p.logger.Info("channel diameter set", zap.Int("channel", channel), zap.Float64("mm", mm))
	return nil
}

// SetChannelFlowRate sets the flow rate of one Pump 33 syringe channel.
func (p *Pump) SetChannelFlowRate(channel int, ulMin float64) error {
	if err := p.configure(OpSetFlowRate, Args{Value: ulMin, Channel: channel}); err != nil {
		return err
	}
	p.channels[channel].FlowRate = ulMin
	p.logger.Info("channel flow rate set", zap.Int("channel", channel), zap.Float64("uL/min", ulMin))
	return nil
}

// SetChannelDirection sets the travel direction of one Pump 33 channel.
func (p *Pump) SetChannelDirection(channel int, dir Direction) error {
	if err := p.configure(OpSetDirection, Args{Dir: dir, Channel: channel}); err != nil {
		return err
	}
	p.channels[channel].Direction = dir
	return nil
}

// move runs a transition exchange, surfacing alarms as *AlarmError.
func (p *Pump) move(op Operation) error {
	reply, err := p.exchange(op, Args{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if reply.Status == Alarmed {
		return fmt.Errorf("%s: %w", op, &AlarmError{Code: reply.AlarmCode})
	}
	p.lastMove = op
	return nil
}

// guardReversal rejects direction reversals the bound family is known to
// ignore, before anything reaches the bus.
func (p *Pump) guardReversal(next Operation) error {
	g, ok := p.dialect.(reversalGuard)
	if !ok || !g.StopBetweenReversals() {
		return nil
	}
	reversed := (next == OpInfuse && p.lastMove == OpWithdraw) ||
		(next == OpWithdraw && p.lastMove == OpInfuse)
	if reversed {
		return fmt.Errorf("%s after %s without stop: %w", next, p.lastMove, ErrInvalidSequence)
	}
	return nil
}

// Infuse starts pumping in the infuse direction.
func (p *Pump) Infuse() error {
	if err := p.guardReversal(OpInfuse); err != nil {
		return err
	}
	if err := p.move(OpInfuse); err != nil {
		return err
	}
	p.logger.Info("infusing")
	return nil
}

// Withdraw starts pumping in the withdraw direction.
func (p *Pump) Withdraw() error {
	if err := p.guardReversal(OpWithdraw); err != nil {
		return err
	}
	if err := p.move(OpWithdraw); err != nil {
		return err
	}
	p.logger.Info("withdrawing")
	return nil
}

// Stop halts the pump. Stopping an already stopped pump is not an error.
func (p *Pump) Stop() error {
	if err := p.move(OpStop); err != nil {
		return err
	}
	p.logger.Info("stopped")
	return nil
}

// Start is the Mighty Mini's name for starting the piston; other families
// reach it through Infuse.
func (p *Pump) Start() error {
	if err := p.move(OpStart); err != nil {
		return err
	}
	p.logger.Info("started")
	return nil
}

// Status issues the family's status query and returns the decoded state.
func (p *Pump) Status() (Status, error) {
	reply, err := p.exchange(OpStatus, Args{})
	if err != nil {
		return 0, fmt.Errorf("status: %w", err)
	}
	return reply.Status, nil
}

// WaitUntilTarget polls the pump until it reports the target volume reached.
// It returns nil the moment a target-reached status is decoded, *AlarmError
// the moment an alarm is decoded, and ErrTargetTimeout when the optional
// bound (zero means unbounded) elapses first.
//
// The wait occupies the chain's single-exchange discipline for its whole
// duration: no other pump on the same chain can be commanded meanwhile.
// There is no asynchronous cancellation; the bound is the only way out.
func (p *Pump) WaitUntilTarget(pollInterval, timeout time.Duration) error {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	p.logger.Info("waiting until target volume reached")
	var waited time.Duration
	for {
		reply, err := p.exchange(OpStatus, Args{})
		if err != nil {
			return fmt.Errorf("wait until target: %w", err)
		}
		switch reply.Status {
		case TargetReached:
			p.logger.Info("target volume reached")
			return nil
		case Alarmed:
			return fmt.Errorf("wait until target: %w", &AlarmError{Code: reply.AlarmCode})
		}
		if timeout > 0 && waited+pollInterval > timeout {
			return fmt.Errorf("still %s after %s: %w", reply.Status, timeout, ErrTargetTimeout)
		}
		p.sleep(pollInterval)
		waited += pollInterval
	}
}
