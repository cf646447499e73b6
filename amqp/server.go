package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/jt05610/pumpy"
)

// Server serves one pump on a topic exchange. A single consumer goroutine
// handles commands strictly in arrival order, which preserves the chain's
// one-exchange-at-a-time discipline; a wait_until_target command therefore
// blocks every later command for that device, exactly as it does on the
// wire.
type Server struct {
	pump     *pumpy.Pump
	ch       *amqp.Channel
	q        amqp.Queue
	exchange string
	deviceID string
	logger   *zap.Logger
}

// NewServer declares the exchange and binds a queue for every pump
// operation under deviceID.
func NewServer(conn *Connection, pump *pumpy.Pump, exchange, deviceID string, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	err := conn.Channel.ExchangeDeclare(
		exchange,
		"topic",
		false, // durable
		false, // delete when unused
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}
	q, err := conn.Channel.QueueDeclare("", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	for _, op := range operations {
		key := deviceID + ".commands." + op
		if err := conn.Channel.QueueBind(q.Name, key, exchange, false, nil); err != nil {
			return nil, fmt.Errorf("bind %q: %w", key, err)
		}
	}
	return &Server{
		pump:     pump,
		ch:       conn.Channel,
		q:        q,
		exchange: exchange,
		deviceID: deviceID,
		logger:   logger.With(zap.String("device", deviceID)),
	}, nil
}

// Listen consumes commands until ctx is cancelled.
func (s *Server) Listen(ctx context.Context) error {
	deliveries, err := s.ch.Consume(s.q.Name, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %q: %w", s.q.Name, err)
	}
	s.logger.Info("listening", zap.String("exchange", s.exchange))
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			s.handle(ctx, d)
		}
	}
}

func (s *Server) handle(ctx context.Context, d amqp.Delivery) {
	name, err := commandName(d.RoutingKey)
	if err != nil {
		s.logger.Error("bad routing key", zap.String("key", d.RoutingKey), zap.Error(err))
		return
	}
	var cmd Command
	if len(d.Body) > 0 {
		if err := json.Unmarshal(d.Body, &cmd); err != nil {
			s.logger.Error("bad command body", zap.String("command", name), zap.Error(err))
			s.publish(ctx, "error", name, map[string]string{"error": err.Error()})
			return
		}
	}
	s.logger.Info("command received", zap.String("command", name))
	if err := s.apply(&cmd, name); err != nil {
		s.logger.Error("command failed", zap.String("command", name), zap.Error(err))
		s.publish(ctx, "error", name, map[string]string{"error": err.Error()})
		return
	}
	s.publish(ctx, "events", name, map[string]string{"status": s.pump.LastStatus().String()})
}

func (s *Server) apply(cmd *Command, name string) error {
	switch name {
	case "infuse":
		return s.pump.Infuse()
	case "withdraw":
		return s.pump.Withdraw()
	case "stop":
		return s.pump.Stop()
	case "start":
		return s.pump.Start()
	case "status":
		_, err := s.pump.Status()
		return err
	case "set_diameter":
		if cmd.Channel != 0 {
			return s.pump.SetChannelDiameter(cmd.Channel, cmd.Value)
		}
		return s.pump.SetDiameter(cmd.Value)
	case "set_flow_rate":
		if cmd.Channel != 0 {
			return s.pump.SetChannelFlowRate(cmd.Channel, cmd.Value)
		}
		return s.pump.SetFlowRate(cmd.Value)
	case "set_target_volume":
		return s.pump.SetTargetVolume(cmd.Value)
	case "set_direction":
		dir, err := cmd.direction()
		if err != nil {
			return err
		}
		return s.pump.SetChannelDirection(cmd.Channel, dir)
	case "set_mode":
		return s.pump.SetMode(cmd.Mode)
	case "wait_until_target":
		return s.pump.WaitUntilTarget(
			time.Duration(cmd.PollMs)*time.Millisecond,
			time.Duration(cmd.TimeoutMs)*time.Millisecond,
		)
	}
	return fmt.Errorf("unknown command %q", name)
}

func (s *Server) publish(ctx context.Context, topic, name string, body any) {
	bb, err := json.Marshal(body)
	if err != nil {
		s.logger.Error("marshal event", zap.Error(err))
		return
	}
	key := s.deviceID + "." + topic + "." + name
	err = s.ch.PublishWithContext(ctx, s.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         bb,
		Headers: amqp.Table{
			"x-event-id":   uuid.NewString(),
			"x-event-name": name,
		},
	})
	if err != nil {
		s.logger.Error("publish event", zap.String("key", key), zap.Error(err))
	}
}
