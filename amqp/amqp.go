// Package amqp exposes one pump over a RabbitMQ topic exchange. Commands
// arrive on <device>.commands.<name> routing keys with JSON bodies; results
// and failures are published back on <device>.events.<name> and
// <device>.error.<name>.
package amqp

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

type Connection struct {
	*amqp.Connection
	*amqp.Channel
}

func (c *Connection) Close() error {
	if c.Channel != nil {
		if err := c.Channel.Close(); err != nil {
			return err
		}
	}
	return c.Connection.Close()
}

func Dial(uri string) (*Connection, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	return &Connection{conn, ch}, nil
}
