package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jt05610/pumpy/amqp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pump over RabbitMQ until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		environ.RequireAMQP(logger)
		pump, chain, err := openPump()
		if err != nil {
			return err
		}
		defer chain.Close()
		conn, err := amqp.Dial(environ.URI)
		if err != nil {
			return err
		}
		defer conn.Close()
		srv, err := amqp.NewServer(conn, pump, environ.Exchange, environ.DeviceID, logger)
		if err != nil {
			return err
		}
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		return srv.Listen(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
