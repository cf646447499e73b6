package main

import (
	"time"

	"github.com/spf13/cobra"
)

var (
	waitFlag        bool
	pollFlag        time.Duration
	waitTimeoutFlag time.Duration
)

var infuseCmd = &cobra.Command{
	Use:   "infuse",
	Short: "Start pumping in the infuse direction",
	RunE: func(cmd *cobra.Command, args []string) error {
		pump, chain, err := openPump()
		if err != nil {
			return err
		}
		defer chain.Close()
		if err := pump.Infuse(); err != nil {
			return err
		}
		if waitFlag {
			return pump.WaitUntilTarget(pollFlag, waitTimeoutFlag)
		}
		return nil
	},
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Start pumping in the withdraw direction",
	RunE: func(cmd *cobra.Command, args []string) error {
		pump, chain, err := openPump()
		if err != nil {
			return err
		}
		defer chain.Close()
		if err := pump.Withdraw(); err != nil {
			return err
		}
		if waitFlag {
			return pump.WaitUntilTarget(pollFlag, waitTimeoutFlag)
		}
		return nil
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the pump",
	RunE: func(cmd *cobra.Command, args []string) error {
		pump, chain, err := openPump()
		if err != nil {
			return err
		}
		defer chain.Close()
		return pump.Stop()
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the pump (Mighty Mini)",
	RunE: func(cmd *cobra.Command, args []string) error {
		pump, chain, err := openPump()
		if err != nil {
			return err
		}
		defer chain.Close()
		return pump.Start()
	},
}

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Block until the target volume is reached",
	RunE: func(cmd *cobra.Command, args []string) error {
		pump, chain, err := openPump()
		if err != nil {
			return err
		}
		defer chain.Close()
		return pump.WaitUntilTarget(pollFlag, waitTimeoutFlag)
	},
}

func init() {
	for _, c := range []*cobra.Command{infuseCmd, withdrawCmd} {
		c.Flags().BoolVarP(&waitFlag, "wait", "w", false, "block until the target volume is reached")
	}
	for _, c := range []*cobra.Command{infuseCmd, withdrawCmd, waitCmd} {
		c.Flags().DurationVar(&pollFlag, "poll", 0, "status poll interval (default 500ms)")
		c.Flags().DurationVar(&waitTimeoutFlag, "timeout", 0, "give up waiting after this long (0 waits forever)")
	}
	rootCmd.AddCommand(infuseCmd, withdrawCmd, stopCmd, startCmd, waitCmd)
}
