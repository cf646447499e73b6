package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jt05610/pumpy"
)

var channelFlag int

func floatArg(args []string) (float64, error) {
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", args[0])
	}
	return v, nil
}

var diameterCmd = &cobra.Command{
	Use:   "diameter <mm>",
	Short: "Set the syringe diameter in mm",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mm, err := floatArg(args)
		if err != nil {
			return err
		}
		pump, chain, err := openPump()
		if err != nil {
			return err
		}
		defer chain.Close()
		if channelFlag != 0 {
			return pump.SetChannelDiameter(channelFlag, mm)
		}
		return pump.SetDiameter(mm)
	},
}

var rateCmd = &cobra.Command{
	Use:   "rate <uL/min>",
	Short: "Set the flow rate in uL/min",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rate, err := floatArg(args)
		if err != nil {
			return err
		}
		pump, chain, err := openPump()
		if err != nil {
			return err
		}
		defer chain.Close()
		if channelFlag != 0 {
			return pump.SetChannelFlowRate(channelFlag, rate)
		}
		return pump.SetFlowRate(rate)
	},
}

var targetCmd = &cobra.Command{
	Use:   "target <uL>",
	Short: "Set the target volume in uL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ul, err := floatArg(args)
		if err != nil {
			return err
		}
		pump, chain, err := openPump()
		if err != nil {
			return err
		}
		defer chain.Close()
		return pump.SetTargetVolume(ul)
	},
}

var directionCmd = &cobra.Command{
	Use:   "direction <INF|REF>",
	Short: "Set a Pump 33 channel's travel direction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var dir pumpy.Direction
		switch strings.ToUpper(args[0]) {
		case "INF":
			dir = pumpy.DirInfuse
		case "REF":
			dir = pumpy.DirRefill
		default:
			return fmt.Errorf("direction must be INF or REF, got %q", args[0])
		}
		pump, chain, err := openPump()
		if err != nil {
			return err
		}
		defer chain.Close()
		return pump.SetChannelDirection(channelFlag, dir)
	},
}

var modeCmd = &cobra.Command{
	Use:   "mode <mode>",
	Short: "Set a Pump 33's operating mode, e.g. PRO",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pump, chain, err := openPump()
		if err != nil {
			return err
		}
		defer chain.Close()
		return pump.SetMode(strings.ToUpper(args[0]))
	},
}

func init() {
	for _, c := range []*cobra.Command{diameterCmd, rateCmd, directionCmd} {
		c.Flags().IntVar(&channelFlag, "channel", 0, "Pump 33 syringe channel (1 or 2)")
	}
	rootCmd.AddCommand(diameterCmd, rateCmd, targetCmd, directionCmd, modeCmd)
}
