package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jt05610/pumpy/comm/serial"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports on this system",
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := serial.ListPorts()
		if err != nil {
			return err
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
