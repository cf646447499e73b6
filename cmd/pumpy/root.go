package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jt05610/pumpy"
	"github.com/jt05610/pumpy/comm/serial"
	"github.com/jt05610/pumpy/env"
)

var (
	logger  *zap.Logger
	environ *env.Environment

	portFlag    string
	baudFlag    int
	addressFlag int
	familyFlag  string
	debugFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "pumpy",
	Short: "pumpy controls syringe pumps chained on a shared serial line",
	Long: `pumpy drives Harvard Pump 11/11 Plus, PHD2000, and Pump 33 syringe
pumps and the SSI Mighty Mini piston pump over a multi-drop RS-232 chain.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			dev, err := zap.NewDevelopment()
			if err == nil {
				logger = dev
			}
		}
	},
}

func Execute() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	environ = env.Load(logger)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&portFlag, "port", environ.SerialPort, "serial port, e.g. /dev/ttyUSB0")
	pf.IntVar(&baudFlag, "baud", environ.Baud, "baud rate")
	pf.IntVar(&addressFlag, "address", environ.Address, "pump address on the chain (0-99)")
	pf.StringVar(&familyFlag, "family", environ.Family, "pump family: pump11, phd2000, mightymini, or pump33")
	pf.BoolVar(&debugFlag, "debug", false, "log wire traffic")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openPump opens the serial chain and binds a pump on it per the common
// flags. The caller closes the returned chain.
func openPump() (*pumpy.Pump, *pumpy.Chain, error) {
	if portFlag == "" {
		return nil, nil, fmt.Errorf("no serial port: pass --port or set SERIAL_PORT")
	}
	dialect, err := pumpy.DialectByName(familyFlag)
	if err != nil {
		return nil, nil, err
	}
	// Harvard chains run two stop bits; the Mighty Mini runs one.
	stopBits := 2
	if _, ok := dialect.(pumpy.MightyMini); ok {
		stopBits = 1
	}
	port, err := serial.Open(portFlag, baudFlag, stopBits)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", portFlag, err)
	}
	chain := pumpy.NewChain(port, logger)
	return pumpy.NewPump(chain, addressFlag, dialect, logger), chain, nil
}
