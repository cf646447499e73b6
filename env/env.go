// Package env loads pump chain configuration from the process environment,
// with an optional .env file for development setups.
package env

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	defaultBaud   = 9600
	defaultFamily = "pump11"
)

type Environment struct {
	SerialPort string
	Baud       int
	Address    int
	Family     string

	// AMQP settings, only required by the device server.
	URI      string
	Exchange string
	DeviceID string
}

// Load reads the environment, first merging a .env file when one exists.
func Load(logger *zap.Logger) *Environment {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", zap.Error(err))
	}
	return &Environment{
		SerialPort: os.Getenv("SERIAL_PORT"),
		Baud:       intEnv(logger, "BAUD", defaultBaud),
		Address:    intEnv(logger, "PUMP_ADDRESS", 0),
		Family:     stringEnv("PUMP_FAMILY", defaultFamily),
		URI:        os.Getenv("RABBITMQ_URI"),
		Exchange:   os.Getenv("AMQP_EXCHANGE"),
		DeviceID:   os.Getenv("DEVICE_ID"),
	}
}

// RequireAMQP fatals unless the AMQP settings are all present.
func (e *Environment) RequireAMQP(logger *zap.Logger) {
	if e.URI == "" {
		logger.Fatal("RABBITMQ_URI not set")
	}
	if e.Exchange == "" {
		logger.Fatal("AMQP_EXCHANGE not set")
	}
	if e.DeviceID == "" {
		logger.Fatal("DEVICE_ID not set")
	}
}

func stringEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func intEnv(logger *zap.Logger, key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		logger.Fatal("invalid integer in environment", zap.String("key", key), zap.String("value", v))
	}
	return i
}
