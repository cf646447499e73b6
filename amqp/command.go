package amqp

import (
	"fmt"
	"strings"

	"github.com/jt05610/pumpy"
)

// Command is the JSON body of a pump command message. The operation name
// rides in the routing key, so an empty body is valid for transitions like
// stop or infuse.
type Command struct {
	Value     float64 `json:"value,omitempty"`
	Channel   int     `json:"channel,omitempty"`
	Direction string  `json:"direction,omitempty"`
	Mode      string  `json:"mode,omitempty"`
	PollMs    int     `json:"poll_ms,omitempty"`
	TimeoutMs int     `json:"timeout_ms,omitempty"`
}

// operations are the routing-key command names a Server binds.
var operations = []string{
	"infuse",
	"withdraw",
	"stop",
	"start",
	"status",
	"set_diameter",
	"set_flow_rate",
	"set_target_volume",
	"set_direction",
	"set_mode",
	"wait_until_target",
}

// commandName extracts the operation from a <device>.commands.<name> key.
func commandName(routingKey string) (string, error) {
	parts := strings.Split(routingKey, ".")
	if len(parts) != 3 || parts[1] != "commands" {
		return "", fmt.Errorf("invalid routing key %q", routingKey)
	}
	return parts[2], nil
}

func (c *Command) direction() (pumpy.Direction, error) {
	switch strings.ToUpper(c.Direction) {
	case "INF", "":
		return pumpy.DirInfuse, nil
	case "REF":
		return pumpy.DirRefill, nil
	}
	return 0, fmt.Errorf("unknown direction %q", c.Direction)
}
