package pumpy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateValue(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{10.3, "10.3"},
		{10.3456, "10.34"},
		{3.222222, "3.22"},
		{30.22222, "30.22"},
		{0.5, ".5"},
		{0.05, ".05"},
		{1234.5, "1234"},
		{9999, "9999"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, truncateValue(tc.in), "truncateValue(%v)", tc.in)
	}
}
