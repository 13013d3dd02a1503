package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringArg(t *testing.T) {
	cases := []struct {
		name  string
		input string
		key   string
		want  string
	}{
		{"json object", `{"query":"breakfast hours"}`, "query", "breakfast hours"},
		{"json object with padding", `{"query":"  spa  "}`, "query", "spa"},
		{"missing key falls back to raw", `{"other":"x"}`, "query", `{"other":"x"}`},
		{"bare string", "breakfast hours", "query", "breakfast hours"},
		{"quoted string", `"BK001"`, "booking_number", "BK001"},
		{"empty input", "", "query", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stringArg(tc.input, tc.key))
		})
	}
}
