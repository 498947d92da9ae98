package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatID(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"Alice:1", "1"},
		{"Alice:79001234567@c.us", "79001234567@c.us"},
		{"Bob:Smith:42", "Smith:42"},
		{":7", "7"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			got, err := ChatID(tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChatID_Invalid(t *testing.T) {
	for _, target := range []string{"", "Alice", "Alice:"} {
		_, err := ChatID(target)
		assert.ErrorIs(t, err, ErrInvalidTarget, "target %q", target)
	}
}

func TestContactEncodeRoundTrip(t *testing.T) {
	c := Contact{Name: "Alice", ID: "1"}
	assert.Equal(t, "Alice:1", c.Encode())

	parsed, err := ParseTarget(c.Encode())
	require.NoError(t, err)
	assert.Equal(t, c, parsed)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "GreenAPI Alice", DisplayName("Alice:1"))
	assert.Equal(t, "GreenAPI Bob", DisplayName("Bob:Smith:42"))
}
