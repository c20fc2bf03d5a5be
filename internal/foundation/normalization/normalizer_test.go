package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type frequency string

const (
	daily   frequency = "daily"
	weekly  frequency = "weekly"
	monthly frequency = "monthly"
)

func newFrequencyNormalizer() *Normalizer[frequency] {
	return NewNormalizer(map[string]frequency{
		"daily":   daily,
		"weekly":  weekly,
		"Monthly": monthly,
	}, weekly)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newFrequencyNormalizer()

	tests := []struct {
		name     string
		input    string
		expected frequency
	}{
		{"exact match", "daily", daily},
		{"case insensitive", "DAILY", daily},
		{"mixed case key", "monthly", monthly},
		{"with spaces", "  monthly ", monthly},
		{"unknown falls back", "hourly", weekly},
		{"empty falls back", "", weekly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_Parse(t *testing.T) {
	n := newFrequencyNormalizer()

	v, err := n.Parse("Weekly")
	require.NoError(t, err)
	require.Equal(t, weekly, v)

	v, err = n.Parse(" ")
	require.NoError(t, err)
	require.Equal(t, weekly, v)

	_, err = n.Parse("hourly")
	require.EqualError(t, err, `unknown value "hourly" (want one of daily, monthly, weekly)`)
}
