package middlewares

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCustomRate(t *testing.T) {
	rate, err := ParseCustomRate("10-2m")
	require.NoError(t, err)
	assert.Equal(t, int64(10), rate.Limit)
	assert.Equal(t, 2*time.Minute, rate.Period)

	rate, err = ParseCustomRate("5-1h")
	require.NoError(t, err)
	assert.Equal(t, int64(5), rate.Limit)
	assert.Equal(t, time.Hour, rate.Period)

	rate, err = ParseCustomRate("20-30s")
	require.NoError(t, err)
	assert.Equal(t, int64(20), rate.Limit)
	assert.Equal(t, 30*time.Second, rate.Period)
}

func TestParseCustomRateRejectsBadInput(t *testing.T) {
	for _, bad := range []string{"", "10", "ten-2m", "10-2d", "10-m", "10-2m-5"} {
		_, err := ParseCustomRate(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}
