package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateGST(t *testing.T) {
	// 999 * 0.18 = 179.82, rounds to 180
	assert.Equal(t, 180, CalculateGST(999))
	// 499 * 0.18 = 89.82, rounds to 90
	assert.Equal(t, 90, CalculateGST(499))
	assert.Equal(t, 90, CalculateGST(500))
	assert.Equal(t, 1800, CalculateGST(10000))
	assert.Equal(t, 0, CalculateGST(0))
}

func TestCalculateBreakdown(t *testing.T) {
	b := CalculateBreakdown(999)
	assert.Equal(t, 999, b.Base)
	assert.Equal(t, 180, b.GST)
	assert.Equal(t, 1179, b.Total)

	for _, base := range []int{0, 1, 499, 500, 999, 10000, 123456} {
		b := CalculateBreakdown(base)
		assert.Equal(t, base+CalculateGST(base), b.Total, "total must be base plus rounded GST for base %d", base)
	}
}
