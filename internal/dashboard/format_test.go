package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{94.5, "94.5%"},
		{100, "100%"},
		{0, "0%"},
		{89.36, "89.36%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percent(tt.in))
	}
}

func TestFraction(t *testing.T) {
	assert.Equal(t, "80%", Fraction(0.8))
	assert.Equal(t, "20%", Fraction(0.2))
	assert.Equal(t, "33.33%", Fraction(1.0/3))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "0", Count(0))
	assert.Equal(t, "999", Count(999))
	assert.Equal(t, "1,234", Count(1234))
	assert.Equal(t, "1,000,000", Count(1000000))
}

func TestOneDecimal(t *testing.T) {
	assert.Equal(t, "92.0", OneDecimal(92))
	assert.Equal(t, "8.0", OneDecimal(8))
	assert.Equal(t, "33.3", OneDecimal(100.0/3))
	assert.Equal(t, "0.3", OneDecimal(0.25))
}
