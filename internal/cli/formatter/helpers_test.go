package formatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestINR(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{100000, "₹1,00,000"},
		{254000, "₹2,54,000"},
		{12345678, "₹1,23,45,678"},
		{127.4, "₹127"},
		{127.5, "₹128"},
		{-1500, "-₹1,500"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, INR(tt.in))
		})
	}
}

func TestQuantity(t *testing.T) {
	assert.Equal(t, "10", Quantity(10))
	assert.Equal(t, "0", Quantity(0))
	assert.Equal(t, "10.50", Quantity(10.5))
	assert.Equal(t, "1085.70", Quantity(1085.7))
}

func TestDelta(t *testing.T) {
	assert.Contains(t, Delta(400, INR), "+₹400")
	assert.Contains(t, Delta(-400, INR), "-₹400")
	assert.Contains(t, Delta(0, Quantity), "0")
}

func TestArea(t *testing.T) {
	assert.Equal(t, "2,000 sq. ft.", Area(2000))
	assert.Equal(t, "1,20,000 sq. ft.", Area(120000))
}

func TestRenderBox_IncludesTitle(t *testing.T) {
	out := RenderBox("plan abc", "body")
	assert.Contains(t, out, "PLAN ABC")
	assert.Contains(t, out, "body")
}

func TestError(t *testing.T) {
	assert.Contains(t, Error(errors.New("boom")), "Error: boom")
}

func TestRenderShare(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50%", RenderShare(0.5, 10))
	assert.Equal(t, "██████████ 100%", RenderShare(1.7, 10))
	assert.Equal(t, "░░   0%", RenderShare(-1, 1))
}
