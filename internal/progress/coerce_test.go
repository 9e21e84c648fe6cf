package progress

import (
	"math"
	"testing"

	"github.com/jonathan/interview-coach/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestCoerceNumber(t *testing.T) {
	var nilFloat *float64
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{name: "nil", in: nil, want: 0},
		{name: "float", in: 0.3, want: 0.3},
		{name: "float pointer", in: score(72), want: 72},
		{name: "nil float pointer", in: nilFloat, want: 0},
		{name: "int", in: 4, want: 4},
		{name: "int64", in: int64(7), want: 7},
		{name: "numeric string", in: " 0.75 ", want: 0.75},
		{name: "label string", in: "positive", want: 0},
		{name: "empty string", in: "", want: 0},
		{name: "flex number", in: types.NumberValue(0.8), want: 0.8},
		{name: "flex numeric string", in: types.StringValue("12"), want: 12},
		{name: "flex label", in: types.StringValue("neutral"), want: 0},
		{name: "flex null", in: types.FlexValue("null"), want: 0},
		{name: "flex absent", in: types.FlexValue(nil), want: 0},
		{name: "flex bool", in: types.FlexValue("true"), want: 0},
		{name: "NaN", in: math.NaN(), want: 0},
		{name: "infinity string", in: "Inf", want: 0},
		{name: "unsupported type", in: []int{1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceNumber(tt.in))
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.5, round2(0.8-0.3))
	assert.Equal(t, 1.24, round2(1.235000001))
	assert.Equal(t, -100.0, round2(-100))
	assert.Equal(t, 0.33, round2(1.0/3))
}
