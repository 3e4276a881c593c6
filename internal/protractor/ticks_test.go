package protractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTicksOnePerDegree(t *testing.T) {
	for _, span := range []Span{Half, Full} {
		ticks := GenerateTicks(span, Detailed.Params().RingDepths)
		require.Len(t, ticks, span.Degrees()+1)
		for i, tk := range ticks {
			assert.Equal(t, i, tk.Angle)
			assert.Equal(t, 1.0, tk.RadialEnd)
		}
	}
}

func TestWeightPriority(t *testing.T) {
	tests := []struct {
		angle int
		want  Weight
	}{
		{0, Cardinal},
		{1, Major},
		{5, Minor},
		{10, Decile},
		{45, Minor},
		{90, Cardinal},
		{95, Minor},
		{180, Cardinal},
		{270, Cardinal},
		{355, Minor},
		{359, Major},
		{360, Cardinal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WeightOf(tt.angle), "angle %d", tt.angle)
	}
}

func TestWeightMonotonic(t *testing.T) {
	for a := 0; a <= 360; a++ {
		switch WeightOf(a) {
		case Cardinal:
			assert.Zero(t, a%10, "cardinal %d must also be a decile", a)
			assert.Zero(t, a%5, "cardinal %d must also be a minor", a)
		case Decile:
			assert.Zero(t, a%5)
			assert.NotZero(t, a%90)
		case Minor:
			assert.NotZero(t, a%10)
		case Major:
			assert.NotZero(t, a%5)
		}
	}
}

func TestTickRadialStart(t *testing.T) {
	depths := Detailed.Params().RingDepths
	ticks := GenerateTicks(Half, depths)
	assert.Equal(t, 0.0, ticks[90].RadialStart)
	assert.Equal(t, 0.2, ticks[40].RadialStart)
	assert.Equal(t, 0.93, ticks[35].RadialStart)
	assert.Equal(t, 0.96, ticks[37].RadialStart)

	minimal := GenerateTicks(Half, Minimal.Params().RingDepths)
	assert.Equal(t, 0.93, minimal[90].RadialStart)
	assert.Equal(t, 0.96, minimal[35].RadialStart)
}

func TestZeroLines(t *testing.T) {
	zl := ZeroLines()
	require.Len(t, zl, 2)
	assert.Equal(t, 0, zl[0].Angle)
	assert.Equal(t, 180, zl[1].Angle)
	for _, z := range zl {
		assert.Equal(t, 0.9, z.RadialStart)
		assert.Equal(t, 1.0, z.RadialEnd)
	}
}

func TestThick(t *testing.T) {
	assert.True(t, Tick{Angle: 0}.Thick())
	assert.True(t, Tick{Angle: 25}.Thick())
	assert.False(t, Tick{Angle: 26}.Thick())
}
