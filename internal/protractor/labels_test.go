package protractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLabelsCount(t *testing.T) {
	pal := DefaultPalette()
	assert.Len(t, GenerateLabels(Half, Detailed, pal), 19)
	assert.Len(t, GenerateLabels(Full, Detailed, pal), 37)
	assert.Empty(t, GenerateLabels(Full, Minimal, pal))
}

func TestLabelNumbering(t *testing.T) {
	tests := []struct {
		span               Span
		angle              int
		primary, secondary int
	}{
		{Half, 0, 180, 0},
		{Half, 10, 170, 10},
		{Half, 60, 120, 60},
		{Half, 170, 10, 170},
		{Half, 180, 180, 180},
		{Full, 180, 0, 180},
		{Full, 200, 160, 20},
		{Full, 350, 10, 170},
		{Full, 360, 180, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.primary, PrimaryValue(tt.angle, tt.span), "primary %d/%s", tt.angle, tt.span)
		assert.Equal(t, tt.secondary, SecondaryValue(tt.angle), "secondary %d/%s", tt.angle, tt.span)
	}
}

func TestLabelRoundTrip(t *testing.T) {
	for a := 0; a <= 180; a += 10 {
		p, s := PrimaryValue(a, Half), SecondaryValue(a)
		if a == 180 {
			assert.Equal(t, 180, p)
			assert.Equal(t, 180, s)
			continue
		}
		assert.Equal(t, 180, p+s, "angle %d", a)
	}
}

func TestUprightLabels(t *testing.T) {
	labels := GenerateLabels(Full, Detailed, DefaultPalette())
	byAngle := map[int]Label{}
	for _, l := range labels {
		byAngle[l.Angle] = l
	}
	for _, a := range []int{90, 270} {
		l, ok := byAngle[a]
		require.True(t, ok)
		assert.Zero(t, l.Rotation)
		assert.Equal(t, 90, l.Primary)
		assert.False(t, l.HasSecondary)
	}
	assert.Equal(t, -90.0, byAngle[0].Rotation)
	assert.Equal(t, 30.0, byAngle[120].Rotation)
	assert.Equal(t, 260.0, byAngle[350].Rotation)
}

func TestLabelColors(t *testing.T) {
	pal := DefaultPalette()
	pal.Accent = red
	for _, l := range GenerateLabels(Half, Detailed, pal) {
		assert.Equal(t, pal.Neutral, l.PrimaryColor)
		assert.Equal(t, pal.Outline, l.OutlineColor)
		if l.HasSecondary {
			assert.Equal(t, red, l.SecondaryColor)
			assert.Greater(t, l.PrimarySize, l.SecondarySize)
		}
	}
}
