package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firing_curve/internal/curve"
)

func TestRender(t *testing.T) {
	c := curve.New(20)
	require.NoError(t, c.Append(300, 500, 10))
	require.NoError(t, c.Append(0, 500, 20))
	require.NoError(t, c.Append(-240, 20, 0))

	ch := Render("test", c)
	assert.Equal(t, 246, ch.TotalMinutes)
	assert.Equal(t, "4 hours and 6 minutes", ch.TotalTime)
	require.Len(t, ch.Series, 3)

	assert.Equal(t, []Point{{0, 20}, {96, 500}, {106, 500}}, ch.Series[0].Points)
	assert.Equal(t, []Point{{106, 500}, {106, 500}, {126, 500}}, ch.Series[1].Points)
	assert.Equal(t, []Point{{126, 500}, {246, 20}}, ch.Series[2].Points)

	assert.Equal(t, "Phase 1", ch.Series[0].Label)
	assert.Equal(t, Palette[0], ch.Series[0].Color)
	assert.Equal(t, Palette[2], ch.Series[2].Color)
	require.NoError(t, c.Check())
}

func TestRender_KeepsAssignedColours(t *testing.T) {
	c := curve.New(20)
	require.NoError(t, c.Append(300, 500, 0))
	require.NoError(t, c.Append(-20, 20, 0))

	first := Render("", c)
	p, _ := c.Find(0)
	assert.Equal(t, Palette[0], p.Color())

	require.NoError(t, c.Insert(100, 100, 0, 0))
	second := Render("", c)

	assert.Equal(t, Palette[0], second.Series[0].Color, "new head takes its position's colour")
	assert.Equal(t, first.Series[0].Color, second.Series[1].Color, "old head keeps its colour")
	assert.Equal(t, first.Series[1].Color, second.Series[2].Color)
}

func TestRender_Empty(t *testing.T) {
	ch := Render("empty", curve.New(20))
	assert.Empty(t, ch.Series)
	assert.Equal(t, 0, ch.TotalMinutes)
}

func TestRender_PaletteWraps(t *testing.T) {
	c := curve.New(20)
	for i := 0; i < len(Palette)+2; i++ {
		require.NoError(t, c.Append(0, 20, 1))
	}
	ch := Render("", c)
	assert.Equal(t, Palette[0], ch.Series[len(Palette)].Color)
	assert.Equal(t, Palette[1], ch.Series[len(Palette)+1].Color)
}
