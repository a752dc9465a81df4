package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_ColorThenReset(t *testing.T) {
	segs := Render(Parse("§cRed§r plain"))

	require.Len(t, segs, 4)
	assert.True(t, segs[0].Code)
	assert.Equal(t, "Red", segs[1].Text)
	assert.Equal(t, "#FF5555", segs[1].Color)
	assert.True(t, segs[2].Code)
	assert.Equal(t, " plain", segs[3].Text)
	assert.Empty(t, segs[3].Color)
	assert.Empty(t, segs[3].Styles)
}

func TestRender_StylesAccumulate(t *testing.T) {
	segs := Render(Parse("§lA§oB§9C§rD"))

	var text []Segment
	for _, s := range segs {
		if !s.Code {
			text = append(text, s)
		}
	}
	require.Len(t, text, 4)

	assert.Equal(t, []Style{Bold}, text[0].Styles)
	assert.Equal(t, []Style{Bold, Italic}, text[1].Styles)
	assert.Equal(t, "#5555FF", text[2].Color)
	assert.True(t, text[2].Has(Bold))
	assert.True(t, text[2].Has(Italic))
	assert.Empty(t, text[3].Color)
	assert.Empty(t, text[3].Styles)
}

func TestRender_ColorPersistsAcrossStyles(t *testing.T) {
	segs := Render(Parse("§aX§nY"))
	last := segs[len(segs)-1]

	assert.Equal(t, "Y", last.Text)
	assert.Equal(t, "#55FF55", last.Color)
	assert.True(t, last.Has(Underline))
}

func TestRender_RepeatedStyleNotDuplicated(t *testing.T) {
	segs := Render(Parse("§l§lX"))
	assert.Equal(t, []Style{Bold}, segs[len(segs)-1].Styles)
}

func TestStyled_ChipsToggle(t *testing.T) {
	withChips := Styled("§cRed", true)
	withoutChips := Styled("§cRed", false)

	assert.Contains(t, withChips, "§c")
	assert.NotContains(t, withoutChips, "§c")
	assert.Contains(t, withoutChips, "Red")
}

func TestLegend(t *testing.T) {
	lines := Legend()
	require.Len(t, lines, len(Codes()))
	assert.True(t, strings.Contains(lines[0], "black"))
}
