package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStarRating(t *testing.T) {
	tests := []struct {
		rating float64
		full   int
		half   int
	}{
		{0, 0, 0},
		{5, 5, 0},
		{4.5, 4, 1},
		{3, 3, 0},
		{0.2, 0, 1},
		{-2, 0, 0},
		{9, 5, 0},
	}
	for _, tt := range tests {
		glyphs := StarRating(tt.rating)
		assert.Len(t, glyphs, 5, "rating %v", tt.rating)

		var full, half int
		for _, g := range glyphs {
			switch g {
			case GlyphFull:
				full++
			case GlyphHalf:
				half++
			}
		}
		assert.Equal(t, tt.full, full, "full glyphs for %v", tt.rating)
		assert.Equal(t, tt.half, half, "half glyphs for %v", tt.rating)
	}
}

func TestStarRating_OrderIsFullHalfEmpty(t *testing.T) {
	assert.Equal(t, []Glyph{GlyphFull, GlyphFull, GlyphHalf, GlyphEmpty, GlyphEmpty}, StarRating(2.5))
}

func TestStarsHTML(t *testing.T) {
	html := string(StarsHTML(4.5))
	assert.Equal(t, 4, strings.Count(html, `class="fas fa-star"`))
	assert.Equal(t, 1, strings.Count(html, `class="fas fa-star-half-alt"`))
}
