package view

import (
	"html/template"
	"math"
	"strings"
)

type Glyph string

const (
	GlyphFull  Glyph = "fas fa-star"
	GlyphHalf  Glyph = "fas fa-star-half-alt"
	GlyphEmpty Glyph = "far fa-star"
)

const starCount = 5

// StarRating always returns five glyphs. Out of range ratings are not
// rejected; they just saturate to all full or all empty.
func StarRating(rating float64) []Glyph {
	full := math.Floor(rating)
	glyphs := make([]Glyph, starCount)
	for i := range glyphs {
		pos := float64(i)
		switch {
		case pos < full:
			glyphs[i] = GlyphFull
		case pos < rating:
			glyphs[i] = GlyphHalf
		default:
			glyphs[i] = GlyphEmpty
		}
	}
	return glyphs
}

func StarsHTML(rating float64) template.HTML {
	var b strings.Builder
	for _, g := range StarRating(rating) {
		b.WriteString(`<i class="`)
		b.WriteString(string(g))
		b.WriteString(`"></i>`)
	}
	return template.HTML(b.String())
}
