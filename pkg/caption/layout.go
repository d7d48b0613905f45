// Package caption computes text layout for an image and draws the caption
// onto a semi-transparent band anchored at the bottom edge.
package caption

import (
	"image"
	"strings"

	"golang.org/x/image/font"
)

const (
	// Font size scales with the short image edge, clamped so text stays
	// legible on small images and single words fit on large ones.
	fontSizeMin   = 14.0
	fontSizeMax   = 44.0
	fontSizeRatio = 30.0 // size = min(W, H) / fontSizeRatio

	marginX  = 24 // horizontal text margin inside the band
	paddingY = 16 // vertical padding above and below the line block
)

// FontSize returns the caption font size for an image of the given
// dimensions: monotone non-decreasing in min(w, h) and bounded within
// [fontSizeMin, fontSizeMax].
func FontSize(w, h int) float64 {
	short := float64(min(w, h))
	return max(fontSizeMin, min(fontSizeMax, short/fontSizeRatio))
}

// TextLayout is the computed caption geometry for one image.
type TextLayout struct {
	FontSize   float64
	Lines      []string
	LineHeight int
	BandHeight int
}

// Layout wraps text to fit within bounds using the measured widths of the
// given face. It is a pure function of its inputs.
//
// Wrapping is greedy: words are appended to the current line while the
// width budget (image width minus margins) holds, and never split. If the
// resulting band would be taller than the image, trailing lines are
// dropped until it fits.
func Layout(bounds image.Rectangle, text string, face font.Face) TextLayout {
	w, h := bounds.Dx(), bounds.Dy()

	maxWidth := w - 2*marginX
	if maxWidth <= 0 {
		maxWidth = w
	}

	lines := wrap(text, maxWidth, face)

	lineHeight := face.Metrics().Height.Ceil()
	if lineHeight <= 0 {
		lineHeight = 1
	}

	band := bandHeight(len(lines), lineHeight)
	for band > h && len(lines) > 0 {
		lines = lines[:len(lines)-1]
		band = bandHeight(len(lines), lineHeight)
	}
	if len(lines) == 0 {
		band = 0
	}

	return TextLayout{
		Lines:      lines,
		LineHeight: lineHeight,
		BandHeight: band,
	}
}

func bandHeight(lines, lineHeight int) int {
	return lines*lineHeight + 2*paddingY
}

// wrap performs greedy word-wrap measured against face. A single word
// wider than maxWidth still gets its own line.
func wrap(text string, maxWidth int, face font.Face) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if font.MeasureString(face, candidate).Ceil() <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
