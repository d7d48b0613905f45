package caption

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/apodwall/apodwall/pkg/caption/fonts"
	"github.com/apodwall/apodwall/pkg/errors"
)

const (
	bandAlpha   = 0.55 // band opacity against arbitrary image content
	jpegQuality = 90
)

// Compose decodes imageBytes, draws text inside a semi-transparent band at
// the bottom of a copy of the image, and re-encodes the result as JPEG.
//
// The same inputs always produce byte-identical output. The decoded source
// image is never mutated; callers observe either no image or the fully
// drawn one.
func Compose(imageBytes []byte, text string, loader fonts.Loader) ([]byte, image.Rectangle, error) {
	img, err := imaging.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, image.Rectangle{}, errors.Wrap(errors.ErrCodeDecode, err, "decode media payload")
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	size := FontSize(w, h)
	face, err := loader.Load(size)
	if err != nil {
		return nil, bounds, err
	}

	layout := Layout(bounds, text, face)
	layout.FontSize = size

	dc := gg.NewContext(w, h)
	dc.DrawImage(img, 0, 0)

	if len(layout.Lines) > 0 {
		bandTop := h - layout.BandHeight
		dc.SetRGBA(0, 0, 0, bandAlpha)
		dc.DrawRectangle(0, float64(bandTop), float64(w), float64(layout.BandHeight))
		dc.Fill()

		dc.SetFontFace(face)
		dc.SetRGB255(255, 255, 255)
		ascent := face.Metrics().Ascent.Ceil()
		for i, line := range layout.Lines {
			baseline := bandTop + paddingY + i*layout.LineHeight + ascent
			dc.DrawString(line, marginX, float64(baseline))
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dc.Image(), imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, bounds, errors.Wrap(errors.ErrCodeInternal, err, "encode composited image")
	}
	return buf.Bytes(), bounds, nil
}
