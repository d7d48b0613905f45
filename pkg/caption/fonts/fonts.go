// Package fonts locates and loads the typeface used for caption overlays.
//
// Font loading sits behind the small Loader capability so the compositor
// never touches the filesystem directly and tests can substitute a
// fixed-metric face for reproducible width assertions.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/apodwall/apodwall/pkg/errors"
)

// Loader provides a font face at a requested pixel size.
type Loader interface {
	Load(size float64) (font.Face, error)
}

// candidates are tried in order; DejaVu ships on most Linux distributions,
// the rest cover macOS and Windows hosts.
var candidates = []string{
	"DejaVuSans.ttf",
	"LiberationSans-Regular.ttf",
	"Arial.ttf",
	"Helvetica.ttf",
	"FreeSans.ttf",
}

// System loads faces from a TTF file found on the host.
// The parsed font is shared across Load calls; faces themselves are cheap.
type System struct {
	once sync.Once
	err  error
	ttf  *truetype.Font
	Path string // resolved font file, set by Discover
}

// Discover locates a usable system font. It returns FONT_UNAVAILABLE when
// none of the candidate faces exist on the host; callers surface this
// rather than rendering a bare image.
func Discover() (*System, error) {
	for _, name := range candidates {
		path, err := findfont.Find(name)
		if err == nil && path != "" {
			return &System{Path: path}, nil
		}
	}
	return nil, errors.New(errors.ErrCodeFontUnavailable, "no usable system font (tried %d candidates)", len(candidates))
}

// FromFile creates a System loader for an explicit font file.
func FromFile(path string) *System {
	return &System{Path: path}
}

// Load parses the font file on first use and returns a face at the given size.
func (s *System) Load(size float64) (font.Face, error) {
	s.once.Do(func() {
		data, err := os.ReadFile(s.Path)
		if err != nil {
			s.err = errors.Wrap(errors.ErrCodeFontUnavailable, err, "read font %s", s.Path)
			return
		}
		s.ttf, s.err = truetype.Parse(data)
		if s.err != nil {
			s.err = errors.Wrap(errors.ErrCodeFontUnavailable, s.err, "parse font %s", s.Path)
		}
	})
	if s.err != nil {
		return nil, s.err
	}
	return truetype.NewFace(s.ttf, &truetype.Options{Size: size, DPI: 72}), nil
}

// Fixed is a deterministic loader for tests: every size maps to the same
// 7x13 bitmap face, so measured widths are stable across environments.
type Fixed struct{}

// Load returns the fixed-metric face regardless of size.
func (Fixed) Load(size float64) (font.Face, error) {
	return basicfont.Face7x13, nil
}

// Failing is a loader that always fails; tests use it to exercise the
// FONT_UNAVAILABLE path.
type Failing struct{}

// Load always returns FONT_UNAVAILABLE.
func (Failing) Load(size float64) (font.Face, error) {
	return nil, errors.New(errors.ErrCodeFontUnavailable, "no font available")
}
