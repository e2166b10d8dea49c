package avatar

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// FontSource is one candidate in the fallback chain.
type FontSource interface {
	Name() string
	Face(size float64) (font.Face, error)
}

// FontAttempt records the result of trying one FontSource.
type FontAttempt struct {
	Source string
	Err    error
}

type fileFont struct {
	path string
}

// FileFont loads a TrueType/OpenType font from disk.
func FileFont(path string) FontSource {
	return fileFont{path: path}
}

func (f fileFont) Name() string { return f.path }

func (f fileFont) Face(size float64) (font.Face, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	return parseFace(data, size)
}

type embeddedFont struct {
	name string
	data []byte
}

// EmbeddedFont parses font bytes compiled into the binary.
func EmbeddedFont(name string, data []byte) FontSource {
	return embeddedFont{name: name, data: data}
}

func (f embeddedFont) Name() string { return f.name }

func (f embeddedFont) Face(size float64) (font.Face, error) {
	return parseFace(f.data, size)
}

type builtinFont struct{}

// BuiltinFont is the bitmap face that is always available. It ignores size.
func BuiltinFont() FontSource {
	return builtinFont{}
}

func (builtinFont) Name() string { return "basicfont 7x13" }

func (builtinFont) Face(float64) (font.Face, error) {
	return basicfont.Face7x13, nil
}

// DefaultFontSources is the preference order used by the site.
func DefaultFontSources() []FontSource {
	return []FontSource{
		FileFont("arial.ttf"),
		FileFont("/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"),
		EmbeddedFont("Go Bold", gobold.TTF),
		BuiltinFont(),
	}
}

func parseFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return face, nil
}

// resolveFace walks sources in order and returns the first usable face.
// The built-in face terminates the chain even if sources do not include it.
func resolveFace(sources []FontSource, size float64) (font.Face, string, []FontAttempt) {
	attempts := make([]FontAttempt, 0, len(sources)+1)
	for _, src := range sources {
		face, err := src.Face(size)
		attempts = append(attempts, FontAttempt{Source: src.Name(), Err: err})
		if err == nil {
			return face, src.Name(), attempts
		}
	}

	fallback := BuiltinFont()
	face, _ := fallback.Face(size)
	attempts = append(attempts, FontAttempt{Source: fallback.Name()})
	return face, fallback.Name(), attempts
}
