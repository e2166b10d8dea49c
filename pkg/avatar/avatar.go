// Package avatar renders the monogram badge used as the profile picture.
package avatar

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	Size        = 300
	BadgeInset  = 50
	FontSize    = 100
	DefaultText = "KO"
)

var (
	Background = color.RGBA{R: 0x1e, G: 0x3a, B: 0x8a, A: 0xff}
	Badge      = color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
	Foreground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Avatar is an encoded PNG plus the font that ended up drawing it.
type Avatar struct {
	PNG      []byte
	Font     string
	Attempts []FontAttempt
}

// DataURI returns the image as a data: URL for inline <img> tags.
func (a *Avatar) DataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(a.PNG)
}

type Generator struct {
	text    string
	sources []FontSource
}

func NewGenerator(text string, sources []FontSource) *Generator {
	if text == "" {
		text = DefaultText
	}
	return &Generator{text: text, sources: sources}
}

// Generate never fails on font lookup; the error return only covers PNG encoding.
func (g *Generator) Generate() (*Avatar, error) {
	face, fontName, attempts := resolveFace(g.sources, FontSize)
	defer face.Close()

	img := image.NewRGBA(image.Rect(0, 0, Size, Size))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	badge := &circle{
		center: image.Pt(Size/2, Size/2),
		radius: Size/2 - BadgeInset,
	}
	draw.DrawMask(img, img.Bounds(), image.NewUniform(Badge), image.Point{}, badge, image.Point{}, draw.Over)

	drawCentered(img, face, g.text)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}

	return &Avatar{
		PNG:      buf.Bytes(),
		Font:     fontName,
		Attempts: attempts,
	}, nil
}

func drawCentered(dst draw.Image, face font.Face, text string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(Foreground),
		Face: face,
	}
	bounds, _ := d.BoundString(text)
	width := (bounds.Max.X - bounds.Min.X).Ceil()
	height := (bounds.Max.Y - bounds.Min.Y).Ceil()

	x := (Size-width)/2 - bounds.Min.X.Floor()
	y := (Size-height)/2 - bounds.Min.Y.Floor()
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}

// circle is an alpha mask that is opaque inside the radius.
type circle struct {
	center image.Point
	radius int
}

func (c *circle) ColorModel() color.Model {
	return color.AlphaModel
}

func (c *circle) Bounds() image.Rectangle {
	return image.Rect(c.center.X-c.radius, c.center.Y-c.radius, c.center.X+c.radius, c.center.Y+c.radius)
}

func (c *circle) At(x, y int) color.Color {
	dx := float64(x-c.center.X) + 0.5
	dy := float64(y-c.center.Y) + 0.5
	r := float64(c.radius)
	if dx*dx+dy*dy < r*r {
		return color.Alpha{A: 255}
	}
	return color.Alpha{}
}
