// Package annotate draws element boxes onto page screenshots: green for
// visible elements, red for hidden ones, each labelled with its ID.
package annotate

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/mj1618/visible/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	visibleColor = color.RGBA{R: 0, G: 200, B: 0, A: 255}
	hiddenColor  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// Blank returns a white canvas of the given size, used when a backend
// cannot take screenshots.
func Blank(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

// Draw boxes every element in a flattened, annotated tree. Element rects
// are viewport-relative CSS pixels; viewport is the CSS size the image
// covers, so device-scaled screenshots line up. Elements with a nil
// Visible flag are skipped.
func Draw(img image.Image, elements []model.FlatElement, viewport [2]int) *image.RGBA {
	rgba := toRGBA(img)

	b := img.Bounds()
	scaleX, scaleY := 1.0, 1.0
	if viewport[0] > 0 {
		scaleX = float64(b.Dx()) / float64(viewport[0])
	}
	if viewport[1] > 0 {
		scaleY = float64(b.Dy()) / float64(viewport[1])
	}

	for _, el := range elements {
		if el.Visible == nil {
			continue
		}
		c := hiddenColor
		if *el.Visible {
			c = visibleColor
		}
		x := b.Min.X + int(el.Rect[0]*scaleX)
		y := b.Min.Y + int(el.Rect[1]*scaleY)
		w := int(el.Rect[2] * scaleX)
		h := int(el.Rect[3] * scaleY)
		drawRectangle(rgba, x, y, x+w, y+h, c)
		drawTextWithOutline(rgba, fmt.Sprintf("[%d]", el.ID), x+w/2, y+h/2)
	}
	return rgba
}

// Decode reads a PNG screenshot.
func Decode(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return img, nil
}

// Encode writes img as PNG.
func Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// drawRectangle draws a one-pixel outline, clipped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	r := image.Rect(x1, y1, x2, y2).Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		if y1 >= r.Min.Y {
			img.Set(x, y1, c)
		}
		if y2-1 < r.Max.Y {
			img.Set(x, y2-1, c)
		}
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		if x1 >= r.Min.X {
			img.Set(x1, y, c)
		}
		if x2-1 < r.Max.X {
			img.Set(x2-1, y, c)
		}
	}
}

// drawTextWithOutline centres text on (x, y) with a dark outline.
// basicfont.Face7x13 glyphs are 7px wide and 13px tall.
func drawTextWithOutline(img *image.RGBA, text string, x, y int) {
	ox := x - len(text)*7/2
	oy := y + 13/2

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, text, ox+dx, oy+dy, outlineColor)
		}
	}
	drawString(img, text, ox, oy, textColor)
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
