/*
MIT License

Copyright (c) 2025 Yuval Adar <adary@adary.org>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	iconSize   = 64
	iconRadius = 14
	glyphScale = 4
)

var (
	iconBackground = color.RGBA{R: 0x5F, G: 0x00, B: 0xAF, A: 0xFF}
	iconForeground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// Icon renders the tray icon: a "C" on a rounded square, as PNG bytes.
func Icon() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	fillRoundedSquare(img, iconBackground, iconRadius)

	face := basicfont.Face7x13
	glyph := image.NewRGBA(image.Rect(0, 0, face.Width, face.Height))
	d := &font.Drawer{
		Dst:  glyph,
		Src:  image.NewUniform(iconForeground),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString("C")

	w := face.Width * glyphScale
	h := face.Height * glyphScale
	x := (iconSize - w) / 2
	y := (iconSize - h) / 2
	xdraw.NearestNeighbor.Scale(img, image.Rect(x, y, x+w, y+h), glyph, glyph.Bounds(), xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fillRoundedSquare(img *image.RGBA, c color.RGBA, radius int) {
	size := img.Bounds().Dx()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if insideRounded(x, y, size, radius) {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func insideRounded(x, y, size, radius int) bool {
	cx, cy := x, y
	switch {
	case x < radius:
		cx = radius
	case x >= size-radius:
		cx = size - radius - 1
	}
	switch {
	case y < radius:
		cy = radius
	case y >= size-radius:
		cy = size - radius - 1
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= radius*radius
}
