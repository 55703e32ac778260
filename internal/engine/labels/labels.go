// Package labels rasterizes landmass names into small textures that the
// renderer draws as camera-facing billboards.
package labels

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Padding is the margin, in pixels, around the text on every side.
const Padding = 4

var (
	// Ink is the text color.
	Ink = color.RGBA{R: 245, G: 248, B: 252, A: 255}
	// Backing is the plate drawn behind the text.
	Backing = color.RGBA{R: 12, G: 24, B: 36, A: 170}
)

// Rasterize draws text with basicfont.Face7x13 on a translucent plate.
// Empty text yields nil.
func Rasterize(text string) *image.RGBA {
	if text == "" {
		return nil
	}
	face := basicfont.Face7x13
	w, h := Measure(text)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Rect, image.NewUniform(Backing), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(Ink),
		Face: face,
		Dot:  fixed.P(Padding, Padding+face.Ascent),
	}
	d.DrawString(text)
	return img
}

// Measure returns the pixel size Rasterize produces for text.
func Measure(text string) (width, height int) {
	face := basicfont.Face7x13
	adv := font.MeasureString(face, text).Ceil()
	return adv + 2*Padding, face.Height + 2*Padding
}

// WorldSize scales a rasterized label to world units, keeping its aspect,
// so that it stands height units tall.
func WorldSize(img *image.RGBA, height float32) (w, h float32) {
	if img == nil || img.Rect.Dy() == 0 {
		return 0, 0
	}
	aspect := float32(img.Rect.Dx()) / float32(img.Rect.Dy())
	return height * aspect, height
}
