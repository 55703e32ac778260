package texture

import (
	"image"
	"image/color"
	"testing"
)

func TestToRGBA(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{"gray", image.NewGray(image.Rect(0, 0, 3, 2))},
		{"offset rgba", image.NewRGBA(image.Rect(5, 5, 8, 7))},
		{"nrgba", image.NewNRGBA(image.Rect(0, 0, 3, 2))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToRGBA(tt.img)
			if got.Rect != image.Rect(0, 0, 3, 2) {
				t.Errorf("rect = %v, want (0,0)-(3,2)", got.Rect)
			}
		})
	}
}

func TestToRGBAKeepsPixels(t *testing.T) {
	src := image.NewNRGBA(image.Rect(2, 2, 4, 4))
	src.SetNRGBA(3, 2, color.NRGBA{R: 200, G: 10, B: 20, A: 255})

	got := ToRGBA(src)
	if c := got.RGBAAt(1, 0); c.R != 200 || c.G != 10 || c.B != 20 || c.A != 255 {
		t.Errorf("pixel = %v, want {200 10 20 255}", c)
	}
}

func TestToRGBASameImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if ToRGBA(src) != src {
		t.Error("origin-anchored RGBA should be returned unchanged")
	}
}
