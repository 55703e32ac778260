package labels

import "testing"

func TestRasterize(t *testing.T) {
	tests := []struct {
		text  string
		width int
	}{
		{"A", 7 + 2*Padding},
		{"Berth 1", 7*7 + 2*Padding},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			img := Rasterize(tt.text)
			if img == nil {
				t.Fatal("Rasterize returned nil")
			}
			if got := img.Rect.Dx(); got != tt.width {
				t.Errorf("width = %d, want %d", got, tt.width)
			}
			if got := img.Rect.Dy(); got != 13+2*Padding {
				t.Errorf("height = %d, want %d", got, 13+2*Padding)
			}
		})
	}
}

func TestRasterizeDrawsInk(t *testing.T) {
	img := Rasterize("Harbor")
	inked := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] == Ink.R && img.Pix[i+1] == Ink.G && img.Pix[i+2] == Ink.B {
			inked++
		}
	}
	if inked == 0 {
		t.Error("no text pixels drawn")
	}
	if c := img.RGBAAt(0, 0); c != Backing {
		t.Errorf("corner = %v, want backing %v", c, Backing)
	}
}

func TestRasterizeEmpty(t *testing.T) {
	if Rasterize("") != nil {
		t.Error("empty text should rasterize to nil")
	}
}

func TestWorldSize(t *testing.T) {
	img := Rasterize("Yard")
	w, h := WorldSize(img, 2)
	if h != 2 {
		t.Errorf("height = %v, want 2", h)
	}
	want := 2 * float32(img.Rect.Dx()) / float32(img.Rect.Dy())
	if w != want {
		t.Errorf("width = %v, want %v", w, want)
	}
	if w, h := WorldSize(nil, 2); w != 0 || h != 0 {
		t.Errorf("nil image size = %v x %v, want 0 x 0", w, h)
	}
}
