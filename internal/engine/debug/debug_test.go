package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/harbor-view/internal/engine/extrude"
)

func TestBoxWireframe(t *testing.T) {
	b := extrude.Bounds{Min: [3]float32{-1, 0, -2}, Max: [3]float32{1, 3, 2}}
	verts := BoxWireframe(b)
	if len(verts) != BoxVertexCount*3 {
		t.Fatalf("got %d floats, want %d", len(verts), BoxVertexCount*3)
	}
	for i := 0; i < len(verts); i += 3 {
		for axis := 0; axis < 3; axis++ {
			v := verts[i+axis]
			if v != b.Min[axis] && v != b.Max[axis] {
				t.Fatalf("vertex %d axis %d = %v, not on the box", i/3, axis, v)
			}
		}
	}
	// Every edge changes exactly one coordinate.
	for e := 0; e < len(verts); e += 6 {
		changed := 0
		for axis := 0; axis < 3; axis++ {
			if verts[e+axis] != verts[e+3+axis] {
				changed++
			}
		}
		if changed != 1 {
			t.Errorf("edge %d changes %d coordinates, want 1", e/6, changed)
		}
	}
}

func TestPaddedAndAppend(t *testing.T) {
	b := Padded(extrude.Bounds{Max: [3]float32{1, 1, 1}}, 0.5)
	if b.Min != [3]float32{-0.5, -0.5, -0.5} || b.Max != [3]float32{1.5, 1.5, 1.5} {
		t.Errorf("Padded = %+v", b)
	}
	out := AppendBoxes(nil, b, b)
	if len(out) != 2*BoxVertexCount*3 {
		t.Errorf("AppendBoxes len = %d, want %d", len(out), 2*BoxVertexCount*3)
	}
}

func TestCaptureFromImage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "harbor")
	sc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC) }

	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.SetRGBA(1, 1, color.RGBA{R: 9, G: 8, B: 7, A: 255})

	path, err := sc.CaptureFromImage(img)
	if err != nil {
		t.Fatalf("CaptureFromImage: %v", err)
	}
	if want := filepath.Join(dir, "harbor_2026-03-01_12-30-00.000.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Errorf("path %q has no .png suffix", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r, g, b, _ := decoded.At(1, 1).RGBA(); r>>8 != 9 || g>>8 != 8 || b>>8 != 7 {
		t.Errorf("pixel = %d %d %d, want 9 8 7", r>>8, g>>8, b>>8)
	}
}
