package pixelart

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestSprite_Deterministic(t *testing.T) {
	first := Sprite(42, 16)
	second := Sprite(42, 16)

	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("Expected identical pixels for the same seed")
	}

	other := Sprite(43, 16)
	if bytes.Equal(first.Pix, other.Pix) {
		t.Error("Expected different pixels for a different seed")
	}
}

func TestSprite_Mirrored(t *testing.T) {
	img := Sprite(7, 16)
	b := img.Bounds()

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx()/2; x++ {
			left := img.NRGBAAt(x, y)
			right := img.NRGBAAt(b.Dx()-1-x, y)
			if left != right {
				t.Fatalf("Pixel (%d,%d) not mirrored: %v vs %v", x, y, left, right)
			}
		}
	}
}

func TestSprite_DefaultSize(t *testing.T) {
	img := Sprite(1, 0)
	b := img.Bounds()

	if b.Dx() != DefaultSpriteSize || b.Dy() != DefaultSpriteSize {
		t.Errorf("Expected %dx%d sprite, got %dx%d",
			DefaultSpriteSize, DefaultSpriteSize, b.Dx(), b.Dy())
	}
}

func TestPaletteFor_MatchesSprite(t *testing.T) {
	// The sprite pixels must come from the palette the seed selects
	img := Sprite(42, 16)
	pal := PaletteFor(42)

	corner := img.NRGBAAt(0, 0)
	matches := corner == pal.Background
	for _, c := range pal.Colors {
		if corner == c {
			matches = true
		}
	}
	if !matches {
		t.Errorf("Corner pixel %v not drawn from palette %s", corner, pal.Name)
	}
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(Sprite(3, 8))
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	if len(data) == 0 {
		t.Fatal("Expected non-empty PNG data")
	}

	// PNG signature
	if !bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("Output does not start with a PNG signature")
	}
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		srcW, srcH int
		maxW, maxH float32
		expected   int
	}{
		{16, 16, 384, 384, 24},
		{16, 16, 100, 100, 6},
		{16, 16, 15, 15, 1},
		{32, 16, 128, 128, 4},
		{0, 16, 128, 128, 1},
	}

	for _, test := range tests {
		result := FitScale(test.srcW, test.srcH, test.maxW, test.maxH)
		if result != test.expected {
			t.Errorf("FitScale(%d, %d, %v, %v) = %d, expected %d",
				test.srcW, test.srcH, test.maxW, test.maxH, result, test.expected)
		}
	}
}

func TestScaleNearest(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 0xff, A: 0xff})

	dst := ScaleNearest(src, 3)
	b := dst.Bounds()

	if b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("Expected 6x6 output, got %dx%d", b.Dx(), b.Dy())
	}

	redAt := func(x, y int) uint8 {
		return color.NRGBAModel.Convert(dst.At(x, y)).(color.NRGBA).R
	}

	// Every pixel of the top-left 3x3 block replicates the source pixel
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if redAt(x, y) != 0xff {
				t.Fatalf("Pixel (%d,%d) lost the source color", x, y)
			}
		}
	}

	if redAt(3, 0) != 0 {
		t.Error("Neighbor block bled into the wrong source pixel")
	}
}
