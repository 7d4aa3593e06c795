package bitmap

import "testing"

func TestTopDownFlipsBottomUp(t *testing.T) {
	img := New(2, 3)
	img.Origin = BottomUp

	// stored row 2 is the visual top, stored row 0 the visual bottom
	copy(img.Row(2)[0:], []byte{1, 2, 3, 255})
	copy(img.Row(0)[BytesPerPixel:], []byte{9, 8, 7, 255})

	flipped := img.TopDown()
	if flipped.Origin != TopDown {
		t.Fatalf("Origin = %s, want TopDown", flipped.Origin)
	}

	if b, g, r, _ := flipped.At(0, 0); b != 1 || g != 2 || r != 3 {
		t.Errorf("top left = (%d, %d, %d), want (1, 2, 3)", b, g, r)
	}

	if b, g, r, _ := flipped.At(1, 2); b != 9 || g != 8 || r != 7 {
		t.Errorf("bottom right = (%d, %d, %d), want (9, 8, 7)", b, g, r)
	}

	if flipped.Row(0)[0] != 1 {
		t.Errorf("stored row 0 is not the visual top after TopDown()")
	}
}

func TestTopDownKeepsTopDownImage(t *testing.T) {
	img := New(1, 1)
	if img.TopDown() != img {
		t.Errorf("TopDown() copied an image that already is top-down")
	}
}

func TestRowIgnoresPadding(t *testing.T) {
	img := &Image{
		Width:  2,
		Height: 2,
		Stride: 12,
		Pixels: make([]byte, 24),
	}

	if got := len(img.Row(1)); got != 8 {
		t.Errorf("len(Row(1)) = %d, want 8", got)
	}
}
