package slideshow

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"testing"

	"github.com/oliverbestmann/daylight/bitmap"
	"github.com/oliverbestmann/daylight/pulse"
)

// fakeRenderer keeps track of the texture handle that would be bound on the gpu.
type fakeRenderer struct {
	bound   *bitmap.Image
	handle  int
	shown   []uint32
	failFor map[uint32]error

	// called from within ShowImage
	during func()
}

func (r *fakeRenderer) ShowImage(img *bitmap.Image) error {
	if r.during != nil {
		r.during()
	}

	if err := r.failFor[img.Width]; err != nil {
		return err
	}

	r.bound = img
	r.handle += 1
	r.shown = append(r.shown, img.Width)
	return nil
}

// fakeDecoder produces an image whose width identifies the path.
type fakeDecoder struct {
	widths map[string]uint32
	calls  []string
}

func (d *fakeDecoder) Decode(path string) (*bitmap.Image, error) {
	d.calls = append(d.calls, path)

	width, ok := d.widths[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", bitmap.ErrFileNotFound, path)
	}

	return bitmap.New(width, 10), nil
}

func newFixture(paths ...string) (*Controller, *fakeRenderer, *fakeDecoder, *[]string) {
	decoder := &fakeDecoder{widths: map[string]uint32{}}
	for idx, path := range paths {
		if filepath.Ext(path) != ".missing" {
			decoder.widths[path] = uint32(idx + 1)
		}
	}

	var failed []string

	renderer := &fakeRenderer{failFor: map[uint32]error{}}
	controller := NewController(NewPlaylist(paths), renderer, Options{
		Decoder: decoder.Decode,
		OnError: func(path string, err error) {
			failed = append(failed, path)
		},
	})

	return controller, renderer, decoder, &failed
}

func TestControllerNavigates(t *testing.T) {
	c, renderer, _, _ := newFixture("a.png", "b.png", "c.png")

	if err := c.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	steps := []struct {
		name string
		fn   func() error
		want uint32
	}{
		{"next", c.Next, 2},
		{"next", c.Next, 3},
		{"next wraps", c.Next, 1},
		{"previous wraps", c.Previous, 3},
		{"first", c.First, 1},
		{"last", c.Last, 3},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			t.Fatalf("%s: error = %v", step.name, err)
		}

		if renderer.bound.Width != step.want {
			t.Errorf("%s: bound image %d, want %d", step.name, renderer.bound.Width, step.want)
		}
	}
}

func TestControllerMissingFileKeepsTexture(t *testing.T) {
	c, renderer, _, failed := newFixture("a.png", "b.missing")

	if err := c.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	bound, handle := renderer.bound, renderer.handle

	if err := c.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if renderer.bound != bound || renderer.handle != handle {
		t.Errorf("texture changed after a failed navigation")
	}

	if !slices.Equal(*failed, []string{"b.missing"}) {
		t.Errorf("reported failures = %v, want [b.missing]", *failed)
	}

	// cursor stays on the image that is on screen
	path, index, ok := c.Shown()
	if !ok || path != "a.png" || index != 0 {
		t.Errorf("Shown() = %q, %d, %v", path, index, ok)
	}

	if c.playlist.Index() != 0 {
		t.Errorf("playlist index = %d, want 0", c.playlist.Index())
	}
}

func TestControllerSkipsBrokenImages(t *testing.T) {
	c, renderer, _, failed := newFixture("a.png", "b.missing", "c.missing", "d.png")

	if err := c.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := c.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if renderer.bound.Width != 4 {
		t.Errorf("bound image %d, want 4", renderer.bound.Width)
	}

	if len(*failed) != 2 {
		t.Errorf("reported failures = %v, want two", *failed)
	}

	if err := c.Previous(); err != nil {
		t.Fatalf("Previous() error = %v", err)
	}

	if renderer.bound.Width != 1 {
		t.Errorf("bound image %d, want 1", renderer.bound.Width)
	}
}

func TestControllerLoadSkipsToFirstWorkingImage(t *testing.T) {
	c, renderer, _, _ := newFixture("a.missing", "b.png")

	if err := c.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if renderer.bound.Width != 2 {
		t.Errorf("bound image %d, want 2", renderer.bound.Width)
	}
}

func TestControllerLoadFailsWithoutImages(t *testing.T) {
	c, _, _, _ := newFixture("a.missing")

	if err := c.Load(); !errors.Is(err, ErrNothingToShow) {
		t.Errorf("Load() error = %v, want ErrNothingToShow", err)
	}

	empty, _, _, _ := newFixture()
	if err := empty.Load(); !errors.Is(err, ErrNothingToShow) {
		t.Errorf("Load() on empty playlist error = %v, want ErrNothingToShow", err)
	}
}

func TestControllerEmptyNavigationIsNoop(t *testing.T) {
	c, renderer, _, _ := newFixture()

	for _, fn := range []func() error{c.Next, c.Previous, c.First, c.Last, c.Reload} {
		if err := fn(); err != nil {
			t.Errorf("navigation on empty playlist error = %v", err)
		}
	}

	if renderer.handle != 0 {
		t.Errorf("renderer was called on an empty playlist")
	}
}

func TestControllerUploadFailureIsRecoverable(t *testing.T) {
	c, renderer, _, failed := newFixture("a.png", "b.png", "c.png")
	renderer.failFor[2] = fmt.Errorf("%w: texture too large", pulse.ErrGpuUploadFailed)

	if err := c.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := c.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if renderer.bound.Width != 3 {
		t.Errorf("bound image %d, want 3", renderer.bound.Width)
	}

	if !slices.Equal(*failed, []string{"b.png"}) {
		t.Errorf("reported failures = %v, want [b.png]", *failed)
	}
}

func TestControllerDeviceErrorIsFatal(t *testing.T) {
	c, renderer, _, _ := newFixture("a.png", "b.png")

	if err := c.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	renderer.failFor[2] = pulse.ErrPresentationLost

	if err := c.Next(); !errors.Is(err, pulse.ErrPresentationLost) {
		t.Errorf("Next() error = %v, want ErrPresentationLost", err)
	}
}

func TestControllerReloadIsIdempotent(t *testing.T) {
	c, renderer, decoder, _ := newFixture("a.png", "b.png")

	if err := c.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for range 3 {
		before := renderer.bound

		if err := c.Reload(); err != nil {
			t.Fatalf("Reload() error = %v", err)
		}

		if renderer.bound == nil || renderer.bound.Width != before.Width {
			t.Fatalf("Reload() changed the image on screen")
		}
	}

	// reload always reads the file again
	if got := len(decoder.calls); got != 4 {
		t.Errorf("decoder calls = %d, want 4", got)
	}

	// a reload that fails keeps the image on screen
	delete(decoder.widths, "a.png")
	handle := renderer.handle

	if err := c.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if renderer.handle != handle || renderer.bound.Width != 1 {
		t.Errorf("failed reload changed the bound texture")
	}
}

func TestControllerCachesDecodedImages(t *testing.T) {
	c, _, decoder, _ := newFixture("a.png", "b.png")

	if err := c.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	_ = c.Next()
	_ = c.Previous()
	_ = c.Next()

	if !slices.Equal(decoder.calls, []string{"a.png", "b.png"}) {
		t.Errorf("decoder calls = %v, want one per path", decoder.calls)
	}
}

func TestControllerDropsOverlappingNavigation(t *testing.T) {
	c, renderer, _, _ := newFixture("a.png", "b.png", "c.png")

	nested := 0
	renderer.during = func() {
		nested += 1
		if err := c.Next(); err != nil {
			t.Errorf("nested Next() error = %v", err)
		}
	}

	if err := c.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := c.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if nested != 2 {
		t.Errorf("ShowImage calls = %d, want 2", nested)
	}

	if !slices.Equal(renderer.shown, []uint32{1, 2}) {
		t.Errorf("shown = %v, want [1 2]", renderer.shown)
	}
}

func TestControllerOnShow(t *testing.T) {
	var shown []string

	c := NewController(
		NewPlaylist([]string{"maps/Coal Tower.png"}),
		&fakeRenderer{},
		Options{
			Decoder: func(path string) (*bitmap.Image, error) { return bitmap.New(1, 1), nil },
			OnShow:  func(path string, index int) { shown = append(shown, Title(path)) },
		},
	)

	if err := c.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// a single image is shown again on navigation
	if err := c.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if !slices.Equal(shown, []string{"Coal Tower", "Coal Tower"}) {
		t.Errorf("shown = %v", shown)
	}
}

func TestControllerCachesOnlyShownImages(t *testing.T) {
	c, renderer, decoder, _ := newFixture("a.png", "b.png")
	renderer.failFor[2] = fmt.Errorf("%w: texture too large", pulse.ErrGpuUploadFailed)

	if err := c.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := c.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if c.cache.Contains("b.png") {
		t.Errorf("image that failed to show was cached")
	}

	delete(renderer.failFor, 2)

	if err := c.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if !slices.Equal(decoder.calls, []string{"a.png", "b.png", "b.png"}) {
		t.Errorf("decoder calls = %v, want b.png decoded again", decoder.calls)
	}

	if !c.cache.Contains("b.png") {
		t.Errorf("shown image was not cached")
	}
}

func TestIsRecoverable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{fmt.Errorf("%w: a.png", bitmap.ErrFileNotFound), true},
		{fmt.Errorf("%w: a.png", bitmap.ErrUnsupportedFormat), true},
		{fmt.Errorf("%w: a.png", bitmap.ErrDecodeFailed), true},
		{fmt.Errorf("%w: a.png is 60000x60000", bitmap.ErrTooLarge), true},
		{fmt.Errorf("show a.png: %w", pulse.ErrGpuUploadFailed), true},
		{fmt.Errorf("show a.png: %w", pulse.ErrPresentationLost), false},
		{errors.New("device lost"), false},
	}

	for _, tc := range cases {
		if got := IsRecoverable(tc.err); got != tc.want {
			t.Errorf("IsRecoverable(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
