// Package slideshow keeps track of the image on screen and runs the reload
// sequence whenever the user navigates.
package slideshow

import (
	"errors"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/daylight/bitmap"
	"github.com/oliverbestmann/daylight/pulse"
)

// ErrNothingToShow is returned by Load if not a single image could be shown.
var ErrNothingToShow = errors.New("no image could be shown")

// DefaultCacheSize is the number of decoded images kept in memory.
const DefaultCacheSize = 4

// Renderer puts a decoded image on screen. If ShowImage fails, the image
// shown before must stay visible.
type Renderer interface {
	ShowImage(img *bitmap.Image) error
}

// Decoder turns an image path into pixels.
type Decoder func(path string) (*bitmap.Image, error)

type Options struct {
	// Decoder defaults to bitmap.Decode
	Decoder Decoder

	// Number of decoded images to keep. Zero selects DefaultCacheSize,
	// a negative value disables the cache.
	CacheSize int

	// OnShow is called after an image was put on screen.
	OnShow func(path string, index int)

	// OnError is called for every image that could not be shown.
	OnError func(path string, err error)
}

// Controller moves through a Playlist and shows the selected image using
// a Renderer. All methods run the full reload before they return.
type Controller struct {
	playlist *Playlist
	renderer Renderer
	decode   Decoder
	cache    *lru.Cache[string, *bitmap.Image]

	onShow  func(path string, index int)
	onError func(path string, err error)

	// index of the image on screen, -1 if nothing was shown yet
	shown int

	reloading bool
}

func NewController(playlist *Playlist, renderer Renderer, opts Options) *Controller {
	c := &Controller{
		playlist: playlist,
		renderer: renderer,
		decode:   opts.Decoder,
		onShow:   opts.OnShow,
		onError:  opts.OnError,
		shown:    -1,
	}

	if c.decode == nil {
		c.decode = bitmap.Decode
	}

	cacheSize := opts.CacheSize
	if cacheSize == 0 {
		cacheSize = DefaultCacheSize
	}

	if cacheSize > 0 {
		c.cache, _ = lru.New[string, *bitmap.Image](cacheSize)
	}

	return c
}

// Shown returns the path and index of the image on screen.
func (c *Controller) Shown() (string, int, bool) {
	if c.shown < 0 {
		return "", -1, false
	}

	return c.playlist.At(c.shown), c.shown, true
}

// Load shows the image at the playlist cursor. Images that fail to load are
// skipped in forward direction. If no image can be shown at all, an error
// wrapping ErrNothingToShow is returned.
func (c *Controller) Load() error {
	return c.exclusive(func() error {
		count := c.playlist.Len()
		if count == 0 {
			return fmt.Errorf("%w: playlist is empty", ErrNothingToShow)
		}

		ok, err := c.showFirst(c.playlist.Index(), 1, count)
		if err != nil {
			return err
		}

		if !ok {
			return fmt.Errorf("%w: all %d images failed to load", ErrNothingToShow, count)
		}

		return nil
	})
}

// Next shows the following image. It is a no-op on an empty playlist.
func (c *Controller) Next() error {
	return c.navigate(1)
}

// Previous shows the preceding image. It is a no-op on an empty playlist.
func (c *Controller) Previous() error {
	return c.navigate(-1)
}

// First shows the first image of the playlist that can be loaded.
func (c *Controller) First() error {
	return c.jump(0, 1)
}

// Last shows the last image of the playlist that can be loaded.
func (c *Controller) Last() error {
	return c.jump(-1, -1)
}

// Reload decodes the image on screen again and shows it. If that fails, the
// image on screen stays as it is.
func (c *Controller) Reload() error {
	return c.exclusive(func() error {
		if c.shown < 0 {
			return nil
		}

		path := c.playlist.At(c.shown)

		// pick up changes made to the file
		if c.cache != nil {
			c.cache.Remove(path)
		}

		_, err := c.showFirst(c.shown, 0, 1)
		return err
	})
}

func (c *Controller) navigate(step int) error {
	return c.exclusive(func() error {
		count := c.playlist.Len()
		if count == 0 {
			return nil
		}

		// every other image gets one chance, a single image is shown again
		attempts := max(count-1, 1)

		_, err := c.showFirst(c.playlist.Index()+step, step, attempts)
		return err
	})
}

func (c *Controller) jump(index, step int) error {
	return c.exclusive(func() error {
		count := c.playlist.Len()
		if count == 0 {
			return nil
		}

		_, err := c.showFirst(index, step, count)
		return err
	})
}

// exclusive runs fn unless a reload is already running. Navigation requested
// while a reload is running is dropped, reloads never overlap.
func (c *Controller) exclusive(fn func() error) error {
	if c.reloading {
		slog.Debug("Ignore navigation while a reload is running")
		return nil
	}

	c.reloading = true
	defer func() { c.reloading = false }()

	return fn()
}

// showFirst tries to show the images at start, start+step, ... and stops at the
// first one that works. Recoverable errors are reported and skipped, any other
// error is returned. If no image could be shown, the playlist cursor moves back
// to the image on screen.
func (c *Controller) showFirst(start, step, attempts int) (bool, error) {
	for attempt := range attempts {
		index := wrap(start+step*attempt, c.playlist.Len())

		err := c.show(index)
		if err == nil {
			return true, nil
		}

		if !IsRecoverable(err) {
			return false, err
		}

		c.report(c.playlist.At(index), err)
	}

	if c.shown >= 0 {
		c.playlist.Seek(c.shown)
	}

	return false, nil
}

func (c *Controller) show(index int) error {
	path := c.playlist.At(index)

	img, cached := c.cached(path)
	if !cached {
		var err error

		img, err = c.decode(path)
		if err != nil {
			return err
		}
	}

	if err := c.renderer.ShowImage(img); err != nil {
		return fmt.Errorf("show %s: %w", path, err)
	}

	// only images that made it to the screen are kept
	if c.cache != nil && !cached {
		c.cache.Add(path, img)
	}

	c.playlist.Seek(index)
	c.shown = index

	slog.Info("Show image",
		slog.String("path", path),
		slog.Int("index", index),
		slog.Int("width", int(img.Width)),
		slog.Int("height", int(img.Height)),
	)

	if c.onShow != nil {
		c.onShow(path, index)
	}

	return nil
}

func (c *Controller) cached(path string) (*bitmap.Image, bool) {
	if c.cache == nil {
		return nil, false
	}

	return c.cache.Get(path)
}

func (c *Controller) report(path string, err error) {
	slog.Warn("Failed to show image",
		slog.String("path", path),
		slog.String("error", err.Error()),
	)

	if c.onError != nil {
		c.onError(path, err)
	}
}

// IsRecoverable reports whether the slideshow can continue after err. Decode
// and upload failures affect a single image only.
func IsRecoverable(err error) bool {
	return errors.Is(err, bitmap.ErrFileNotFound) ||
		errors.Is(err, bitmap.ErrUnsupportedFormat) ||
		errors.Is(err, bitmap.ErrDecodeFailed) ||
		errors.Is(err, bitmap.ErrTooLarge) ||
		errors.Is(err, pulse.ErrGpuUploadFailed)
}
