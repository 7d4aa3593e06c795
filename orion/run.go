package orion

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/daylight/glimpse"
	"github.com/oliverbestmann/daylight/pulse"
	"github.com/oliverbestmann/daylight/pulse/commands"
	"github.com/oliverbestmann/daylight/slideshow"
)

const (
	DefaultWindowWidth  = 1920
	DefaultWindowHeight = 1080
)

type RunSlideshowOptions struct {
	// images to show. This is the only field that is required
	Paths []string

	WindowWidth  int
	WindowHeight int
	WindowTitle  string

	// number of decoded images to keep in memory, see slideshow.Options
	CacheSize int

	KeyBindings KeyBindings
}

// RunSlideshow opens a window and shows the images until the window is closed
// or a frame fails.
func RunSlideshow(opts RunSlideshowOptions) error {
	if len(opts.Paths) == 0 {
		return errors.New("Paths must not be empty")
	}

	if opts.WindowWidth == 0 {
		opts.WindowWidth = DefaultWindowWidth
	}

	if opts.WindowHeight == 0 {
		opts.WindowHeight = DefaultWindowHeight
	}

	if opts.WindowTitle == "" {
		opts.WindowTitle = "Daylight"
	}

	if opts.KeyBindings == nil {
		opts.KeyBindings = DefaultKeyBindings()
	}

	// create a new window
	win, err := glimpse.NewWindow(
		opts.WindowWidth,
		opts.WindowHeight,
		opts.WindowTitle,
	)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	defer win.Terminate()

	scheduler := NewScheduler()
	defer scheduler.Stop()

	// initialize the webgpu device
	ctx, err := pulse.New(win.SurfaceDescriptor())
	if err != nil {
		return fmt.Errorf("initializing wgpu: %w", err)
	}

	defer ctx.Release()
	defer pulse.PurgeSamplers()

	// initialize the view
	view, err := pulse.NewView(ctx)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}

	defer view.Release()

	width, height := win.GetSize()
	if err := view.Configure(width, height); err != nil {
		return fmt.Errorf("%w: %w", pulse.ErrDeviceCreationFailed, err)
	}

	if err := scheduler.DeviceReady(); err != nil {
		return err
	}

	quad, err := commands.NewAspectQuad(ctx, view.Format())
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	defer quad.Release()

	viewer := NewViewer(ctx, view, quad)
	defer viewer.Release()

	if err := scheduler.ResourcesLoaded(viewer); err != nil {
		return err
	}

	controller := slideshow.NewController(slideshow.NewPlaylist(opts.Paths), viewer, slideshow.Options{
		CacheSize: opts.CacheSize,

		OnShow: func(path string, index int) {
			win.SetTitle(slideshow.Title(path))
		},

		OnError: func(path string, err error) {
			win.SetTitle(slideshow.ErrorTitle(path, err))
		},
	})

	if err := controller.Load(); err != nil {
		return err
	}

	if err := scheduler.Start(); err != nil {
		return err
	}

	err = win.Run(func(updateInputState glimpse.UpdateInputState) error {
		input := updateInputState()

		for _, action := range opts.KeyBindings.Actions(input.Keys) {
			if err := Dispatch(action, controller, win); err != nil {
				return fmt.Errorf("%s: %w", action, err)
			}
		}

		return scheduler.Tick()
	})

	times := scheduler.Times()
	slog.Info("Slideshow closed",
		slog.Uint64("frames", times.FrameCount),
		slog.Float64("fps", times.FPS()),
	)

	return err
}
