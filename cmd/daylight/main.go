package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/oliverbestmann/daylight/orion"
	"github.com/oliverbestmann/daylight/slideshow"
	"github.com/pkg/profile"
)

func main() {
	os.Exit(daylight())
}

func daylight() int {
	width := flag.Int("width", orion.DefaultWindowWidth, "window width in pixels")
	height := flag.Int("height", orion.DefaultWindowHeight, "window height in pixels")
	cacheSize := flag.Int("cache", slideshow.DefaultCacheSize, "number of decoded images to keep in memory")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] image-or-directory...\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("DAYLIGHT_LOG_LEVEL")),
	})))

	switch strings.ToLower(os.Getenv("DAYLIGHT_PROFILE")) {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	if err := run(*width, *height, *cacheSize, flag.Args()); err != nil {
		slog.Error("Slideshow failed", slog.String("error", err.Error()))
		return 1
	}

	return 0
}

func run(width, height, cacheSize int, args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("no images given")
	}

	paths, err := slideshow.CollectPaths(args)
	if err != nil {
		return fmt.Errorf("collect images: %w", err)
	}

	if len(paths) == 0 {
		return fmt.Errorf("%w: no supported image files in %s", slideshow.ErrNothingToShow, strings.Join(args, ", "))
	}

	slog.Info("Start slideshow", slog.Int("images", len(paths)))

	return orion.RunSlideshow(orion.RunSlideshowOptions{
		Paths:        paths,
		WindowWidth:  width,
		WindowHeight: height,
		CacheSize:    cacheSize,
	})
}

func logLevel(value string) slog.Level {
	var level slog.Level

	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo
	}

	return level
}
