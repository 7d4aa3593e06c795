package slideshow

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/oliverbestmann/daylight/bitmap"
	"github.com/oliverbestmann/daylight/pulse"
)

// CollectPaths turns command line arguments into a playlist. Files are taken
// as they are, directories contribute their image files sorted by name.
// Sub directories are not searched.
func CollectPaths(args []string) ([]string, error) {
	var paths []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			// missing files are reported when they are shown
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("list directory %q: %w", arg, err)
		}

		// entries are sorted by file name
		for _, entry := range entries {
			if entry.IsDir() || !hasImageExtension(entry.Name()) {
				continue
			}

			paths = append(paths, filepath.Join(arg, entry.Name()))
		}
	}

	return paths, nil
}

func hasImageExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return slices.Contains(bitmap.Extensions, ext)
}

// Title returns the name shown for an image path: the file name without extension.
func Title(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// ErrorTitle returns the name shown for an image that could not be shown,
// for example "Coal Tower: not found".
func ErrorTitle(path string, err error) string {
	return Title(path) + ": " + reason(err)
}

func reason(err error) string {
	switch {
	case errors.Is(err, bitmap.ErrFileNotFound):
		return "not found"
	case errors.Is(err, bitmap.ErrUnsupportedFormat):
		return "unsupported format"
	case errors.Is(err, bitmap.ErrTooLarge):
		return "too large"
	case errors.Is(err, bitmap.ErrDecodeFailed):
		return "cannot be decoded"
	case errors.Is(err, pulse.ErrGpuUploadFailed):
		return "cannot be uploaded"
	default:
		return "cannot be shown"
	}
}
