package sim

import (
	"image"
	"log/slog"

	"github.com/pthm-cable/mosaic/systems"
)

// LoadSource decodes the image at path, or builds the test card when path
// is empty.
func LoadSource(path string, w, h int) (image.Image, error) {
	if path == "" {
		slog.Info("no image given, using test card", "width", w, "height", h)
		return systems.TestCard(w, h), nil
	}

	img, err := systems.LoadImage(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	slog.Info("loaded image", "path", path, "width", b.Dx(), "height", b.Dy())
	return img, nil
}
