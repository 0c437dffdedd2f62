package render

import (
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/butterfly"
)

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SavePNG writes img to a PNG file at path.
func SavePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := WritePNG(f, img); err != nil {
		return err
	}
	b := img.Bounds()
	butterfly.Logger().Info("render: wrote image",
		slog.String("path", path),
		slog.Int("width", b.Dx()),
		slog.Int("height", b.Dy()),
	)
	return nil
}
