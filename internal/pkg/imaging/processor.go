package imaging

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"io"

	"github.com/disintegration/imaging"
)

// Config for image processing
type Config struct {
	ThumbWidth  int // Thumbnail bounding width (default 300)
	ThumbHeight int // Thumbnail bounding height (default 300)
	Quality     int // JPEG quality 1-100 (default 85)
}

// DefaultConfig returns default processing config
func DefaultConfig() Config {
	return Config{
		ThumbWidth:  300,
		ThumbHeight: 300,
		Quality:     85,
	}
}

// Thumbnail is a generated rendition of an uploaded image
type Thumbnail struct {
	Data        []byte
	Width       int
	Height      int
	ContentType string
}

// Processor handles image decoding and rendition generation
type Processor struct {
	config Config
}

// NewProcessor creates image processor
func NewProcessor(config Config) *Processor {
	return &Processor{config: config}
}

// Dimensions decodes the image and returns its pixel dimensions.
func (p *Processor) Dimensions(reader io.Reader) (int, int, error) {
	img, err := imaging.Decode(reader)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}

// Thumbnail decodes the image and produces a JPEG thumbnail that fits
// the configured bounding box.
func (p *Processor) Thumbnail(reader io.Reader) (*Thumbnail, error) {
	img, err := imaging.Decode(reader, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fit(img, p.config.ThumbWidth, p.config.ThumbHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: p.config.Quality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return &Thumbnail{
		Data:        buf.Bytes(),
		Width:       thumb.Bounds().Dx(),
		Height:      thumb.Bounds().Dy(),
		ContentType: "image/jpeg",
	}, nil
}
