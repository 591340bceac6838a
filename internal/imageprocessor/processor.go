package imageprocessor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxDimension = 512
	defaultQuality      = 85
	maxSourcePixels     = 40_000_000
)

var ErrNotAnImage = errors.New("file is not a supported image")

// Result is a logo ready to be stored.
type Result struct {
	Data        []byte
	Format      string // jpeg, png, gif or webp
	ContentType string
	Ext         string
	Width       int
	Height      int
	Resized     bool
}

// Processor validates uploaded logos and scales down oversized ones.
type Processor struct {
	maxDimension int
	quality      int // JPEG quality (1-100)
}

func NewProcessor(maxDimension, quality int) *Processor {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if quality <= 0 || quality > 100 {
		quality = defaultQuality
	}
	return &Processor{
		maxDimension: maxDimension,
		quality:      quality,
	}
}

// Normalize checks that r holds a decodable image. Images that fit within the
// maximum dimension are returned untouched; larger ones are resized keeping the
// aspect ratio and re-encoded as JPEG (for JPEG sources) or PNG (for the rest).
// Animated GIFs keep only their first frame when resized.
func (p *Processor) Normalize(r io.Reader) (*Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrNotAnImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxSourcePixels {
		return nil, ErrNotAnImage
	}

	if cfg.Width <= p.maxDimension && cfg.Height <= p.maxDimension {
		return &Result{
			Data:        raw,
			Format:      format,
			ContentType: contentTypes[format],
			Ext:         extensions[format],
			Width:       cfg.Width,
			Height:      cfg.Height,
		}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrNotAnImage
	}
	resized := p.resize(img, p.maxDimension, p.maxDimension)

	out := "png"
	if format == "jpeg" {
		out = "jpeg"
	}
	var buf bytes.Buffer
	switch out {
	case "jpeg":
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
	default:
		if err := png.Encode(&buf, resized); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
	}

	b := resized.Bounds()
	return &Result{
		Data:        buf.Bytes(),
		Format:      out,
		ContentType: contentTypes[out],
		Ext:         extensions[out],
		Width:       b.Dx(),
		Height:      b.Dy(),
		Resized:     true,
	}, nil
}

// resize fits img into maxWidth x maxHeight keeping the aspect ratio.
func (p *Processor) resize(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	ratio := float64(width) / float64(height)
	newWidth := maxWidth
	newHeight := maxHeight

	if float64(maxWidth)/float64(maxHeight) > ratio {
		newWidth = int(float64(maxHeight) * ratio)
	} else {
		newHeight = int(float64(maxWidth) / ratio)
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

var contentTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

var extensions = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
}
