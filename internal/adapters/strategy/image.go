package strategy

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/gen2brain/avif"
	"github.com/gen2brain/webp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/iamNilotpal/squash/internal/core/domain"
	"github.com/iamNilotpal/squash/internal/core/ports"
	"github.com/iamNilotpal/squash/internal/core/services/quality"
	"github.com/iamNilotpal/squash/pkg/errors"
)

const (
	// MaxPixels bounds width*height of an accepted image. Decoders allocate
	// the full frame up front, so a tiny file with a forged header would
	// otherwise exhaust memory.
	MaxPixels = 268402689

	// avifSpeed trades encode time for size on a 0 (slowest) to 10 scale.
	avifSpeed = 8
)

func init() {
	image.RegisterFormat("webp", "RIFF????WEBPVP8", webp.Decode, webp.DecodeConfig)
	image.RegisterFormat("avif", "????ftypavif", avif.Decode, avif.DecodeConfig)
	image.RegisterFormat("avif", "????ftypavis", avif.Decode, avif.DecodeConfig)
}

// Image decodes the upload and re-encodes it in the declared format.
// The declared format decides the output encoding even when the bytes are
// something else, so a JPEG uploaded as "photo.png" comes back as PNG.
type Image struct{}

func NewImage() *Image {
	return &Image{}
}

func (s *Image) Name() string { return NameImage }

func (s *Image) Compress(ctx context.Context, data []byte, params ports.StrategyParams) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fail(errors.ErrorTimeout, NameImage, params, err)
	}

	cfg, source, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fail(errors.ErrorDecode, NameImage, params, fmt.Errorf("unrecognised image data: %w", err))
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > MaxPixels {
		return nil, fail(errors.ErrorDecode, NameImage, params, fmt.Errorf(
			"image of %dx%d exceeds the %d pixel limit", cfg.Width, cfg.Height, MaxPixels,
		))
	}

	q := quality.OrDefault(params.Quality, quality.ImageDefaultQuality)
	out := new(bytes.Buffer)

	switch params.Format {
	case domain.FormatJPEG, domain.FormatJPG:
		err = s.withDecoded(data, func(img image.Image) error {
			return jpeg.Encode(out, img, &jpeg.Options{Quality: q})
		})
	case domain.FormatPNG:
		err = s.withDecoded(data, func(img image.Image) error {
			return encodePNG(out, img, q)
		})
	case domain.FormatWEBP:
		err = s.withDecoded(data, func(img image.Image) error {
			return webp.Encode(out, img, webp.Options{Quality: q, Method: 6})
		})
	case domain.FormatAVIF:
		err = s.withDecoded(data, func(img image.Image) error {
			return avif.Encode(out, img, avif.Options{Quality: q, QualityAlpha: q, Speed: avifSpeed})
		})
	case domain.FormatGIF:
		err = s.encodeGIF(out, data, source)
	default:
		err = s.recode(out, data, source)
	}

	if err != nil {
		if se := errors.AsStrategyError(err); se != nil {
			return nil, fail(se.Category, NameImage, params, se.Err)
		}
		return nil, fail(errors.ErrorCompression, NameImage, params, err)
	}

	return out.Bytes(), nil
}

// withDecoded decodes a single frame and hands it to encode.
func (s *Image) withDecoded(data []byte, encode func(image.Image) error) error {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return errors.NewStrategyError(errors.ErrorDecode, NameImage, "", "", err)
	}
	return encode(img)
}

// encodeGIF keeps every frame when the source is itself a GIF. Other sources
// are quantized to a single frame.
func (s *Image) encodeGIF(w io.Writer, data []byte, source string) error {
	if source == "gif" {
		anim, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return errors.NewStrategyError(errors.ErrorDecode, NameImage, "", "", err)
		}
		return gif.EncodeAll(w, anim)
	}

	return s.withDecoded(data, func(img image.Image) error {
		return gif.Encode(w, img, nil)
	})
}

// recode re-encodes in the source's own format with library defaults. This
// is the default arm for formats with no dedicated branch; it rarely shrinks
// anything and the Size-Guard usually keeps the original.
func (s *Image) recode(w io.Writer, data []byte, source string) error {
	if source == "gif" {
		return s.encodeGIF(w, data, source)
	}

	return s.withDecoded(data, func(img image.Image) error {
		switch source {
		case "jpeg":
			return jpeg.Encode(w, img, nil)
		case "png":
			return png.Encode(w, img)
		case "webp":
			return webp.Encode(w, img)
		case "avif":
			return avif.Encode(w, img)
		case "bmp":
			return bmp.Encode(w, img)
		case "tiff":
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
		default:
			return fmt.Errorf("no encoder for image format %q", source)
		}
	})
}

// encodePNG writes img at maximum deflate effort. Below full quality the
// image is first quantized to a palette sized by PaletteSize(q) and dithered.
func encodePNG(w io.Writer, img image.Image, q int) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if q >= quality.MaxQuality {
		return enc.Encode(w, img)
	}

	opaque := true
	if o, ok := img.(interface{ Opaque() bool }); ok {
		opaque = o.Opaque()
	}

	quantizer := quantize.MedianCutQuantizer{AddTransparent: !opaque}
	bounds := img.Bounds()
	dst := image.NewPaletted(bounds, quantizer.Quantize(make(color.Palette, 0, PaletteSize(q)), img))
	draw.FloydSteinberg.Draw(dst, bounds, img, bounds.Min)

	return enc.Encode(w, dst)
}

// PaletteSize maps a quality onto a PNG palette size. The steps line up
// with the bit depths the encoder picks (8, 7, 6 and 4 bits per pixel
// worth of colours), so lower qualities also shrink the raw scanlines.
func PaletteSize(q int) int {
	switch {
	case q >= 80:
		return 256
	case q >= 60:
		return 128
	case q >= 40:
		return 64
	case q >= 20:
		return 16
	default:
		return 4
	}
}
