package enhance

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"doctorsmile/models"

	"go.uber.org/zap"
)

// LocalEnhancer is the in-process whitening fallback: it classifies pixels as
// tooth-like by brightness and channel thresholds, then blends them toward
// white proportionally to the requested level. Deterministic for a fixed
// input and options.
type LocalEnhancer struct {
	Logger *zap.Logger
}

// Tooth-likeness thresholds, in 8-bit channel space.
const (
	toothBrightnessMin = 110
	toothChannelSkew   = 60
	toothBlueMin       = 60
)

func (e *LocalEnhancer) Enhance(ctx context.Context, photo []byte, mimeType string, opts Options) (*models.ImagePair, error) {
	if len(photo) == 0 {
		return nil, models.NewValidationError("photo")
	}

	before := DataURI(photo, mimeType)

	img, format, err := image.Decode(bytes.NewReader(photo))
	if err != nil {
		// Undecodable input degrades to pass-through rather than failing.
		if e.Logger != nil {
			e.Logger.Warn("enhance: falling back to pass-through", zap.Error(err))
		}
		return &models.ImagePair{Before: before, After: before}, nil
	}

	level := opts.Level
	if level <= 0 {
		level = DefaultLevel
	}
	if level > 10 {
		level = 10
	}

	whitened := whiten(img, level)

	encoded, outMime, err := encodeImage(whitened, format)
	if err != nil {
		if e.Logger != nil {
			e.Logger.Warn("enhance: re-encode failed, using pass-through", zap.Error(err))
		}
		return &models.ImagePair{Before: before, After: before}, nil
	}

	return &models.ImagePair{Before: before, After: DataURI(encoded, outMime)}, nil
}

// whiten blends tooth-like pixels toward white. Integer arithmetic keeps the
// output byte-stable across runs.
func whiten(src image.Image, level int) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, a16 := src.At(x, y).RGBA()
			r := int(r16 >> 8)
			g := int(g16 >> 8)
			b := int(b16 >> 8)

			if isToothLike(r, g, b) {
				r = blendTowardWhite(r, level)
				g = blendTowardWhite(g, level)
				b = blendTowardWhite(b, level)
			}

			dst.SetRGBA(x, y, color.RGBA{
				R: uint8(r),
				G: uint8(g),
				B: uint8(b),
				A: uint8(a16 >> 8),
			})
		}
	}
	return dst
}

func isToothLike(r, g, b int) bool {
	brightness := (r + g + b) / 3
	skew := r - g
	if skew < 0 {
		skew = -skew
	}
	return brightness > toothBrightnessMin && skew < toothChannelSkew && b > toothBlueMin
}

func blendTowardWhite(c, level int) int {
	// level 10 closes 60% of the distance to white, level 1 closes 6%.
	return c + (255-c)*level*6/100
}

func encodeImage(img image.Image, format string) ([]byte, string, error) {
	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/png", nil
	case "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	default:
		return nil, "", fmt.Errorf("unsupported image format: %s", format)
	}
}

// DataURI wraps raw image bytes as an inline data URI.
func DataURI(data []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}
