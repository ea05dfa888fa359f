package enhance

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"doctorsmile/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testPhoto builds a PNG whose left half is tooth-like (bright, near-neutral)
// and whose right half is dark background.
func testPhoto(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if x < 4 {
				img.SetRGBA(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{R: 30, G: 30, B: 30, A: 255})
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeDataURIPNG(t *testing.T, uri string) image.Image {
	t.Helper()
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestLocalEnhance_Deterministic(t *testing.T) {
	e := &LocalEnhancer{Logger: zap.NewNop()}
	photo := testPhoto(t)
	opts := Options{Level: 5}

	first, err := e.Enhance(context.Background(), photo, "image/png", opts)
	require.NoError(t, err)
	second, err := e.Enhance(context.Background(), photo, "image/png", opts)
	require.NoError(t, err)

	assert.Equal(t, first.Before, second.Before)
	assert.Equal(t, first.After, second.After)
}

func TestLocalEnhance_WhitensToothLikePixelsOnly(t *testing.T) {
	e := &LocalEnhancer{Logger: zap.NewNop()}

	pair, err := e.Enhance(context.Background(), testPhoto(t), "image/png", Options{Level: 7})
	require.NoError(t, err)
	require.True(t, pair.HasBoth())
	assert.NotEqual(t, pair.Before, pair.After)

	after := decodeDataURIPNG(t, pair.After)

	// Bright pixel moved toward white: 200 + (255-200)*7*6/100 = 223.
	r, g, b, _ := after.At(1, 1).RGBA()
	assert.Equal(t, uint32(223), r>>8)
	assert.Equal(t, uint32(223), g>>8)
	assert.Equal(t, uint32(223), b>>8)

	// Dark background untouched.
	r, g, b, _ = after.At(6, 6).RGBA()
	assert.Equal(t, uint32(30), r>>8)
	assert.Equal(t, uint32(30), g>>8)
	assert.Equal(t, uint32(30), b>>8)
}

func TestLocalEnhance_UndecodableFallsBackToPassThrough(t *testing.T) {
	e := &LocalEnhancer{Logger: zap.NewNop()}
	photo := []byte("definitely not an image")

	pair, err := e.Enhance(context.Background(), photo, "image/jpeg", Options{})
	require.NoError(t, err)

	want := DataURI(photo, "image/jpeg")
	assert.Equal(t, want, pair.Before)
	assert.Equal(t, want, pair.After)
}

func TestLocalEnhance_EmptyPhoto(t *testing.T) {
	e := &LocalEnhancer{Logger: zap.NewNop()}

	_, err := e.Enhance(context.Background(), nil, "image/png", Options{})
	ve, ok := models.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "photo", ve.Field)
}

func TestDataURI_DefaultsMIME(t *testing.T) {
	uri := DataURI([]byte{0x01}, "")
	assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
}

type failingEnhancer struct{}

func (failingEnhancer) Enhance(ctx context.Context, photo []byte, mimeType string, opts Options) (*models.ImagePair, error) {
	return nil, errors.New("remote unavailable")
}

func TestService_FallsBackWhenRemoteFails(t *testing.T) {
	svc := NewService(failingEnhancer{}, zap.NewNop())

	pair, err := svc.Enhance(context.Background(), testPhoto(t), "image/png", Options{})
	require.NoError(t, err)
	assert.True(t, pair.HasBoth())
}

func TestService_NoRemoteUsesLocal(t *testing.T) {
	svc := NewService(nil, zap.NewNop())

	pair, err := svc.Enhance(context.Background(), testPhoto(t), "image/png", Options{})
	require.NoError(t, err)
	assert.True(t, pair.HasBoth())
}
