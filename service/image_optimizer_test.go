package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestOptimizeImageResizes(t *testing.T) {
	out, err := OptimizeImage(encodePNG(t, 1600, 400, color.NRGBA{R: 10, G: 20, B: 30, A: 255}), SizeMedium)
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	thumb, err := OptimizeImage(encodePNG(t, 1600, 400, color.White), SizeThumb)
	require.NoError(t, err)
	img, err = imaging.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
}

func TestOptimizeImageRejectsGarbage(t *testing.T) {
	_, err := OptimizeImage([]byte("definitely not an image"), SizeMedium)
	assert.Error(t, err)

	_, err = OptimizeImage(nil, SizeMedium)
	assert.ErrorIs(t, err, errEmptyImage)
}

func TestNormalizeForPDFFlattensTransparency(t *testing.T) {
	payload, err := NormalizeForPDF(encodePNG(t, 20, 10, color.NRGBA{A: 0}))
	require.NoError(t, err)

	assert.Equal(t, "JPG", payload.Type)
	assert.Equal(t, 20, payload.Width)
	assert.Equal(t, 10, payload.Height)
	assert.False(t, payload.Placeholder)

	img, err := imaging.Decode(bytes.NewReader(payload.Data))
	require.NoError(t, err)
	r, g, b, _ := img.At(10, 5).RGBA()
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder()
	assert.True(t, p.Placeholder)
	assert.Equal(t, "JPG", p.Type)
	assert.Equal(t, placeholderSide, p.Width)
	assert.NotEmpty(t, p.Data)
	assert.Equal(t, p.Data, Placeholder().Data)
}

func TestDataURIRoundTrip(t *testing.T) {
	data := []byte{0xff, 0xd8, 0xff, 0x00, 0x10}

	got, err := DecodeDataURI(DataURI("image/jpeg", data))
	require.NoError(t, err)
	assert.Equal(t, data, got)

	got, err = DecodeDataURI("  /9j/ABA=  ")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	_, err = DecodeDataURI("data:image/png,rawbytes")
	assert.Error(t, err)
	_, err = DecodeDataURI("data:image/png;base64")
	assert.Error(t, err)
	_, err = DecodeDataURI("***")
	assert.Error(t, err)
}
