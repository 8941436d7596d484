package service

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/yansassi/hecho-adm-sub001/models"
)

// ImageSize selects the optimisation preset
type ImageSize string

const (
	SizeThumb  ImageSize = "thumb"
	SizeMedium ImageSize = "medium"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800

	placeholderSide = 400
)

var errEmptyImage = errors.New("empty image data")

var (
	placeholderOnce    sync.Once
	placeholderPayload models.ImagePayload
)

// OptimizeImage decodes imageData (PNG, JPEG, GIF), flattens transparency on
// white, resizes it to the preset's max dimension and re-encodes it as JPEG
func OptimizeImage(imageData []byte, size ImageSize) ([]byte, error) {
	img, err := decodeFlat(imageData)
	if err != nil {
		return nil, err
	}

	maxDim, quality := maxSizeMedium, qualityMedium
	if size == SizeThumb {
		maxDim, quality = maxSizeThumb, qualityThumb
	}

	b := img.Bounds()
	if b.Dx() > maxDim || b.Dy() > maxDim {
		// Fit keeps the aspect ratio
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// NormalizeForPDF turns any decodable image into a JPEG payload the PDF canvas can embed
func NormalizeForPDF(imageData []byte) (models.ImagePayload, error) {
	img, err := decodeFlat(imageData)
	if err != nil {
		return models.ImagePayload{}, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(qualityMedium)); err != nil {
		return models.ImagePayload{}, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	b := img.Bounds()
	return models.ImagePayload{Data: buf.Bytes(), Type: "JPG", Width: b.Dx(), Height: b.Dy()}, nil
}

// decodeFlat decodes an image honouring EXIF orientation and drops its alpha channel
func decodeFlat(imageData []byte) (image.Image, error) {
	if len(imageData) == 0 {
		return nil, errEmptyImage
	}
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, errEmptyImage
	}
	background := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(background, img, image.Pt(0, 0), 1.0), nil
}

// Placeholder returns the built-in image drawn when a product image is unavailable
func Placeholder() models.ImagePayload {
	placeholderOnce.Do(func() {
		canvas := imaging.New(placeholderSide, placeholderSide, color.NRGBA{R: 241, G: 245, B: 249, A: 255})
		frame := imaging.New(placeholderSide/2, placeholderSide/2, color.NRGBA{R: 203, G: 213, B: 225, A: 255})
		inner := imaging.New(placeholderSide/2-16, placeholderSide/2-16, color.NRGBA{R: 241, G: 245, B: 249, A: 255})
		frame = imaging.PasteCenter(frame, inner)
		canvas = imaging.PasteCenter(canvas, frame)

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, canvas, imaging.JPEG, imaging.JPEGQuality(qualityMedium)); err != nil {
			panic(fmt.Sprintf("encode placeholder: %v", err))
		}
		placeholderPayload = models.ImagePayload{
			Data:        buf.Bytes(),
			Type:        "JPG",
			Width:       placeholderSide,
			Height:      placeholderSide,
			Placeholder: true,
		}
	})
	return placeholderPayload
}

// DataURI encodes image bytes as a data: URI
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI accepts a base64 data: URI or bare base64 and returns the bytes
func DecodeDataURI(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		comma := strings.IndexByte(s, ',')
		if comma < 0 {
			return nil, errors.New("malformed data URI")
		}
		if !strings.HasSuffix(s[:comma], ";base64") {
			return nil, errors.New("data URI is not base64 encoded")
		}
		s = s[comma+1:]
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image: %w", err)
	}
	return data, nil
}
