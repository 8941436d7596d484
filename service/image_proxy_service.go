package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrInvalidImageURL  = errors.New("invalid image url")
	ErrImageUnavailable = errors.New("image unavailable")
)

// ImageProxyService downloads remote product images and returns them as
// optimised JPEG data URIs
type ImageProxyService struct {
	cache  ImageCache
	drive  DriveServiceInterface
	client *http.Client
	log    *zap.SugaredLogger
}

// NewImageProxyService creates the proxy. drive may be nil, in which case
// Drive links are fetched over plain HTTP.
func NewImageProxyService(cache ImageCache, drive DriveServiceInterface, client *http.Client, log *zap.Logger) *ImageProxyService {
	if cache == nil {
		cache = NoopCache{}
	}
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ImageProxyService{cache: cache, drive: drive, client: client, log: log.Sugar()}
}

// Fetch returns the image at imageURL as a data:image/jpeg URI
func (s *ImageProxyService) Fetch(ctx context.Context, imageURL string) (string, error) {
	imageURL = strings.TrimSpace(imageURL)
	if err := validateImageURL(imageURL); err != nil {
		return "", err
	}

	cached, ok, err := s.cache.Get(ctx, imageURL)
	if err != nil {
		s.log.Warnf("⚠️  Image cache read failed for %s: %v", imageURL, err)
	}
	if ok {
		s.log.Debugf("📦 Serving cached image: %s", imageURL)
		return DataURI("image/jpeg", cached), nil
	}

	raw, err := s.download(ctx, imageURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageUnavailable, err)
	}

	optimized, err := OptimizeImage(raw, SizeMedium)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageUnavailable, err)
	}

	if err := s.cache.Set(ctx, imageURL, optimized); err != nil {
		s.log.Warnf("⚠️  Image cache write failed for %s: %v", imageURL, err)
	} else {
		s.log.Debugf("✓ Image cached: %s", imageURL)
	}
	return DataURI("image/jpeg", optimized), nil
}

func validateImageURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: empty", ErrInvalidImageURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImageURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidImageURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidImageURL)
	}
	return nil
}

func (s *ImageProxyService) download(ctx context.Context, imageURL string) ([]byte, error) {
	if s.drive != nil {
		if fileID, ok := FileIDFromURL(imageURL); ok {
			return s.drive.DownloadImage(ctx, fileID)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image host returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}
	return data, nil
}
