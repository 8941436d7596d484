package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/yansassi/hecho-adm-sub001/models"
	"github.com/yansassi/hecho-adm-sub001/pdf"
)

// ImageResolver fetches product images through the image proxy endpoint
type ImageResolver struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
	log      *zap.SugaredLogger
}

var _ pdf.ImageSource = (*ImageResolver)(nil)

// NewImageResolver creates a resolver posting to endpoint. Each fetch is bounded by timeout.
func NewImageResolver(endpoint string, timeout time.Duration, client *http.Client, log *zap.Logger) *ImageResolver {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ImageResolver{endpoint: endpoint, timeout: timeout, client: client, log: log.Sugar()}
}

// Resolve returns the image at url, or the placeholder when it cannot be fetched
func (r *ImageResolver) Resolve(ctx context.Context, url string) models.ImagePayload {
	img, err := r.Fetch(ctx, url)
	if err != nil {
		r.log.Warnf("⚠️  Using placeholder for image %q: %v", url, err)
		return Placeholder()
	}
	return img
}

// Fetch returns the image at url normalised for the PDF canvas
func (r *ImageResolver) Fetch(ctx context.Context, url string) (models.ImagePayload, error) {
	if url == "" {
		return models.ImagePayload{}, errors.New("empty image url")
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	body, err := json.Marshal(models.ImageProxyRequest{ImageURL: url})
	if err != nil {
		return models.ImagePayload{}, fmt.Errorf("failed to encode proxy request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return models.ImagePayload{}, fmt.Errorf("failed to build proxy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return models.ImagePayload{}, fmt.Errorf("image proxy request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.ImagePayload{}, fmt.Errorf("image proxy returned status %d", resp.StatusCode)
	}

	var out models.ImageProxyResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4*maxImageBytes)).Decode(&out); err != nil {
		return models.ImagePayload{}, fmt.Errorf("failed to decode proxy response: %w", err)
	}
	if out.Data == nil || *out.Data == "" {
		return models.ImagePayload{}, errors.New("image proxy returned no data")
	}

	raw, err := DecodeDataURI(*out.Data)
	if err != nil {
		return models.ImagePayload{}, err
	}
	return NormalizeForPDF(raw)
}
