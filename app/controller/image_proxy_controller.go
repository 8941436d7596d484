package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/yansassi/hecho-adm-sub001/models"
	"github.com/yansassi/hecho-adm-sub001/service"
)

// ImageFetcher returns a remote image as a data URI
type ImageFetcher interface {
	Fetch(ctx context.Context, imageURL string) (string, error)
}

// ImageProxyController handles HTTP requests for the image proxy
type ImageProxyController struct {
	fetcher ImageFetcher
	log     *zap.SugaredLogger
}

// NewImageProxyController creates a new ImageProxyController
func NewImageProxyController(fetcher ImageFetcher, log *zap.Logger) *ImageProxyController {
	if log == nil {
		log = zap.NewNop()
	}
	return &ImageProxyController{fetcher: fetcher, log: log.Sugar()}
}

// ProxyImage handles POST /admin/image-proxy
func (c *ImageProxyController) ProxyImage(w http.ResponseWriter, r *http.Request) {
	var req models.ImageProxyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ImageProxyResponse{Error: "invalid request body"})
		return
	}

	uri, err := c.fetcher.Fetch(r.Context(), req.ImageURL)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, models.ImageProxyResponse{Data: &uri})
	case errors.Is(err, service.ErrInvalidImageURL):
		c.log.Warnf("❌ ProxyImage: %v", err)
		writeJSON(w, http.StatusBadRequest, models.ImageProxyResponse{Error: err.Error()})
	default:
		c.log.Warnf("⚠️  ProxyImage: Failed to fetch %s: %v", req.ImageURL, err)
		writeJSON(w, http.StatusBadGateway, models.ImageProxyResponse{Error: "image unavailable"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
