package service

import (
	"context"
	"encoding/json"
	"image/color"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yansassi/hecho-adm-sub001/models"
)

func proxyStub(t *testing.T, handler func(req models.ImageProxyRequest) (int, string)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.ImageProxyRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		status, body := handler(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestImageResolverFetch(t *testing.T) {
	uri := DataURI("image/png", encodePNG(t, 30, 20, color.NRGBA{G: 200, A: 255}))
	srv := proxyStub(t, func(req models.ImageProxyRequest) (int, string) {
		assert.Equal(t, "https://cdn.example.com/p.png", req.ImageURL)
		return http.StatusOK, `{"data":"` + uri + `"}`
	})

	resolver := NewImageResolver(srv.URL, time.Second, srv.Client(), nil)
	img, err := resolver.Fetch(context.Background(), "https://cdn.example.com/p.png")
	require.NoError(t, err)
	assert.Equal(t, "JPG", img.Type)
	assert.Equal(t, 30, img.Width)
	assert.Equal(t, 20, img.Height)
	assert.False(t, img.Placeholder)
}

func TestImageResolverAcceptsBareBase64(t *testing.T) {
	uri := DataURI("image/png", encodePNG(t, 8, 8, color.White))
	bare := uri[len("data:image/png;base64,"):]
	srv := proxyStub(t, func(models.ImageProxyRequest) (int, string) {
		return http.StatusOK, `{"data":"` + bare + `"}`
	})

	img := NewImageResolver(srv.URL, time.Second, srv.Client(), nil).Resolve(context.Background(), "https://cdn.example.com/p.png")
	assert.False(t, img.Placeholder)
	assert.Equal(t, 8, img.Width)
}

func TestImageResolverFallsBackToPlaceholder(t *testing.T) {
	cases := map[string]func(models.ImageProxyRequest) (int, string){
		"server error":   func(models.ImageProxyRequest) (int, string) { return http.StatusBadGateway, `{"data":null,"error":"boom"}` },
		"null data":      func(models.ImageProxyRequest) (int, string) { return http.StatusOK, `{"data":null}` },
		"malformed json": func(models.ImageProxyRequest) (int, string) { return http.StatusOK, `{"data":` },
		"not an image":   func(models.ImageProxyRequest) (int, string) { return http.StatusOK, `{"data":"data:image/png;base64,aGVsbG8="}` },
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := proxyStub(t, handler)
			resolver := NewImageResolver(srv.URL, time.Second, srv.Client(), nil)

			_, err := resolver.Fetch(context.Background(), "https://cdn.example.com/p.png")
			assert.Error(t, err)

			img := resolver.Resolve(context.Background(), "https://cdn.example.com/p.png")
			assert.True(t, img.Placeholder)
			assert.Equal(t, Placeholder().Data, img.Data)
		})
	}
}

func TestImageResolverUnreachableProxy(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	resolver := NewImageResolver(endpoint, 200*time.Millisecond, nil, nil)
	img := resolver.Resolve(context.Background(), "https://cdn.example.com/p.png")
	assert.True(t, img.Placeholder)

	assert.True(t, resolver.Resolve(context.Background(), "").Placeholder)
}

func TestImageResolverTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	resolver := NewImageResolver(srv.URL, 50*time.Millisecond, srv.Client(), nil)
	start := time.Now()
	img := resolver.Resolve(context.Background(), "https://cdn.example.com/slow.png")
	assert.True(t, img.Placeholder)
	assert.Less(t, time.Since(start), 5*time.Second)
}
