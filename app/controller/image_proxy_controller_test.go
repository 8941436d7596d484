package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yansassi/hecho-adm-sub001/models"
	"github.com/yansassi/hecho-adm-sub001/service"
)

type stubFetcher struct {
	uri string
	err error
}

func (s stubFetcher) Fetch(context.Context, string) (string, error) {
	return s.uri, s.err
}

func proxy(t *testing.T, fetcher ImageFetcher, body string) (int, models.ImageProxyResponse, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/image-proxy", strings.NewReader(body))
	NewImageProxyController(fetcher, nil).ProxyImage(rec, req)

	var out models.ImageProxyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec.Code, out, rec.Body.String()
}

func TestProxyImage(t *testing.T) {
	code, out, _ := proxy(t, stubFetcher{uri: "data:image/jpeg;base64,AAAA"}, `{"imageUrl":"https://cdn.example.com/a.png"}`)
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, out.Data)
	assert.Equal(t, "data:image/jpeg;base64,AAAA", *out.Data)
}

func TestProxyImageFailures(t *testing.T) {
	code, out, raw := proxy(t, stubFetcher{err: fmt.Errorf("%w: upstream 404", service.ErrImageUnavailable)}, `{"imageUrl":"https://cdn.example.com/a.png"}`)
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Nil(t, out.Data)
	assert.Contains(t, raw, `"data":null`)

	code, out, _ = proxy(t, stubFetcher{err: fmt.Errorf("%w: empty", service.ErrInvalidImageURL)}, `{"imageUrl":""}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Nil(t, out.Data)
	assert.NotEmpty(t, out.Error)

	code, _, _ = proxy(t, stubFetcher{}, `not json`)
	assert.Equal(t, http.StatusBadRequest, code)
}
