package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yansassi/hecho-adm-sub001/models"
	"github.com/yansassi/hecho-adm-sub001/pdf"
)

const maxRequestBody = 1 << 20

// CatalogGenerator produces a catalog PDF for a request
type CatalogGenerator interface {
	GenerateCatalog(ctx context.Context, req models.GenerateCatalogRequest, w io.Writer) (*pdf.Result, error)
}

// CatalogController handles HTTP requests for catalog generation
type CatalogController struct {
	generator CatalogGenerator
	validate  *validator.Validate
	group     singleflight.Group
	timeout   time.Duration
	log       *zap.SugaredLogger
}

// NewCatalogController creates a new CatalogController.
// timeout bounds one generation run independently of the requesting client.
func NewCatalogController(generator CatalogGenerator, timeout time.Duration, log *zap.Logger) *CatalogController {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogController{
		generator: generator,
		validate:  validator.New(),
		timeout:   timeout,
		log:       log.Sugar(),
	}
}

type generatedCatalog struct {
	data   []byte
	result *pdf.Result
}

// GenerateCatalogPDF handles POST /admin/catalog/pdf
func (c *CatalogController) GenerateCatalogPDF(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)
	log := c.log.With("requestId", requestID)

	var req models.GenerateCatalogRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		log.Warnf("❌ GenerateCatalogPDF: Invalid request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		log.Warnf("❌ GenerateCatalogPDF: Validation failed: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	start := time.Now()
	key := generationKey(req)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		// shared by every caller with this key; outlives the first caller's connection
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), c.timeout)
		defer cancel()

		var buf bytes.Buffer
		result, err := c.generator.GenerateCatalog(ctx, req, &buf)
		if err != nil {
			return nil, err
		}
		return &generatedCatalog{data: buf.Bytes(), result: result}, nil
	})

	var res singleflight.Result
	select {
	case <-r.Context().Done():
		log.Warnf("⚠️  GenerateCatalogPDF: Client went away: %v", r.Context().Err())
		return
	case res = <-ch:
	}

	if res.Err != nil {
		if errors.Is(res.Err, pdf.ErrNoProducts) {
			log.Warnf("⚠️  GenerateCatalogPDF: No products for request")
			http.Error(w, "No active products found for the selected filters", http.StatusNotFound)
			return
		}
		log.Errorf("❌ GenerateCatalogPDF: Error generating catalog: %v", res.Err)
		http.Error(w, "Failed to generate catalog", http.StatusInternalServerError)
		return
	}

	catalog := res.Val.(*generatedCatalog)
	log.Infof("✓ GenerateCatalogPDF: %s ready in %s (%d pages, %d bytes, shared=%t)",
		catalog.result.FileName, time.Since(start).Round(time.Millisecond), len(catalog.result.Pages), len(catalog.data), res.Shared)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": catalog.result.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(catalog.data)))
	w.Header().Set("X-Catalog-Pages", strconv.Itoa(len(catalog.result.Pages)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(catalog.data); err != nil {
		log.Errorf("❌ GenerateCatalogPDF: Error writing PDF response: %v", err)
	}
}

// generationKey identifies requests that produce the same document
func generationKey(req models.GenerateCatalogRequest) string {
	req.CategoryIDs = slices.Clone(req.CategoryIDs)
	req.ProductIDs = slices.Clone(req.ProductIDs)
	slices.Sort(req.CategoryIDs)
	slices.Sort(req.ProductIDs)
	if req.PriceType == "" {
		req.PriceType = models.PriceTierRetail
	}
	key, _ := json.Marshal(req)
	return string(key)
}
