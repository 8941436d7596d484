package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/yansassi/hecho-adm-sub001/app/controller"
)

// catalogRateLimit caps catalog generations per client IP
const catalogRateLimit = 10

type Controllers struct {
	Catalog    *controller.CatalogController
	ImageProxy *controller.ImageProxyController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes builds the HTTP handler
func SetupRoutes(controllers *Controllers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Ping endpoint
	r.Get("/ping", pingHandler)

	r.Route("/admin", func(r chi.Router) {
		// Catalog PDF generation
		r.With(httprate.Limit(catalogRateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))).
			Post("/catalog/pdf", controllers.Catalog.GenerateCatalogPDF)

		// Image proxy used by the PDF generator
		r.Post("/image-proxy", controllers.ImageProxy.ProxyImage)
	})

	return r
}
