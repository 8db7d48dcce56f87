package swagger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/knadh/koanf/parsers/yaml"

	"github.com/puimuri/trainer/pkg/logger"
)

// ErrServe is returned when the embedded document cannot be served.
var ErrServe = errors.New("api docs serve failed")

const (
	routeDocs     = "GET /api-docs"
	routeSpecYAML = "GET /openapi.yaml"
	routeSpecJSON = "GET /openapi.json"
)

// Register attaches the API docs and the OpenAPI spec routes to mux.
// Routes:
//
//	GET /api-docs     -> ReDoc HTML
//	GET /openapi.yaml -> embedded OpenAPI spec
//	GET /openapi.json -> the same spec as JSON
func Register(ctx context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc(routeDocs, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexHTML))
	})

	mux.HandleFunc(routeSpecYAML, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	})

	spec, err := SpecJSON()
	if err != nil {
		logger.Named("swagger").Warn(ctx, "openapi.json disabled", logger.Error(err))
		return
	}
	mux.HandleFunc(routeSpecJSON, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(spec)
	})
}

// SpecJSON converts the embedded YAML document to JSON.
func SpecJSON() ([]byte, error) {
	doc, err := yaml.Parser().Unmarshal(OpenAPI)
	if err != nil {
		return nil, fmt.Errorf("%w: parse openapi.yaml: %w", ErrServe, err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: encode openapi.json: %w", ErrServe, err)
	}
	return out, nil
}

// indexHTML loads ReDoc from its CDN and renders /openapi.yaml.
const indexHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>PUImURI trainer API</title>
    <style>body{margin:0;padding:0}</style>
  </head>
  <body>
    <redoc id="redoc-container"></redoc>
    <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
    <script>Redoc.init('/openapi.yaml', { suppressWarnings: true }, document.getElementById('redoc-container'));</script>
  </body>
</html>`
