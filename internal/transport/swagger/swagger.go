package swagger

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	httpSwagger "github.com/swaggo/http-swagger"
)

const SpecRoute = "/openapi.yml"

// Spec is the OpenAPI document served to the Swagger UI. It is validated once
// at startup so a broken document fails the boot instead of the browser.
type Spec struct {
	raw []byte
	doc *openapi3.T
}

func Load(ctx context.Context, path string) (*Spec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read openapi document: %w", err)
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("parse openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	return &Spec{raw: raw, doc: doc}, nil
}

// Paths lists the documented paths in sorted order.
func (s *Spec) Paths() []string {
	out := make([]string, 0, s.doc.Paths.Len())
	for p := range s.doc.Paths.Map() {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Operation reports whether method is documented for path.
func (s *Spec) Operation(path, method string) bool {
	item := s.doc.Paths.Value(path)
	return item != nil && item.GetOperation(method) != nil
}

func (s *Spec) Version() string {
	if s.doc.Info == nil {
		return ""
	}
	return s.doc.Info.Version
}

func (s *Spec) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.raw)
}

func Handler() http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL(SpecRoute),
	)
}
