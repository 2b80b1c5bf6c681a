package openapi

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// Load parses the OpenAPI document at path and validates it.
func Load(ctx context.Context, path string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load openapi document %s: %w", path, err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document %s: %w", path, err)
	}
	return doc, nil
}

// Validate reports whether the document at path is a valid OpenAPI 3 document.
func Validate(ctx context.Context, path string) error {
	_, err := Load(ctx, path)
	return err
}

// Operations lists "METHOD path" for every documented operation.
func Operations(doc *openapi3.T) []string {
	var out []string
	for _, path := range doc.Paths.InMatchingOrder() {
		item := doc.Paths.Value(path)
		for method := range item.Operations() {
			out = append(out, method+" "+path)
		}
	}
	return out
}
