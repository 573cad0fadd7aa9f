package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/swaggo/swag"

	"github.com/yourusername/open-stdnum-gateway/pkg/config"
)

// The OpenAPI document is maintained by hand, so every REST route must be
// described there with the same method.
func TestSwaggerDocCoversAPIRoutes(t *testing.T) {
	raw, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}
	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("doc is not valid JSON: %v", err)
	}
	if doc.BasePath != "/api" {
		t.Errorf("basePath = %q, want /api", doc.BasePath)
	}

	r := newTestRouter(t, config.Default())
	found := 0
	for _, route := range r.Routes() {
		if !strings.HasPrefix(route.Path, "/api/") {
			continue
		}
		found++
		path := strings.TrimPrefix(route.Path, "/api")
		path = strings.ReplaceAll(path, ":kind", "{kind}")
		ops, ok := doc.Paths[path]
		if !ok {
			t.Errorf("route %s %s missing from the OpenAPI document", route.Method, route.Path)
			continue
		}
		if _, ok := ops[strings.ToLower(route.Method)]; !ok {
			t.Errorf("route %s %s documented without a %s operation", route.Method, route.Path, route.Method)
		}
	}
	if found == 0 {
		t.Fatal("no /api routes registered")
	}
	if len(doc.Paths) != found {
		t.Errorf("document describes %d paths, router serves %d", len(doc.Paths), found)
	}
}
