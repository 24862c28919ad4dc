package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/swaggo/swag/v2"
)

// InstanceName is the swag registry name of the api doc
const InstanceName = "api"

// SpecMutator lets modules tweak the parsed spec before it is served
type SpecMutator func(map[string]any)

var (
	mu       sync.RWMutex
	mutators []SpecMutator
	regOnce  sync.Once
)

// baseDoc is the skeleton every module contributes paths to
type baseDoc struct{}

func (baseDoc) ReadDoc() string {
	return `{"openapi":"3.0.3","info":{"title":"Paporium API","description":"Read-only item and recipe catalog","version":"1.0"},"paths":{}}`
}

// ensureRegistered registers the skeleton unless generated docs already claimed the name
func ensureRegistered() {
	regOnce.Do(func() {
		if _, err := swag.ReadDoc(InstanceName); err != nil {
			swag.Register(InstanceName, baseDoc{})
		}
	})
}

// docReader is a seam so tests can inject invalid JSON
var docReader = func() (string, error) {
	ensureRegistered()
	return swag.ReadDoc(InstanceName)
}

// Register adds a spec mutator; modules call it when they mount with swagger on
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mu.Lock()
	mutators = append(mutators, m)
	mu.Unlock()
}

// Spec renders the current doc with every mutator applied
func Spec() (map[string]any, error) {
	raw, err := docReader()
	if err != nil {
		return nil, err
	}
	var spec map[string]any
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return nil, err
	}

	ensureServers(spec, "/api/v1")
	ensureErrorResponseDefinition(spec)

	mu.RLock()
	for _, m := range mutators {
		m(spec)
	}
	mu.RUnlock()

	addDefaultResponse(spec, "500", "Internal Server Error", 500, "internal", "panic recovered")
	addDefaultResponse(spec, "503", "Service Unavailable", 503, "unavailable", "dataset loading")
	return spec, nil
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spec, err := Spec()
		if err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureServers makes sure the spec is OAS 3.0 and has a servers array
// the bundled swagger ui can't render 3.1 so it is downgraded
func ensureServers(spec map[string]any, url string) {
	if _, hasSwagger := spec["swagger"]; hasSwagger {
		spec["openapi"] = "3.0.3"
		delete(spec, "swagger")
	}
	if v, ok := spec["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// Section returns spec[key] as a map, creating it when missing
func Section(spec map[string]any, keys ...string) map[string]any {
	cur := spec
	for _, k := range keys {
		next, ok := cur[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[k] = next
		}
		cur = next
	}
	return cur
}

// ensureErrorResponseDefinition adds the error envelope model if missing
// kept minimal so it does not drift from the runtime wire
func ensureErrorResponseDefinition(spec map[string]any) {
	schemas := Section(spec, "components", "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "string"},
			"error":       map[string]any{"type": "string"},
			"field":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

// addDefaultResponse walks every operation and injects an error response if absent
func addDefaultResponse(spec map[string]any, status, text string, statusCode int, code, msg string) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	resp := map[string]any{
		"description": text,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": statusCode,
					"status":      text,
					"code":        code,
					"error":       msg,
					"request_id":  "579f33bf50b1/abc-000001",
				},
			},
		},
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses := Section(op, "responses")
			if _, exists := responses[status]; !exists {
				responses[status] = resp
			}
		}
	}
}
