package module

import "paporium/internal/modkit/swaggerkit"

// filterParams are the query keys every catalog read accepts
var filterParams = []string{"item", "recipe", "itemTypes", "jobs", "recipeTypes", "recipeItemTypes", "repeatable", "overcharge", "pricing", "page"}

func queryParams() []any {
	out := make([]any, 0, len(filterParams))
	for _, p := range filterParams {
		out = append(out, map[string]any{"name": p, "in": "query", "required": false, "schema": map[string]any{"type": "string"}})
	}
	return out
}

func idParam(what string) map[string]any {
	return map[string]any{
		"name": "id", "in": "path", "required": true,
		"description": what + " id",
		"schema":      map[string]any{"type": "integer", "format": "int64"},
	}
}

func op(summary string, params []any) map[string]any {
	return map[string]any{
		"tags":       []any{"Catalog"},
		"summary":    summary,
		"parameters": params,
		"responses":  map[string]any{"200": map[string]any{"description": "ok"}},
	}
}

// docPaths adds catalog operations missing from the generated doc
func docPaths(spec map[string]any) {
	paths := swaggerkit.Section(spec, "paths")
	add := func(path, method string, o map[string]any) {
		node := swaggerkit.Section(paths, path)
		if _, ok := node[method]; !ok {
			node[method] = o
		}
	}
	add("/catalog/filter", "get", op("Effective filter with names", queryParams()))
	events := op("Apply filter panel events", queryParams())
	events["requestBody"] = map[string]any{
		"required": true,
		"content":  map[string]any{"application/json": map[string]any{"schema": map[string]any{"type": "object"}}},
	}
	add("/catalog/filter/events", "post", events)
	add("/catalog/items", "get", op("Item list", queryParams()))
	add("/catalog/items/{id}", "get", op("Item detail", append([]any{idParam("item")}, queryParams()...)))
	add("/catalog/recipes", "get", op("Recipe list", queryParams()))
	add("/catalog/recipes/{id}", "get", op("Recipe detail", []any{idParam("recipe")}))
}
