package contracts

import (
	"encoding/json"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/schemas"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Registry - скомпилированные схемы событий по ключу "<EventName>/<version>".
type Registry struct {
	schemas map[string]*jsonschema.Schema
}

// NewRegistry компилирует все *.json под root. Ожидаемая раскладка: root/<event-name>/v<N>.json.
func NewRegistry(fsys fs.FS, root string) (*Registry, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string

	// Сначала все схемы добавляются как ресурсы, чтобы работали $ref между ними.
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".json") {
			return nil
		}
		file, err := fsys.Open(p)
		if err != nil {
			return fmt.Errorf("failed to open schema %s: %w", p, err)
		}
		defer file.Close()

		if err := compiler.AddResource(p, file); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", p, err)
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking schema resources: %w", err)
	}

	r := &Registry{schemas: make(map[string]*jsonschema.Schema, len(paths))}
	for _, p := range paths {
		key := generateKeyFromPath(root, p)
		if key == "" {
			return nil, fmt.Errorf("schema path %s does not follow <event-name>/v<N>.json layout", p)
		}
		schema, err := compiler.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("could not compile schema %s: %w", p, err)
		}
		r.schemas[key] = schema
	}

	return r, nil
}

// generateKeyFromPath: "events/favorite-added/v1.json" -> "FavoriteAddedEvent/1.0.0".
func generateKeyFromPath(root, p string) string {
	rel := strings.TrimPrefix(p, strings.TrimSuffix(root, "/")+"/")
	rel = strings.TrimSuffix(rel, path.Ext(rel))

	parts := strings.Split(rel, "/")
	if len(parts) != 2 || !strings.HasPrefix(parts[1], "v") || len(parts[1]) < 2 {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, word := range strings.Split(parts[0], "-") {
		name.WriteString(caser.String(word))
	}
	name.WriteString("Event")

	return fmt.Sprintf("%s/%s.0.0", name.String(), strings.TrimPrefix(parts[1], "v"))
}

// Keys - зарегистрированные ключи в отсортированном виде.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.schemas))
	for k := range r.schemas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate проверяет тело сообщения по схеме события.
func (r *Registry) Validate(eventType, eventVersion string, body []byte) error {
	key := fmt.Sprintf("%s/%s", eventType, eventVersion)
	schema, ok := r.schemas[key]
	if !ok {
		return fmt.Errorf("schema for event '%s' version '%s' not found", eventType, eventVersion)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("message body is not a valid JSON: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

var defaultRegistry = sync.OnceValues(func() (*Registry, error) {
	return NewRegistry(schemas.SchemasFS, "events")
})

// DefaultRegistry - схемы, встроенные в бинарник.
func DefaultRegistry() (*Registry, error) {
	return defaultRegistry()
}

// ValidateEvent проверяет сообщение по встроенным схемам.
func ValidateEvent(eventType, eventVersion string, body []byte) error {
	r, err := defaultRegistry()
	if err != nil {
		return err
	}
	return r.Validate(eventType, eventVersion, body)
}
