package structured

import (
	"encoding/json"
	"fmt"

	"github.com/nao1215/mseo/internal/model"
)

const (
	// ScriptType is the MIME type of the JSON-LD script element.
	ScriptType = "application/ld+json"

	scriptOpen  = `<script type="` + ScriptType + `">`
	scriptClose = `</script>`
)

// Builder accumulates JSON-LD records in insertion order.
// A Builder is not safe for concurrent mutation.
type Builder struct {
	schemas []*model.Schema
}

// New creates an empty Builder.
func New() *Builder {
	return &Builder{}
}

// AddSchema validates and stores a clone of s.
// A missing or empty @type is rejected with a *model.ValidationError.
func (b *Builder) AddSchema(s *model.Schema) (*Builder, error) {
	typ, ok := s.Get(model.TypeKey)
	if !ok || isEmpty(typ) {
		return b, &model.ValidationError{Field: model.TypeKey, Reason: "schema must have a non-empty @type"}
	}

	stored := s.Clone()
	if ctx, ok := stored.Get(model.ContextKey); !ok || isEmpty(ctx) {
		stored.Set(model.ContextKey, model.DefaultContext)
	}

	b.schemas = append(b.schemas, stored)
	return b, nil
}

// RenderScript returns the stored records as a pretty printed JSON-LD
// script element: a single object when one record is stored, an array
// otherwise. It returns an empty string when nothing is stored.
func (b *Builder) RenderScript() (string, error) {
	payload, err := b.MarshalIndent()
	if err != nil || payload == nil {
		return "", err
	}
	return scriptOpen + "\n" + string(payload) + "\n" + scriptClose, nil
}

// MarshalIndent returns the JSON-LD payload without the script wrapper,
// or nil when nothing is stored.
func (b *Builder) MarshalIndent() ([]byte, error) {
	var v any
	switch len(b.schemas) {
	case 0:
		return nil, nil
	case 1:
		v = b.schemas[0]
	default:
		v = b.schemas
	}

	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode structured data: %w", err)
	}
	return payload, nil
}

// Schemas returns clones of the stored records in insertion order.
func (b *Builder) Schemas() []*model.Schema {
	out := make([]*model.Schema, len(b.schemas))
	for i, s := range b.schemas {
		out[i] = s.Clone()
	}
	return out
}

// Clear removes all records.
func (b *Builder) Clear() *Builder {
	b.schemas = nil
	return b
}

// SchemaCount returns the number of stored records.
func (b *Builder) SchemaCount() int {
	return len(b.schemas)
}

// isEmpty treats nil and "" as absent.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
