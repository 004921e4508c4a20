package writepipeline

import (
	"strings"
	"time"

	"github.com/Enielezi/FlexSearch/field"
	"github.com/Enielezi/FlexSearch/internal/engine"
)

// reservedFields are never user-definable (§3, §6).
const (
	fieldID           = "id"
	fieldType         = "type"
	fieldLastModified = "lastmodified"
	fieldVersion      = "version"
)

// template is one worker's cached state for one index: a case-insensitive
// map from field name to mutable cell, reused across every command that
// worker handles for that index (§4.5, §9 — thread-local, never shared
// cross-worker). build assembles a new engine.Document from the cells on
// each call.
type template struct {
	runtime IndexRuntime
	cells   map[string]*field.Cell // lower-cased field name -> cell
	names   map[string]string      // lower-cased -> declared-case field name
}

func newTemplate(rt IndexRuntime) *template {
	t := &template{
		runtime: rt,
		cells:   make(map[string]*field.Cell),
		names:   make(map[string]string),
	}
	for name, desc := range rt.Fields() {
		lower := strings.ToLower(name)
		t.cells[lower] = field.CreateCell(desc)
		t.names[lower] = name
	}
	return t
}

// build populates the template's cells from input and produces an
// engine.Document ready to push to a shard. id/version/lastmodified are
// reserved cells written directly, never through a field descriptor
// (§4.5 step 1).
func (t *template) build(rt IndexRuntime, id string, version int, input map[string]string) *engine.Document {
	lowerInput := make(map[string]string, len(input))
	for k, v := range input {
		lowerInput[strings.ToLower(k)] = v
	}

	doc := &engine.Document{ID: id}
	doc.Add(engine.FieldValue{Name: fieldID, Kind: field.ExactText, String: id, Indexed: true, Stored: true})
	doc.Add(engine.FieldValue{Name: fieldType, Kind: field.ExactText, String: rt.Name(), Indexed: true, Stored: true})
	doc.Add(engine.FieldValue{Name: fieldLastModified, Kind: field.Long, Int: time.Now().UnixMilli(), Indexed: true, Stored: true})
	doc.Add(engine.FieldValue{Name: fieldVersion, Kind: field.Int, Int: int64(version), Indexed: false, Stored: true})

	for lower, desc := range namesToDescriptors(rt) {
		cell := t.cells[lower]
		if desc.ValueSource != nil {
			computed, err := desc.ValueSource(input)
			if err != nil {
				field.WriteDefault(desc, cell)
			} else {
				field.WriteCell(desc, cell, computed)
			}
		} else if v, ok := lowerInput[lower]; ok {
			field.WriteCell(desc, cell, v)
		} else {
			field.WriteDefault(desc, cell)
		}

		doc.Add(cellToFieldValue(desc, cell))
	}
	return doc
}

func namesToDescriptors(rt IndexRuntime) map[string]*field.Descriptor {
	out := make(map[string]*field.Descriptor)
	for name, desc := range rt.Fields() {
		out[strings.ToLower(name)] = desc
	}
	return out
}

func cellToFieldValue(desc *field.Descriptor, cell *field.Cell) engine.FieldValue {
	indexed := desc.Kind != field.Stored && !desc.StoredOnly
	return engine.FieldValue{
		Name:    desc.Name,
		Kind:    desc.Kind,
		String:  cell.StringVal,
		Int:     cell.IntVal,
		Float:   cell.FloatVal,
		Bool:    cell.BoolVal,
		Indexed: indexed,
		Stored:  true,
	}
}
