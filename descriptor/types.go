package descriptor

// Descriptor is the validated, typed shape of a descriptor document (spec
// §6). It is the "model" produced by Layer 3 of the validation pipeline.
type Descriptor struct {
	SchemaVersion string
	Namespace     string

	// Entity maps entity_type to the ordered list of single-key
	// {entity_name: entity_body} maps declared under it.
	Entity map[string][]Entry
}

// Entry is one `{entity_name: entity_body}` element of an entity_type's
// list.
type Entry struct {
	Name string
	Body map[string]any
}

// Relationships extracts the entry's nested `relationships` section
// (relationship_name -> target id list). Returns an empty, non-nil map if
// the section is absent, so callers can range over it unconditionally.
func (e Entry) Relationships() map[string][]string {
	out := map[string][]string{}

	raw, ok := e.Body["relationships"]
	if !ok {
		return out
	}

	rawMap, ok := raw.(map[string]any)
	if !ok {
		return out
	}

	for name, v := range rawMap {
		out[name] = toStringList(v)
	}

	return out
}

// LegacyDependsOn extracts the entry's top-level `depends_on` list, the
// pre-relationships-map form still accepted for backward compatibility.
func (e Entry) LegacyDependsOn() []string {
	raw, ok := e.Body["depends_on"]
	if !ok {
		return nil
	}

	return toStringList(raw)
}

func toStringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		if s, ok := v.([]string); ok {
			return s
		}

		return nil
	}

	out := make([]string, 0, len(list))

	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}

	return out
}
