package descriptor

// Record is one entity projected out of a validated [Descriptor], ready for
// the apply engine.
type Record struct {
	EntityType     string
	EntityID       string
	Metadata       map[string]any
	Relationships  map[string][]string
	SystemMetadata map[string]any
}

// Extract projects d into an ordered list of [Record] values, one per
// entity. Entries of one entity type keep the order they have in
// d.Entity. When typeOrder is nil, entity types are visited in Go map
// iteration order, so the order across entity types varies from run to
// run and does not follow the descriptor; a non-nil typeOrder fixes that
// order, and entity types missing from it are skipped.
//
// Per spec §4.6: Metadata is every body key except the nested
// "relationships" section (legacy relationship-named keys written directly
// in the body are kept in Metadata, not stripped, for backward
// compatibility with descriptors predating the nested relationships map).
func Extract(d *Descriptor, typeOrder []string) []Record {
	order := typeOrder
	if order == nil {
		for t := range d.Entity {
			order = append(order, t)
		}
	}

	var records []Record

	for _, entityType := range order {
		for _, entry := range d.Entity[entityType] {
			records = append(records, extractOne(d.Namespace, entityType, entry))
		}
	}

	return records
}

func extractOne(namespace, entityType string, entry Entry) Record {
	metadata := make(map[string]any, len(entry.Body))

	for k, v := range entry.Body {
		if k == "relationships" {
			continue
		}

		metadata[k] = v
	}

	return Record{
		EntityType:    entityType,
		EntityID:      namespace + "/" + entry.Name,
		Metadata:      metadata,
		Relationships: entry.Relationships(),
		SystemMetadata: map[string]any{
			"namespace":   namespace,
			"source_name": entry.Name,
		},
	}
}
