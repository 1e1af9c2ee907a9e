// Package export projects a runtime [schema.Catalog] into a JSON Schema
// Draft 2020-12 document describing the descriptor file format (spec.md
// §6), and updates an editor config file's yaml.schemas association so a
// descriptor file gets live validation against the exported schema.
package export
