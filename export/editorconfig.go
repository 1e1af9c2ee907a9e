package export

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// yamlSchemaAssociation is one entry VS Code's YAML extension (and
// compatible editors) reads from a `yaml.schemas` settings key: a schema
// file path mapped to the glob patterns it validates.
type yamlSchemaAssociation map[string][]string

// UpdateEditorConfig merges {schemaPath: globs} into settingsPath's
// yaml.schemas key, creating the file and the key if either is absent,
// and leaving every other setting untouched (spec.md §6: "schema export
// ... must update an editor config file").
func UpdateEditorConfig(settingsPath, schemaPath string, globs []string) error {
	settings := map[string]any{}

	if existing, err := os.ReadFile(settingsPath); err == nil {
		if err := yaml.Unmarshal(existing, &settings); err != nil {
			return fmt.Errorf("parse editor config %s: %w", settingsPath, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read editor config %s: %w", settingsPath, err)
	}

	raw, _ := settings["yaml.schemas"].(map[string]any)
	if raw == nil {
		raw = map[string]any{}
	}

	raw[schemaPath] = globs
	settings["yaml.schemas"] = raw

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal editor config: %w", err)
	}

	if err := os.WriteFile(settingsPath, out, 0o644); err != nil {
		return fmt.Errorf("write editor config %s: %w", settingsPath, err)
	}

	return nil
}
