package validate

import (
	"regexp"
	"strconv"

	"github.com/goccy/go-yaml"
)

var yamlErrorPosPattern = regexp.MustCompile(`\[(\d+):(\d+)\]|line (\d+)[,:]? *(?:column (\d+))?`)

// layer1Syntax parses data as YAML into a generic value tree. A parse
// failure produces exactly one yaml_syntax_error diagnostic (testable
// property 4); an empty document produces exactly one
// empty_yaml_content diagnostic. Both are fatal for the pipeline.
func layer1Syntax(data []byte) (map[string]any, []Diagnostic) {
	if len(isBlankYAML(data)) == 0 {
		return nil, []Diagnostic{{
			Type:    DiagTypeEmptyYAMLContent,
			Message: "descriptor document is empty",
			Help:    "add schema_version, namespace, and entity fields",
		}}
	}

	var tree map[string]any

	err := yaml.Unmarshal(data, &tree)
	if err != nil {
		line, col := extractYAMLPosition(err.Error())

		return nil, []Diagnostic{{
			Type:    DiagTypeYAMLSyntaxError,
			Message: err.Error(),
			Line:    line,
			Column:  col,
			Help:    "fix the YAML syntax error and re-run validation",
		}}
	}

	if tree == nil {
		return nil, []Diagnostic{{
			Type:    DiagTypeEmptyYAMLContent,
			Message: "descriptor document is empty",
			Help:    "add schema_version, namespace, and entity fields",
		}}
	}

	return tree, nil
}

// isBlankYAML returns data unchanged unless it is empty or whitespace-only,
// in which case it returns an empty slice so callers can test len() == 0.
func isBlankYAML(data []byte) []byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return data
		}
	}

	return nil
}

// extractYAMLPosition best-effort extracts a 1-based line/column from a
// goccy/go-yaml error message. Returns zero values if no position is found.
func extractYAMLPosition(msg string) (int, int) {
	m := yamlErrorPosPattern.FindStringSubmatch(msg)
	if m == nil {
		return 0, 0
	}

	if m[1] != "" {
		line, _ := strconv.Atoi(m[1])
		col, _ := strconv.Atoi(m[2])

		return line, col
	}

	line, _ := strconv.Atoi(m[3])
	col, _ := strconv.Atoi(m[4])

	return line, col
}
