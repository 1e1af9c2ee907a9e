package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"go.kgctl.dev/kg/schema"
)

var emailDomainPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// typeCheck validates that value matches f's semantic type. It is always
// the first check in a field's program since every later check assumes the
// value is already shaped correctly.
func typeCheck(f schema.FieldDefinition) fieldCheck {
	return func(name string, value any) *Diagnostic {
		if value == nil {
			return nil
		}

		ok := false

		switch f.Type {
		case schema.FieldTypeString:
			_, ok = value.(string)
		case schema.FieldTypeInteger:
			switch value.(type) {
			case int, int32, int64, uint64:
				ok = true
			case float64:
				// YAML integers decoded through a generic tree commonly
				// arrive as float64; accept whole-number floats.
				f, isFloat := value.(float64)
				ok = isFloat && f == float64(int64(f))
			}
		case schema.FieldTypeBoolean:
			_, ok = value.(bool)
		case schema.FieldTypeDatetime:
			_, isString := value.(string)
			ok = isString
		case schema.FieldTypeArray:
			_, isList := value.([]any)
			ok = isList
		case schema.FieldTypeObject:
			_, isMap := value.(map[string]any)
			ok = isMap
		default:
			ok = true
		}

		if ok {
			return nil
		}

		return &Diagnostic{
			Type:    DiagTypeInvalidFieldType,
			Message: fmt.Sprintf("field %q must be of type %s", name, f.Type),
			Field:   name,
			Help:    fmt.Sprintf("change %q to a %s value", name, f.Type),
		}
	}
}

func emailCheck() fieldCheck {
	return func(name string, value any) *Diagnostic {
		s, ok := value.(string)
		if !ok {
			return nil
		}

		if emailDomainPattern.MatchString(s) {
			return nil
		}

		return &Diagnostic{
			Type:    DiagTypeInvalidFieldType,
			Message: fmt.Sprintf("field %q is not a valid email address", name),
			Field:   name,
			Help:    "use the form user@domain.tld",
		}
	}
}

func urlCheck() fieldCheck {
	return func(name string, value any) *Diagnostic {
		s, ok := value.(string)
		if !ok {
			return nil
		}

		u, err := url.Parse(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return &Diagnostic{
				Type:    DiagTypeInvalidFieldType,
				Message: fmt.Sprintf("field %q must be an http(s) URL", name),
				Field:   name,
				Help:    "use a URL starting with http:// or https://",
			}
		}

		return nil
	}
}

func enumCheck(allowed []string) fieldCheck {
	return func(name string, value any) *Diagnostic {
		s, ok := value.(string)
		if !ok {
			return nil
		}

		if slices.Contains(allowed, s) {
			return nil
		}

		return &Diagnostic{
			Type:    DiagTypeInvalidFieldType,
			Message: fmt.Sprintf("field %q must be one of %s", name, strings.Join(allowed, ", ")),
			Field:   name,
			Help:    fmt.Sprintf("use one of: %s", strings.Join(allowed, ", ")),
		}
	}
}

func stringLengthCheck(minLen, maxLen *int) fieldCheck {
	return func(name string, value any) *Diagnostic {
		s, ok := value.(string)
		if !ok {
			return nil
		}

		if minLen != nil && len(s) < *minLen {
			return &Diagnostic{
				Type:    DiagTypeInvalidFieldType,
				Message: fmt.Sprintf("field %q must be at least %d characters", name, *minLen),
				Field:   name,
				Help:    fmt.Sprintf("lengthen %q to at least %d characters", name, *minLen),
			}
		}

		if maxLen != nil && len(s) > *maxLen {
			return &Diagnostic{
				Type:    DiagTypeInvalidFieldType,
				Message: fmt.Sprintf("field %q must be at most %d characters", name, *maxLen),
				Field:   name,
				Help:    fmt.Sprintf("shorten %q to at most %d characters", name, *maxLen),
			}
		}

		return nil
	}
}

func patternCheck(pattern string) fieldCheck {
	re, err := regexp.Compile(pattern)

	return func(name string, value any) *Diagnostic {
		s, ok := value.(string)
		if !ok {
			return nil
		}

		if err != nil || re == nil {
			return nil
		}

		if re.MatchString(s) {
			return nil
		}

		return &Diagnostic{
			Type:    DiagTypeInvalidFieldType,
			Message: fmt.Sprintf("field %q does not match pattern %s", name, pattern),
			Field:   name,
			Help:    fmt.Sprintf("match the pattern %s", pattern),
		}
	}
}

func arrayChecks(f schema.FieldDefinition) []fieldCheck {
	var checks []fieldCheck

	checks = append(checks, func(name string, value any) *Diagnostic {
		list, ok := value.([]any)
		if !ok {
			return nil
		}

		if f.Required && len(list) == 0 {
			return &Diagnostic{
				Type:    DiagTypeEmptyRequiredArray,
				Message: fmt.Sprintf("required field %q must not be an empty array", name),
				Field:   name,
				Help:    fmt.Sprintf("add at least one item to %q", name),
			}
		}

		if f.MinItems != nil && len(list) < *f.MinItems {
			return &Diagnostic{
				Type:    DiagTypeInvalidFieldType,
				Message: fmt.Sprintf("field %q must have at least %d items", name, *f.MinItems),
				Field:   name,
				Help:    fmt.Sprintf("add items to %q to reach %d", name, *f.MinItems),
			}
		}

		if f.MaxItems != nil && len(list) > *f.MaxItems {
			return &Diagnostic{
				Type:    DiagTypeInvalidFieldType,
				Message: fmt.Sprintf("field %q must have at most %d items", name, *f.MaxItems),
				Field:   name,
				Help:    fmt.Sprintf("remove items from %q to reach %d", name, *f.MaxItems),
			}
		}

		return nil
	})

	if f.ItemType != "" {
		itemCheck := typeCheck(schema.FieldDefinition{Type: f.ItemType})
		checks = append(checks, func(name string, value any) *Diagnostic {
			list, ok := value.([]any)
			if !ok {
				return nil
			}

			for _, item := range list {
				if d := itemCheck(name, item); d != nil {
					d.Message = fmt.Sprintf("field %q has an item that is not of type %s", name, f.ItemType)
					d.Help = fmt.Sprintf("every item in %q must be a %s", name, f.ItemType)

					return d
				}
			}

			return nil
		})
	}

	return checks
}
