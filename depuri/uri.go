package depuri

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind tags the variant held by a [Reference].
type Kind int

// Reference kinds.
const (
	KindNone Kind = iota
	KindExternal
	KindInternal
)

// Ecosystems accepted at the URI-parse level. Note maven is accepted here
// but excluded from the Layer 4 business-validation supported set -- see
// [SupportedEcosystems] and DESIGN.md's design decision on the diagnostic
// taxonomy for malformed dependency references.
var parseableEcosystems = map[string]bool{
	"pypi":        true,
	"npm":         true,
	"golang.org":  true,
	"github.com":  true,
	"crates.io":   true,
	"maven":       true,
}

// SupportedEcosystems returns the narrower set of ecosystems that pass
// Layer 4 business validation. maven is intentionally excluded: it parses
// as a well-formed external:// URI but is rejected by
// [go.kgctl.dev/kg/validate]'s business-logic layer.
func SupportedEcosystems() []string {
	return []string{"pypi", "npm", "golang.org", "github.com", "crates.io"}
}

// IsParseableEcosystem reports whether eco is accepted at URI-parse time.
func IsParseableEcosystem(eco string) bool {
	return parseableEcosystems[eco]
}

var (
	externalPattern = regexp.MustCompile(`^external://([^/]+)/(.+)/([^/]+)$`)
	internalPattern = regexp.MustCompile(`^internal://(.+)$`)
	namespacePattern = regexp.MustCompile(`^[a-z]([a-z0-9_-]*[a-z0-9])?$`)
)

// External holds the parsed components of an external:// dependency URI.
type External struct {
	Ecosystem string
	Package   string
	Version   string
}

// URI reconstructs the canonical external:// URI.
func (e External) URI() string {
	return fmt.Sprintf("external://%s/%s/%s", e.Ecosystem, e.Package, e.Version)
}

// PackageID returns the package-level identifier (no version segment).
func (e External) PackageID() string {
	return fmt.Sprintf("external://%s/%s", e.Ecosystem, e.Package)
}

// Internal holds the parsed components of an internal:// dependency URI.
type Internal struct {
	Namespace string
	EntityName string
}

// URI reconstructs the canonical internal:// URI.
func (i Internal) URI() string {
	return fmt.Sprintf("internal://%s/%s", i.Namespace, i.EntityName)
}

// EntityID returns the canonical "<namespace>/<entity_name>" form used to
// key entities internally.
func (i Internal) EntityID() string {
	return fmt.Sprintf("%s/%s", i.Namespace, i.EntityName)
}

// Reference is the tagged-union result of [Parse]: exactly one of External
// or Internal is populated, selected by Kind.
type Reference struct {
	Kind     Kind
	External External
	Internal Internal
}

// Parse classifies and decomposes a dependency reference string. A string
// that matches neither pattern returns Kind == KindNone with no error --
// callers that need a "must be a URI" check should inspect Kind
// themselves; this mirrors the way the validation layers distinguish
// "not a URI at all" from "malformed URI of a known kind".
func Parse(s string) Reference {
	if m := externalPattern.FindStringSubmatch(s); m != nil {
		return Reference{
			Kind: KindExternal,
			External: External{
				Ecosystem: m[1],
				Package:   m[2],
				Version:   m[3],
			},
		}
	}

	if m := internalPattern.FindStringSubmatch(s); m != nil {
		if internal, ok := parseInternalPath(m[1]); ok {
			return Reference{Kind: KindInternal, Internal: internal}
		}

		return Reference{Kind: KindNone}
	}

	return Reference{Kind: KindNone}
}

// parseInternalPath splits an internal:// path on "/". Only the first
// segment is treated as namespace; the remainder (which may itself contain
// "/") is joined back as the entity name. The grammar requires at least two
// segments; a bare "internal://name" with no "/" is not classified as
// Internal at all.
func parseInternalPath(path string) (Internal, bool) {
	parts := strings.SplitN(path, "/", 2)
	if len(parts) < 2 {
		return Internal{}, false
	}

	return Internal{Namespace: parts[0], EntityName: parts[1]}, true
}

// IsWellFormedInternal reports whether an Internal value satisfies the
// namespace grammar and has a non-empty entity name; it does not check
// segment count beyond what [Parse] already enforced.
func IsWellFormedInternal(i Internal) bool {
	return namespacePattern.MatchString(i.Namespace) && i.EntityName != ""
}

// NamespacePattern returns the anchored regexp used to validate namespace
// strings, shared with the descriptor root validator.
func NamespacePattern() *regexp.Regexp {
	return namespacePattern
}

// ExternalPattern returns the anchored regexp [Parse] uses to recognize an
// external:// dependency URI, exposed so collaborators such as the JSON
// Schema exporter can carry the same grammar into a $defs pattern without
// duplicating the regex.
func ExternalPattern() *regexp.Regexp {
	return externalPattern
}

// InternalPattern returns the anchored regexp [Parse] uses to recognize an
// internal:// dependency URI, for the same reason as [ExternalPattern].
func InternalPattern() *regexp.Regexp {
	return internalPattern
}

// BuildExternal constructs and validates an External reference from parts.
func BuildExternal(ecosystem, pkg, version string) (External, error) {
	if pkg == "" {
		return External{}, fmt.Errorf("%w: empty package name", ErrInvalidReference)
	}

	if version == "" {
		return External{}, fmt.Errorf("%w: empty version", ErrInvalidReference)
	}

	return External{Ecosystem: ecosystem, Package: pkg, Version: version}, nil
}

// BuildInternal constructs and validates an Internal reference from parts.
func BuildInternal(namespace, entityName string) (Internal, error) {
	if !namespacePattern.MatchString(namespace) {
		return Internal{}, fmt.Errorf("%w: invalid namespace %q", ErrInvalidReference, namespace)
	}

	if entityName == "" {
		return Internal{}, fmt.Errorf("%w: empty entity name", ErrInvalidReference)
	}

	return Internal{Namespace: namespace, EntityName: entityName}, nil
}
