package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"go.kgctl.dev/kg/schema"
)

// Loader reads a versioned schema directory tree into a [schema.Catalog].
// Create instances with [New], which sets the logger to slog.Default()
// unless [WithLogger] is given; a zero Loader has a nil logger and panics
// in [Loader.Load].
type Loader struct {
	log *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger attaches a structured logger; entries are emitted at Debug for
// each file read and Info for a completed load.
func WithLogger(l *slog.Logger) Option {
	return func(ld *Loader) { ld.log = l }
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{log: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load reads dir and builds a fully validated [schema.Catalog], or returns
// a fatal [*CatalogError]. Load never returns a partially-built catalog: a
// failure at any step discards everything read so far.
func (ld *Loader) Load(dir string) (*schema.Catalog, error) {
	bases, err := ld.loadBases(filepath.Join(dir, "_base"))
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ioErr(dir, err)
	}

	cat := schema.New()

	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == "_base" {
			continue
		}

		entityType := entry.Name()

		raw, path, err := ld.loadLatestEntitySchema(filepath.Join(dir, entityType))
		if err != nil {
			return nil, err
		}

		if raw == nil {
			continue
		}

		es, usedBase, err := buildEntitySchema(raw, path, bases)
		if err != nil {
			return nil, err
		}

		cat.Schemas[es.EntityType] = es
		cat.BaseDerived[es.EntityType] = usedBase
	}

	if msgs := checkConsistency(cat); len(msgs) > 0 {
		return nil, validationErr(msgs)
	}

	cat.LoadedAt = time.Now()

	ld.log.Info("catalog loaded", slog.String("dir", dir), slog.Int("entity_types", len(cat.Schemas)))

	return cat, nil
}

// Reload re-runs [Loader.Load] against dir. On success the returned catalog
// should be swapped into place by the caller with a single assignment; on
// failure the caller's existing catalog is left untouched since Reload
// never mutates anything the previous Load produced.
func (ld *Loader) Reload(dir string) (*schema.Catalog, error) {
	return ld.Load(dir)
}

// loadBases reads one _base/<name>/<semver>.yaml file per base name,
// chosen by loadLatestYAMLVersion the same way
// [Loader.loadLatestEntitySchema] chooses entity schemas.
func (ld *Loader) loadBases(dir string) (map[string]*rawBaseSchema, error) {
	bases := make(map[string]*rawBaseSchema)

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return bases, nil
	}

	if err != nil {
		return nil, ioErr(dir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		raw, _, err := ld.loadLatestYAMLVersion(filepath.Join(dir, entry.Name()), &rawBaseSchema{})
		if err != nil {
			return nil, err
		}

		if raw == nil {
			continue
		}

		bases[entry.Name()] = raw.(*rawBaseSchema)
	}

	return bases, nil
}

// loadLatestEntitySchema finds and parses the YAML file that
// loadLatestYAMLVersion picks in an entity-type directory.
func (ld *Loader) loadLatestEntitySchema(dir string) (*rawEntitySchema, string, error) {
	raw, path, err := ld.loadLatestYAMLVersion(dir, &rawEntitySchema{})
	if err != nil {
		return nil, "", err
	}

	if raw == nil {
		return nil, "", nil
	}

	return raw.(*rawEntitySchema), path, nil
}

// loadLatestYAMLVersion finds the *.yaml file in dir whose basename sorts
// last lexically and unmarshals it into a fresh copy of target's
// underlying type. For semver file names such as "1.2.0.yaml" this is the
// highest version only while matching segments have the same number of
// digits: "1.9.0.yaml" sorts after "1.10.0.yaml".
func (ld *Loader) loadLatestYAMLVersion(dir string, target any) (any, string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, "", nil
	}

	if err != nil {
		return nil, "", ioErr(dir, err)
	}

	var names []string

	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, e.Name())
		}
	}

	if len(names) == 0 {
		return nil, "", nil
	}

	sort.Strings(names)

	path := filepath.Join(dir, names[len(names)-1])

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", ioErr(path, err)
	}

	ld.log.Debug("reading schema file", slog.String("path", path))

	out, err := newLike(target)
	if err != nil {
		return nil, "", err
	}

	err = yaml.Unmarshal(data, out)
	if err != nil {
		return nil, "", yamlErr(path, err)
	}

	return out, path, nil
}

func newLike(target any) (any, error) {
	switch target.(type) {
	case *rawBaseSchema:
		return &rawBaseSchema{}, nil
	case *rawEntitySchema:
		return &rawEntitySchema{}, nil
	default:
		return nil, fmt.Errorf("loader: unsupported unmarshal target %T", target)
	}
}
