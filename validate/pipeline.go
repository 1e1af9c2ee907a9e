package validate

import (
	"context"

	"go.kgctl.dev/kg/schema"
)

// Pipeline runs the five-layer validation sequence over a descriptor
// document (spec §4.4). A Pipeline is safe for concurrent use once built;
// the underlying [Factory] caches one validator per (entity_type,
// schema_version).
type Pipeline struct {
	cat     *schema.Catalog
	factory *Factory
	strict  bool
}

// Option configures a [Pipeline] at construction time.
type Option func(*Pipeline)

// WithStrict promotes warnings to errors for every Result this Pipeline
// produces, matching testable property 6.
func WithStrict() Option {
	return func(p *Pipeline) { p.strict = true }
}

// NewPipeline builds a Pipeline over cat.
func NewPipeline(cat *schema.Catalog, opts ...Option) *Pipeline {
	p := &Pipeline{cat: cat, factory: NewFactory(cat)}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// ValidateSync runs Layers 1-4 only. There is no I/O, so it never checks
// reference existence (spec §4.4's synchronous entry point).
func (p *Pipeline) ValidateSync(data []byte) Result {
	return p.run(nil, data, nil)
}

// Validate runs all five layers, including Layer 5's reference-existence
// check against checker. Pass a nil checker to behave like ValidateSync.
func (p *Pipeline) Validate(ctx context.Context, data []byte, checker ExistenceChecker) Result {
	return p.run(ctx, data, checker)
}

func (p *Pipeline) run(ctx context.Context, data []byte, checker ExistenceChecker) Result {
	tree, diags := layer1Syntax(data)
	if tree == nil {
		return p.finish(diags, nil, nil)
	}

	structDiags, critical := layer2Structure(tree)
	if critical {
		return p.finish(append(diags, structDiags...), nil, nil)
	}

	diags = append(diags, structDiags...)

	fieldDiags, model := layer3FieldFormat(tree, p.cat, p.factory)
	if model == nil {
		return p.finish(append(diags, fieldDiags...), nil, nil)
	}

	diags = append(diags, fieldDiags...)
	diags = append(diags, layer4Business(model)...)

	if checker != nil {
		diags = append(diags, layer5Reference(ctx, model, checker)...)
	}

	return p.finish(diags, nil, model)
}

// finish partitions raw findings into errors and warnings, applies strict
// mode if configured, and builds the final Result.
func (p *Pipeline) finish(diags, extraWarnings []Diagnostic, model *Model) Result {
	var errs, warns []Diagnostic

	warns = append(warns, extraWarnings...)

	for _, d := range diags {
		if d.Type == DiagTypeMultipleOwnerDomains {
			warns = append(warns, d)

			continue
		}

		errs = append(errs, d)
	}

	res := Result{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warns,
		Model:    model,
	}

	if p.strict {
		res = res.Strict()
	}

	return res
}
