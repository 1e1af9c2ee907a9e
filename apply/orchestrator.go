package apply

import (
	"context"
	"fmt"
	"time"

	"go.kgctl.dev/kg/descriptor"
	"go.kgctl.dev/kg/schema"
	"go.kgctl.dev/kg/storage"
	"go.kgctl.dev/kg/validate"
)

// EntityOutcome is "created" or "updated", recorded per entity in a
// [Summary] (spec.md §4.7 step 6).
type EntityOutcome string

// Outcome tags.
const (
	OutcomeCreated EntityOutcome = "created"
	OutcomeUpdated EntityOutcome = "updated"
)

// EntityResult is one entity's apply outcome.
type EntityResult struct {
	EntityType string
	EntityID   string
	Outcome    EntityOutcome
}

// Summary is the result of one [Orchestrator.Apply] call.
type Summary struct {
	Valid bool
	// Errors carries the validation pipeline's findings when Valid is
	// false; no storage writes occurred.
	Errors []validate.Diagnostic

	DryRun     bool
	DryRunPlan storage.DryRunResult

	Entities []EntityResult
	Created  int
	Updated  int

	// FirstFailure names the first entity whose storage write failed, if
	// any. Per spec.md §4.7, per-entity storage errors are reported but do
	// not roll back earlier writes.
	FirstFailure string
	FailureErr   error

	ValidationTime time.Duration
	StorageTime    time.Duration
}

// Orchestrator wires the validation pipeline, the descriptor extractor,
// and a storage backend into the apply operation from spec.md §4.7.
type Orchestrator struct {
	client   storage.Client
	cat      *schema.Catalog
	pipeline *validate.Pipeline
}

// New builds an Orchestrator over an already-loaded catalog and a
// connected storage client.
func New(client storage.Client, cat *schema.Catalog, opts ...validate.Option) *Orchestrator {
	return &Orchestrator{
		client:   client,
		cat:      cat,
		pipeline: validate.NewPipeline(cat, opts...),
	}
}

// Apply runs the full orchestrator process against a descriptor document's
// raw bytes: validate, extract, and either preview (dryRun) or write.
func (o *Orchestrator) Apply(ctx context.Context, data []byte, dryRun bool) (Summary, error) {
	validationStart := time.Now()
	result := o.pipeline.Validate(ctx, data, o.client)
	validationTime := time.Since(validationStart)

	if !result.IsValid {
		return Summary{Valid: false, Errors: result.Errors, ValidationTime: validationTime}, nil
	}

	records := descriptor.Extract(result.Model, nil)

	if dryRun {
		plan, err := o.client.DryRunApply(ctx, toApplyRecords(records))
		if err != nil {
			return Summary{}, fmt.Errorf("dry run apply: %w", err)
		}

		return Summary{Valid: true, DryRun: true, DryRunPlan: plan, ValidationTime: validationTime}, nil
	}

	storageStart := time.Now()
	summary, err := o.applyRecords(ctx, records)
	summary.ValidationTime = validationTime
	summary.StorageTime = time.Since(storageStart)
	summary.Valid = true

	return summary, err
}

func (o *Orchestrator) applyRecords(ctx context.Context, records []descriptor.Record) (Summary, error) {
	var summary Summary

	for _, rec := range records {
		existing, err := o.client.GetEntity(ctx, rec.EntityType, rec.EntityID)
		if err != nil {
			summary.FirstFailure = rec.EntityID
			summary.FailureErr = err

			return summary, err
		}

		if _, err := o.client.StoreEntity(ctx, rec.EntityType, rec.EntityID, rec.Metadata, toSystemMetadata(rec.SystemMetadata)); err != nil {
			summary.FirstFailure = rec.EntityID
			summary.FailureErr = err

			return summary, err
		}

		es, ok := o.cat.Get(rec.EntityType)
		if !ok {
			summary.FirstFailure = rec.EntityID
			summary.FailureErr = fmt.Errorf("unknown entity type %q", rec.EntityType)

			return summary, summary.FailureErr
		}

		dependsOn := combinedDependsOn(rec)

		if err := processDependencies(ctx, o.client, dependsOn); err != nil {
			summary.FirstFailure = rec.EntityID
			summary.FailureErr = err

			return summary, err
		}

		if err := processRelationships(ctx, o.client, es, rec.EntityType, rec.EntityID, declaredRelationships(rec, dependsOn)); err != nil {
			summary.FirstFailure = rec.EntityID
			summary.FailureErr = err

			return summary, err
		}

		outcome := OutcomeCreated
		if existing != nil {
			outcome = OutcomeUpdated
			summary.Updated++
		} else {
			summary.Created++
		}

		summary.Entities = append(summary.Entities, EntityResult{
			EntityType: rec.EntityType,
			EntityID:   rec.EntityID,
			Outcome:    outcome,
		})
	}

	return summary, nil
}

// combinedDependsOn merges a record's nested relationships.depends_on list
// with the legacy top-level depends_on metadata key: both forms describe
// the same dependency set, and the dependency processor must expand
// every external:// target regardless of which form the author used
// (spec.md §4.9, scenario S4).
func combinedDependsOn(rec descriptor.Record) []string {
	out := append([]string(nil), rec.Relationships["depends_on"]...)
	out = append(out, stringList(rec.Metadata["depends_on"])...)

	return out
}

// declaredRelationships overlays the merged depends_on target list onto
// the record's nested relationships map, so the relationship processor
// replays a legacy top-level depends_on as a depends_on edge exactly the
// way it would a nested one (spec.md's literal scenario S4 expects a
// depends_on edge from a legacy-only depends_on field).
func declaredRelationships(rec descriptor.Record, dependsOn []string) map[string][]string {
	declared := make(map[string][]string, len(rec.Relationships)+1)

	for name, targets := range rec.Relationships {
		declared[name] = targets
	}

	if len(dependsOn) > 0 {
		declared["depends_on"] = dependsOn
	}

	return declared
}

func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))

		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}

		return out
	default:
		return nil
	}
}

func toSystemMetadata(m map[string]any) storage.SystemMetadata {
	sys := storage.SystemMetadata{Source: "descriptor_apply"}

	if ns, ok := m["namespace"].(string); ok {
		sys.Namespace = ns
	}

	if sn, ok := m["source_name"].(string); ok {
		sys.SourceName = sn
	}

	return sys
}

func toApplyRecords(records []descriptor.Record) []storage.ApplyRecord {
	out := make([]storage.ApplyRecord, 0, len(records))

	for _, r := range records {
		out = append(out, storage.ApplyRecord{
			EntityType:    r.EntityType,
			EntityID:      r.EntityID,
			Metadata:      r.Metadata,
			Relationships: r.Relationships,
		})
	}

	return out
}
