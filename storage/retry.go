package storage

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"go.kgctl.dev/kg/schema"
)

// retryDecorator wraps a [Client] and retries its retriable operations
// (spec.md §5: store_entity, create_relationship,
// remove_relationships_by_type, get_entity, entity_exists, execute_query)
// with a fixed delay and a maximum retry count. Every other method passes
// through unmodified.
type retryDecorator struct {
	Client

	delay      time.Duration
	maxRetries uint64
}

// WithRetry wraps client so its retriable operations are retried per cfg's
// RetryDelaySeconds and MaxRetries.
func WithRetry(client Client, cfg *Config) Client {
	return &retryDecorator{
		Client:     client,
		delay:      time.Duration(cfg.RetryDelaySeconds) * time.Second,
		maxRetries: uint64(cfg.MaxRetries),
	}
}

func (d *retryDecorator) backOff(ctx context.Context) backoff.BackOff {
	return backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(d.delay), d.maxRetries), ctx)
}

func (d *retryDecorator) StoreEntity(ctx context.Context, entityType, id string, metadata map[string]any, sys SystemMetadata) (string, error) {
	var result string

	err := backoff.Retry(func() error {
		var err error

		result, err = d.Client.StoreEntity(ctx, entityType, id, metadata, sys)

		return retriableError(err)
	}, d.backOff(ctx))

	return result, err
}

func (d *retryDecorator) GetEntity(ctx context.Context, entityType, id string) (*EntityData, error) {
	var result *EntityData

	err := backoff.Retry(func() error {
		var err error

		result, err = d.Client.GetEntity(ctx, entityType, id)

		return retriableError(err)
	}, d.backOff(ctx))

	return result, err
}

func (d *retryDecorator) EntityExists(ctx context.Context, id string) (bool, error) {
	var result bool

	err := backoff.Retry(func() error {
		var err error

		result, err = d.Client.EntityExists(ctx, id)

		return retriableError(err)
	}, d.backOff(ctx))

	return result, err
}

func (d *retryDecorator) CreateRelationship(ctx context.Context, srcType, srcID, relName, tgtType, tgtID string) (bool, error) {
	var result bool

	err := backoff.Retry(func() error {
		var err error

		result, err = d.Client.CreateRelationship(ctx, srcType, srcID, relName, tgtType, tgtID)

		return retriableError(err)
	}, d.backOff(ctx))

	return result, err
}

func (d *retryDecorator) RemoveRelationshipsByType(ctx context.Context, srcType, srcID, relName string) (int, error) {
	var result int

	err := backoff.Retry(func() error {
		var err error

		result, err = d.Client.RemoveRelationshipsByType(ctx, srcType, srcID, relName)

		return retriableError(err)
	}, d.backOff(ctx))

	return result, err
}

// ExecuteQuery retries while the underlying result reports failure, since
// queries never return a Go error (spec.md §4.10: "never raises").
func (d *retryDecorator) ExecuteQuery(ctx context.Context, raw string, vars map[string]any) QueryResult {
	var result QueryResult

	_ = backoff.Retry(func() error {
		result = d.Client.ExecuteQuery(ctx, raw, vars)
		if result.Success {
			return nil
		}

		return &Error{Kind: KindQuery, Message: result.Err}
	}, d.backOff(ctx))

	return result
}

// LoadSchemas is not in the retriable set (spec.md §5 only names
// store/create-relationship/remove-by-type and the three reads above) but
// is still wrapped so a cancellation-aware caller sees consistent
// behavior through the decorator.
func (d *retryDecorator) LoadSchemas(ctx context.Context, dir string) (*schema.Catalog, error) {
	return d.Client.LoadSchemas(ctx, dir)
}

// retriableError classifies which errors are worth retrying: every error
// except a KindValidation [*Error], which is marked permanent (it will
// never succeed on retry).
func retriableError(err error) error {
	if err == nil {
		return nil
	}

	var storageErr *Error
	if errors.As(err, &storageErr) && storageErr.Kind == KindValidation {
		return backoff.Permanent(err)
	}

	return err
}
