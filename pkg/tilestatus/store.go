package tilestatus

import "context"

// Store abstracts the generic keyed-table/ORM persistence layer this
// service relies on but does not own. Each Batch method is one logical
// transaction: a failure must leave that bucket's rows unapplied without
// disturbing buckets already committed in the same tick.
type Store interface {
	// List returns every stage-zero row currently persisted for project.
	List(ctx context.Context, projectID string) ([]Row, error)

	// InsertBatch persists newly observed rows.
	InsertBatch(ctx context.Context, projectID string, rows []Row) error

	// UpdateBatch overwrites existing rows identified by RelativePath.
	UpdateBatch(ctx context.Context, projectID string, rows []Row) error

	// DeleteBatch removes rows identified by relative path.
	DeleteBatch(ctx context.Context, projectID string, relativePaths []string) error
}
