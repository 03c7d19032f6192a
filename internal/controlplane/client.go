// Package controlplane is the core's one outbound collaborator for
// publishing project input-source state.
package controlplane

import (
	"context"

	"github.com/srand/tilecore/internal/project"
)

// Client persists a project's input-source classification. It is the core's
// only call into the control plane; all other project queries read from the
// local database, which this service does not own.
type Client interface {
	UpdateProject(ctx context.Context, projectID string, state project.InputSourceState) error
}
