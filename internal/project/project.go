// Package project holds the Project data model shared by the ingestor and
// its control-plane collaborator.
package project

// InputSourceState classifies where (or whether) a project's tile
// inventory was found on its most recent ingestor pass.
type InputSourceState string

const (
	// Unknown is the zero value, before any ingestor pass has run.
	Unknown InputSourceState = "unknown"
	// Pipeline means pipeline-input.json was found and selected.
	Pipeline InputSourceState = "pipeline"
	// Dashboard means the legacy dashboard.json was found and selected.
	Dashboard InputSourceState = "dashboard"
	// Missing means the root exists but neither inventory file was found.
	Missing InputSourceState = "missing"
	// BadLocation means the project root does not exist.
	BadLocation InputSourceState = "bad_location"
)

// Extent is a sample-space bounding box over one axis.
type Extent struct {
	Minimum float64
	Maximum float64
}

// Extents is the sample-extent rectangle carried by a Project.
type Extents struct {
	X Extent
	Y Extent
	Z Extent
}

// Project is the root of one tiled-microscopy processing job.
type Project struct {
	ID      string
	Name    string
	Root    string
	Extents Extents

	InputSourceState InputSourceState

	// ExitRequested, when set, tells the ingestor Loop managing this
	// project to stop at the next tick boundary.
	ExitRequested bool
}
