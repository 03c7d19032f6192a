package inventory

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/srand/tilecore/internal/project"
	"github.com/srand/tilecore/pkg/log"
)

const (
	pipelineInputFile = "pipeline-input.json"
	dashboardFile      = "dashboard.json"
)

// Reader locates and parses a project's tile-inventory document. The
// filesystem is an injected collaborator so tests run against an in-memory
// afero.Fs without touching disk.
type Reader struct {
	fs  afero.Fs
	log *log.ComponentLogger
}

// NewReader creates a Reader backed by fs.
func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs, log: log.Component("inventory")}
}

// Read classifies the project's input source and parses whichever
// inventory document is present. It never returns an error for a missing
// root or a missing inventory file — those are non-fatal classifications,
// not failures. A non-nil error indicates the selected inventory document
// existed but could not be parsed; the caller should skip the tick.
func (r *Reader) Read(root string) (Inventory, project.InputSourceState, error) {
	if _, err := r.fs.Stat(root); err != nil {
		return Inventory{}, project.BadLocation, nil
	}

	pipelinePath := filepath.Join(root, pipelineInputFile)
	if exists, _ := afero.Exists(r.fs, pipelinePath); exists {
		inv, err := r.parseFile(pipelinePath)
		if err != nil {
			return Inventory{}, project.Pipeline, err
		}
		return inv, project.Pipeline, nil
	}

	dashboardPath := filepath.Join(root, dashboardFile)
	if exists, _ := afero.Exists(r.fs, dashboardPath); exists {
		inv, err := r.parseFile(dashboardPath)
		if err != nil {
			return Inventory{}, project.Dashboard, err
		}
		return inv, project.Dashboard, nil
	}

	return Inventory{}, project.Missing, nil
}

func (r *Reader) parseFile(path string) (Inventory, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return Inventory{}, fmt.Errorf("reading %s: %w", path, err)
	}

	inv, err := parseDocument(data)
	if err != nil {
		r.log.Warnf("failed to parse %s: %v", path, err)
		return Inventory{}, err
	}

	return inv, nil
}
