package inventory

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	snapshotFile       = "pipeline-storage.json"
	snapshotBackupFile = "pipeline-storage.json.last"
)

// Writer atomically-enough persists the last-seen canonical tile list as a
// recovery snapshot.
type Writer struct {
	fs afero.Fs
}

// NewWriter creates a Writer backed by fs.
func NewWriter(fs afero.Fs) *Writer {
	return &Writer{fs: fs}
}

// Write performs the snapshot/backup dance: back up any existing snapshot,
// remove it, then write the fresh one. Steps need not be atomic as a whole;
// after a crash the presence of either file is acceptable.
func (w *Writer) Write(root string, tiles []Tile) error {
	snapshotPath := filepath.Join(root, snapshotFile)
	backupPath := filepath.Join(root, snapshotBackupFile)

	if exists, _ := afero.Exists(w.fs, snapshotPath); exists {
		data, err := afero.ReadFile(w.fs, snapshotPath)
		if err != nil {
			return err
		}
		if err := afero.WriteFile(w.fs, backupPath, data, 0644); err != nil {
			return err
		}
		if err := w.fs.Remove(snapshotPath); err != nil {
			return err
		}
	}

	if tiles == nil {
		tiles = []Tile{}
	}

	data, err := json.Marshal(tiles)
	if err != nil {
		return err
	}

	return afero.WriteFile(w.fs, snapshotPath, data, 0644)
}

// Read parses a previously written snapshot back into canonical tiles.
func Read(fs afero.Fs, root string) ([]Tile, error) {
	data, err := afero.ReadFile(fs, filepath.Join(root, snapshotFile))
	if err != nil {
		return nil, err
	}

	var tiles []Tile
	if err := json.Unmarshal(data, &tiles); err != nil {
		return nil, err
	}
	return tiles, nil
}
