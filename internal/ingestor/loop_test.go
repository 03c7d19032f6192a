package ingestor

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/srand/tilecore/internal/project"
	"github.com/srand/tilecore/pkg/pathmap"
	"github.com/srand/tilecore/pkg/tilestatus/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeControlPlane struct {
	updates []project.InputSourceState
}

func (f *fakeControlPlane) UpdateProject(ctx context.Context, projectID string, state project.InputSourceState) error {
	f.updates = append(f.updates, state)
	return nil
}

const pipelineDoc = `{
	"pipelineFormat": 1,
	"tiles": [
		{"id": 1, "relativePath": "a/b.tif", "isComplete": false}
	]
}`

func TestLoopTickInsertsAndWritesSnapshot(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/pipeline-input.json", []byte(pipelineDoc), 0644))

	store := memstore.New()
	cp := &fakeControlPlane{}

	loop := NewLoop(Config{
		Project:  &project.Project{ID: "p1", Root: "/proj"},
		Mapper:   pathmap.New(nil),
		Fs:       fs,
		Store:    store,
		Control:  cp,
		Interval: time.Hour,
	})

	loop.tick(context.Background())

	rows, err := store.List(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a/b.tif", rows[0].RelativePath)

	assert.Contains(t, cp.updates, project.Pipeline)

	snap, err := afero.ReadFile(fs, "/proj/pipeline-storage.json")
	require.NoError(t, err)
	assert.Contains(t, string(snap), "a/b.tif")
}

func TestLoopTickBadLocationSkipsMuxAndSnapshot(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := memstore.New()
	cp := &fakeControlPlane{}

	loop := NewLoop(Config{
		Project:  &project.Project{ID: "p1", Root: "/does-not-exist"},
		Mapper:   pathmap.New(nil),
		Fs:       fs,
		Store:    store,
		Control:  cp,
		Interval: time.Hour,
	})

	loop.tick(context.Background())

	rows, err := store.List(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Contains(t, cp.updates, project.BadLocation)

	exists, _ := afero.Exists(fs, "/does-not-exist/pipeline-storage.json")
	assert.False(t, exists)
}

func TestSupervisorStartAndStop(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := memstore.New()
	cp := &fakeControlPlane{}

	loop := NewLoop(Config{
		Project:  &project.Project{ID: "p1", Root: "/proj"},
		Mapper:   pathmap.New(nil),
		Fs:       fs,
		Store:    store,
		Control:  cp,
		Interval: time.Millisecond,
	})

	sup := NewSupervisor()
	sup.Start(context.Background(), "p1", loop)
	time.Sleep(20 * time.Millisecond)
	sup.Stop()
}
