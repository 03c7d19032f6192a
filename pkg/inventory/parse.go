package inventory

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/srand/tilecore/pkg/utils"
)

// sentinel peeks at the document just far enough to dispatch by content:
// presence of pipelineFormat selects the pipeline parser.
type sentinel struct {
	PipelineFormat *json.RawMessage `json:"pipelineFormat"`
}

// position mirrors the optional {x,y,z} objects carried by both formats.
type position struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	Z *float64 `json:"z"`
}

type extentsDoc struct {
	MinimumX float64 `json:"minimumX"`
	MaximumX float64 `json:"maximumX"`
	MinimumY float64 `json:"minimumY"`
	MaximumY float64 `json:"maximumY"`
	MinimumZ float64 `json:"minimumZ"`
	MaximumZ float64 `json:"maximumZ"`
}

func (e *extentsDoc) toExtents() *Extents {
	if e == nil {
		return nil
	}
	return &Extents{
		MinimumX: e.MinimumX, MaximumX: e.MaximumX,
		MinimumY: e.MinimumY, MaximumY: e.MaximumY,
		MinimumZ: e.MinimumZ, MaximumZ: e.MaximumZ,
	}
}

// parseDocument dispatches to the pipeline or dashboard parser by content.
func parseDocument(data []byte) (Inventory, error) {
	var s sentinel
	if err := json.Unmarshal(data, &s); err != nil {
		return Inventory{}, fmt.Errorf("%w: %v", utils.ErrParse, err)
	}

	if s.PipelineFormat != nil {
		return parsePipeline(data)
	}
	return parseDashboard(data)
}

type pipelineTile struct {
	ID           *int      `json:"id"`
	RelativePath string    `json:"relativePath"`
	Position     *position `json:"position"`
	Step         *position `json:"step"`
	IsComplete   bool      `json:"isComplete"`
}

type pipelineDoc struct {
	PipelineFormat json.RawMessage `json:"pipelineFormat"`
	Extents        *extentsDoc     `json:"extents"`
	Tiles          []pipelineTile  `json:"tiles"`
}

func parsePipeline(data []byte) (Inventory, error) {
	var doc pipelineDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Inventory{}, fmt.Errorf("%w: %v", utils.ErrParse, err)
	}

	tiles := make([]Tile, 0, len(doc.Tiles))
	for _, pt := range doc.Tiles {
		tiles = append(tiles, fromPipelineTile(pt))
	}

	return Inventory{Extents: doc.Extents.toExtents(), Tiles: tiles}, nil
}

func fromPipelineTile(pt pipelineTile) Tile {
	t := Tile{
		RelativePath: pt.RelativePath,
		Index:        pt.ID,
		IsComplete:   pt.IsComplete,
	}
	applyPosition(&t, pt.Position, pt.Step)
	t.normalize()
	return t
}

type dashboardTileContents struct {
	LatticePosition *position `json:"latticePosition"`
	LatticeStep     *position `json:"latticeStep"`
}

type dashboardTile struct {
	ID           *int                  `json:"id"`
	RelativePath string                `json:"relativePath"`
	Contents     dashboardTileContents `json:"contents"`
	IsComplete   bool                  `json:"isComplete"`
}

type dashboardMonitor struct {
	Extents *extentsDoc `json:"extents"`
}

type dashboardDoc struct {
	Monitor dashboardMonitor            `json:"monitor"`
	TileMap map[string][]dashboardTile `json:"tileMap"`
}

func parseDashboard(data []byte) (Inventory, error) {
	var doc dashboardDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Inventory{}, fmt.Errorf("%w: %v", utils.ErrParse, err)
	}

	keys := make([]string, 0, len(doc.TileMap))
	for k := range doc.TileMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var tiles []Tile
	for _, k := range keys {
		for _, dt := range doc.TileMap[k] {
			tiles = append(tiles, fromDashboardTile(dt))
		}
	}

	return Inventory{Extents: doc.Monitor.Extents.toExtents(), Tiles: tiles}, nil
}

func fromDashboardTile(dt dashboardTile) Tile {
	t := Tile{
		RelativePath: dt.RelativePath,
		Index:        dt.ID,
		IsComplete:   dt.IsComplete,
	}
	applyPosition(&t, dt.Contents.LatticePosition, dt.Contents.LatticeStep)
	t.normalize()
	return t
}

// applyPosition fills lattice position/step, defaulting a missing object to
// all-nil fields.
func applyPosition(t *Tile, pos, step *position) {
	if pos != nil {
		t.LatX, t.LatY, t.LatZ = pos.X, pos.Y, pos.Z
	}
	if step != nil {
		t.StepX, t.StepY, t.StepZ = step.X, step.Y, step.Z
	}
}
