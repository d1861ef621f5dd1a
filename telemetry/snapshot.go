package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the colony state at one tick, for offline inspection.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Width  int `json:"width"`
	Height int `json:"height"`
	HomeX  int `json:"home_x"`
	HomeY  int `json:"home_y"`

	Tick int32 `json:"tick"`

	Ants  []AntState  `json:"ants"`
	Cells []CellState `json:"cells"` // non-empty cells only

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// AntState holds one ant's complete state.
type AntState struct {
	X            int     `json:"x"`
	Y            int     `json:"y"`
	Heading      uint8   `json:"heading"`
	Steps        uint32  `json:"steps"`
	CarryingFood bool    `json:"carrying_food"`
	Potency      float64 `json:"potency"`
}

// CellState holds a cell that is not an unmarked empty cell.
type CellState struct {
	X             int     `json:"x"`
	Y             int     `json:"y"`
	Type          string  `json:"type"`
	FoodPheromone float64 `json:"food_pheromone,omitempty"`
	HomePheromone float64 `json:"home_pheromone,omitempty"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}
	return &snapshot, nil
}
