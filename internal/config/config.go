package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"qweephys/internal/physics"
)

// DefaultPath is the path to the physics settings file, relative to the
// process working directory.
const DefaultPath = "config/physics.json"

// Settings holds the tunable simulation parameters. Persisted across runs;
// body definitions are not part of it.
type Settings struct {
	Gravity                [3]float32 `json:"gravity"`
	FixedDeltaTime         float32    `json:"fixed_delta_time"`
	Iterations             int        `json:"iterations"`
	Enabled                bool       `json:"enabled"`
	UseSpatialPartitioning bool       `json:"use_spatial_partitioning"`
	GridSize               float32    `json:"grid_size"`
}

// Default returns the built-in simulation parameters.
func Default() Settings {
	return Settings{
		Gravity:        [3]float32{0, -9.81, 0},
		FixedDeltaTime: 1.0 / 60.0,
		Iterations:     10,
		Enabled:        true,
		GridSize:       5.0,
	}
}

// Load reads settings from path. If the file is missing or invalid, returns
// Default() and does not create a file. Fields omitted from the file keep
// their default values, so a hand-edited partial file cannot zero out the
// fixed timestep.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	s := Default()
	if err := json.Unmarshal(data, &s); err != nil {
		return Default(), nil
	}
	return s, nil
}

// Save writes settings to path, creating the directory if needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Apply copies the settings onto a world.
func (s Settings) Apply(w *physics.World) {
	w.Gravity = rl.Vector3{X: s.Gravity[0], Y: s.Gravity[1], Z: s.Gravity[2]}
	w.FixedDeltaTime = s.FixedDeltaTime
	w.Iterations = s.Iterations
	w.Enabled = s.Enabled
	w.UseSpatialPartitioning = s.UseSpatialPartitioning
	w.GridSize = s.GridSize
}

// FromWorld snapshots a world's current parameters, for saving from the
// demo's debug overlay.
func FromWorld(w *physics.World) Settings {
	return Settings{
		Gravity:                [3]float32{w.Gravity.X, w.Gravity.Y, w.Gravity.Z},
		FixedDeltaTime:         w.FixedDeltaTime,
		Iterations:             w.Iterations,
		Enabled:                w.Enabled,
		UseSpatialPartitioning: w.UseSpatialPartitioning,
		GridSize:               w.GridSize,
	}
}
