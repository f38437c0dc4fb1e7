// Package board reads and writes the YAML board file that seeds the item
// collection at startup.
package board

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"driftboard/internal/item"
	"driftboard/pkg/colorutil"
)

const fileName = "board.yaml"

// File is the on-disk board document.
type File struct {
	Version int        `yaml:"version"`
	Items   []ItemSpec `yaml:"items"`
}

// ItemSpec describes one item. X and Y are the item center in world
// coordinates; Color is "#RRGGBB".
type ItemSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Color  string  `yaml:"color"`
	Label  string  `yaml:"label"`
}

// DefaultPath returns the board file location under the user config dir.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "driftboard", fileName)
}

// Load reads a board file into a fresh collection.
func Load(path string) (*item.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("board: parse %s: %w", path, err)
	}

	items := item.NewCollection()
	for i, spec := range f.Items {
		if spec.Width <= 0 || spec.Height <= 0 {
			return nil, fmt.Errorf("board: item %d has non-positive size", i)
		}
		c, err := colorutil.ParseHex(spec.Color)
		if err != nil {
			return nil, fmt.Errorf("board: item %d: %w", i, err)
		}
		items.Add(item.New(spec.X, spec.Y, spec.Width, spec.Height, c, spec.Label))
	}
	return items, nil
}

// Save writes the collection to a board file, creating parent
// directories as needed.
func Save(path string, items *item.Collection) error {
	f := File{Version: 1}
	for _, it := range items.Items() {
		f.Items = append(f.Items, ItemSpec{
			X:      it.X,
			Y:      it.Y,
			Width:  it.Width,
			Height: it.Height,
			Color:  colorutil.FormatHex(it.Color),
			Label:  it.Label,
		})
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the demo board used when no board file exists.
func Default() *item.Collection {
	palette := colorutil.Palette(5)
	labels := []string{"ideas", "todo", "doing", "done", "notes"}

	items := item.NewCollection()
	for i, label := range labels {
		x := float64(i%3)*260 + 200
		y := float64(i/3)*200 + 160
		items.Add(item.New(x, y, 220, 140, palette[i], label))
	}
	return items
}
