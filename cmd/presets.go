package cmd

import (
	"bytes"
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsFS embed.FS

// Preset is one named, reproducible batch sweep, equivalent to one id of
// the original implementation's "go(int id)" dispatch table — except the
// table is now data (presets.yaml) instead of a growing switch statement.
type Preset struct {
	Name string `yaml:"name"`

	Xdim     int  `yaml:"xdim"`
	Ydim     int  `yaml:"ydim"`
	NrLayers int  `yaml:"nrlayers"`
	PBCZ     bool `yaml:"pbcz"`

	TotalRuns    int  `yaml:"total_runs"`
	MeasureJumps bool `yaml:"measure_jumps"`

	MinMilliP     int `yaml:"min_milli_p"`
	MaxMilliP     int `yaml:"max_milli_p"`
	IncMilliP     int `yaml:"inc_milli_p"`
	MinMilliPPerp int `yaml:"min_milli_pperp"`
	MaxMilliPPerp int `yaml:"max_milli_pperp"`
	IncMilliPPerp int `yaml:"inc_milli_pperp"`

	OutputPrefix string `yaml:"output_prefix"`
}

// presetFile mirrors presets.yaml's top-level shape. Every section must be
// listed here to satisfy KnownFields(true) strict parsing: an unrecognized
// top-level key or a typo'd preset field is a config error, not something
// to silently ignore.
type presetFile struct {
	Version string          `yaml:"version"`
	Presets map[int]Preset `yaml:"presets"`
}

// loadPresets parses the embedded presets.yaml with strict field checking.
func loadPresets() (map[int]Preset, error) {
	data, err := presetsFS.ReadFile("presets.yaml")
	if err != nil {
		return nil, fmt.Errorf("cmd: reading embedded presets.yaml: %w", err)
	}

	var file presetFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("cmd: parsing presets.yaml: %w", err)
	}

	return file.Presets, nil
}

// lookupPreset returns the preset registered under id, or an error listing
// the ids that do exist.
func lookupPreset(id int) (Preset, error) {
	presets, err := loadPresets()
	if err != nil {
		return Preset{}, err
	}

	preset, ok := presets[id]
	if !ok {
		return Preset{}, fmt.Errorf("cmd: no preset registered for id %d (known ids: %v)", id, sortedPresetIDs(presets))
	}
	return preset, nil
}

func sortedPresetIDs(presets map[int]Preset) []int {
	ids := make([]int, 0, len(presets))
	for id := range presets {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
