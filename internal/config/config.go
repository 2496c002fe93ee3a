package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jacobarthurs/dremprof/internal/analyzer"
)

const configFileName = "thresholds.yaml"

var configDirFunc = configDir

// File is the on-disk thresholds override. Pointer fields so absent keys
// keep the built-in defaults.
type File struct {
	HighWaitNanos          *int64   `yaml:"high_wait_nanos,omitempty"`
	HighMemoryBytes        *int64   `yaml:"high_memory_bytes,omitempty"`
	HighVolumeRecords      *int64   `yaml:"high_volume_records,omitempty"`
	LowSelectivityMinInput *int64   `yaml:"low_selectivity_min_input,omitempty"`
	LowSelectivityRatio    *float64 `yaml:"low_selectivity_ratio,omitempty"`
	ExpensiveJoinNanos     *int64   `yaml:"expensive_join_nanos,omitempty"`
	ExpensiveSortBytes     *int64   `yaml:"expensive_sort_bytes,omitempty"`
}

// LoadThresholds resolves the classifier thresholds. path="" means the
// default config location; a missing file yields the defaults, not an
// error.
func LoadThresholds(path string) (analyzer.Thresholds, error) {
	th := analyzer.DefaultThresholds()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = configPath()
		if err != nil {
			return th, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return th, nil
		}
		return th, err
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return th, fmt.Errorf("parsing config %s: %w", path, err)
	}

	apply(&th, file)
	return th, nil
}

func apply(th *analyzer.Thresholds, file File) {
	if file.HighWaitNanos != nil {
		th.HighWaitNanos = *file.HighWaitNanos
	}
	if file.HighMemoryBytes != nil {
		th.HighMemoryBytes = *file.HighMemoryBytes
	}
	if file.HighVolumeRecords != nil {
		th.HighVolumeRecords = *file.HighVolumeRecords
	}
	if file.LowSelectivityMinInput != nil {
		th.LowSelectivityMinInput = *file.LowSelectivityMinInput
	}
	if file.LowSelectivityRatio != nil {
		th.LowSelectivityRatio = *file.LowSelectivityRatio
	}
	if file.ExpensiveJoinNanos != nil {
		th.ExpensiveJoinNanos = *file.ExpensiveJoinNanos
	}
	if file.ExpensiveSortBytes != nil {
		th.ExpensiveSortBytes = *file.ExpensiveSortBytes
	}
}

var template = fmt.Sprintf(`# dremprof bottleneck thresholds.
# Remove or comment out a key to keep its built-in default.

# Wait time above which an operator is flagged as I/O bound,
# when it also exceeds the operator's process time.
high_wait_nanos: %d

# Peak memory allocation flagged as high.
high_memory_bytes: %d

# Input record count flagged as high volume.
high_volume_records: %d

# Minimum input records before selectivity is judged, and the
# output/input ratio below which an operator is flagged.
low_selectivity_min_input: %d
low_selectivity_ratio: %g

# Total time above which a join operator is flagged.
expensive_join_nanos: %d

# Peak memory above which a sort operator is flagged.
expensive_sort_bytes: %d
`,
	analyzer.DefaultHighWaitNanos,
	analyzer.DefaultHighMemoryBytes,
	analyzer.DefaultHighVolumeRecords,
	analyzer.DefaultLowSelectivityMinInput,
	analyzer.DefaultLowSelectivityRatio,
	analyzer.DefaultExpensiveJoinNanos,
	analyzer.DefaultExpensiveSortBytes,
)

// WriteTemplate creates the thresholds config with a commented template
// and returns its path. An existing file is only overwritten with force.
func WriteTemplate(force bool) (string, error) {
	dir, err := configDirFunc()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}

	path := filepath.Join(dir, configFileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("config %s already exists (use --force to overwrite)", path)
		}
	}

	if err := os.WriteFile(path, []byte(template), 0600); err != nil {
		return "", fmt.Errorf("writing config %s: %w", path, err)
	}
	return path, nil
}

func configDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("finding config directory: %w", err)
	}
	return filepath.Join(base, "dremprof"), nil
}

func configPath() (string, error) {
	dir, err := configDirFunc()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
