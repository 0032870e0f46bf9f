package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bubblechart/pkg/errors"
	"github.com/matzehuels/bubblechart/pkg/scale"
)

// loadConfig reads a flat style option file. The format follows the file
// extension: .toml, .yaml/.yml or .json.
func loadConfig(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .json)", ext)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, nil
}

// applySets merges key=value overrides into cfg. Values are parsed as YAML
// scalars or flow sequences, so "true", "12.5" and "[a, b, c, d]" keep their
// types.
func applySets(cfg map[string]any, sets []string) (map[string]any, error) {
	if len(sets) == 0 {
		return cfg, nil
	}
	if cfg == nil {
		cfg = map[string]any{}
	}
	for _, s := range sets {
		key, raw, ok := strings.Cut(s, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "invalid --set %q (want key=value)", s)
		}
		cfg[key] = setValue(raw)
	}
	return cfg, nil
}

func setValue(raw string) any {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	switch v.(type) {
	case bool, int, float64, []any:
		return v
	}
	return raw
}

// parseZoom parses "k,x,y" into a transform.
func parseZoom(s string) (*scale.Transform, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, errors.New(errors.ErrCodeInvalidZoom, "invalid zoom %q (want k,x,y)", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidZoom, err, "invalid zoom component %q", p)
		}
		v[i] = f
	}
	if err := errors.ValidateZoom(v[0], v[1], v[2]); err != nil {
		return nil, err
	}
	return &scale.Transform{K: v[0], X: v[1], Y: v[2]}, nil
}
