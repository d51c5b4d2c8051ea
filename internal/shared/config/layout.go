package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"resume-check/report/render"
)

// LoadLayout decodes a YAML layout override onto base. Keys missing from the
// file keep base's values. An empty path returns base unchanged.
func LoadLayout(path string, base render.Config) (render.Config, error) {
	if strings.TrimSpace(path) == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return render.Config{}, fmt.Errorf("read layout %s: %w", path, err)
	}
	cfg, err := DecodeLayout(data, base)
	if err != nil {
		return render.Config{}, fmt.Errorf("layout %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeLayout applies a YAML document to base and validates the result.
func DecodeLayout(data []byte, base render.Config) (render.Config, error) {
	cfg := base
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return render.Config{}, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return render.Config{}, err
	}
	return cfg, nil
}
