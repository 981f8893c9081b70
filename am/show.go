package am

import (
	"bytes"
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/shapeshare/errors"
)

// Render encodes c as toml, json or yaml.
func Render(c *Config, format string) ([]byte, error) {
	switch format {
	case "toml", "":
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(c); err != nil {
			return nil, errors.Wrap(err, "encode toml")
		}
		return buf.Bytes(), nil
	case "json":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encode json")
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := yaml.Marshal(c)
		if err != nil {
			return nil, errors.Wrap(err, "encode yaml")
		}
		return data, nil
	}
	return nil, errors.WithHint(
		errors.NewInvalidConfigError("unknown output format %q", format),
		"use toml, json or yaml",
	)
}
