// Package loader reads model documents from disk.
//
// Supported formats, chosen by file extension:
//   - .yaml, .yml (gopkg.in/yaml.v3)
//   - .toml (github.com/BurntSushi/toml)
//   - .json (encoding/json)
//
// Unknown keys are rejected in every format so typos surface as errors.
package loader

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/teranos/shapeshare/errors"
	"github.com/teranos/shapeshare/model"
)

// Format is a model document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.WithHint(
		errors.NewInvalidModelError("unsupported model file extension %q", filepath.Ext(path)),
		"use .yaml, .yml, .toml or .json",
	)
}

// LoadFile reads, decodes and validates a model document.
func LoadFile(path string) (*model.Model, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read model %s", path)
	}
	m, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "load model %s", path)
	}
	if m.ModuleName == "" {
		m.ModuleName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

// Decode parses a document in the given format and converts it to a model.
func Decode(data []byte, format Format) (*model.Model, error) {
	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "decode yaml"), errors.ErrInvalidModel)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "decode toml"), errors.ErrInvalidModel)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.NewInvalidModelError("unknown toml keys: %v", undecoded)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "decode json"), errors.ErrInvalidModel)
		}
	default:
		return nil, errors.NewInvalidModelError("unknown format %q", format)
	}
	return doc.Model()
}
