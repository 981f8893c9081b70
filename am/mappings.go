package am

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// viper lowercases every key, but type mapping keys are type names and
// must keep their case, so they are re-read from the raw files.
type rawMappings struct {
	Kotlin struct {
		TypeMappings map[string]string `toml:"type_mappings"`
	} `toml:"kotlin"`
	Scala struct {
		TypeMappings map[string]string `toml:"type_mappings"`
	} `toml:"scala"`
}

func readMappings(path string) (*rawMappings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw rawMappings
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

// applyMappings replaces lowercased mapping keys with those from paths,
// later files winning per key.
func applyMappings(c *Config, paths []string) {
	var kotlin, scala map[string]string
	for _, path := range paths {
		raw, err := readMappings(path)
		if err != nil {
			continue
		}
		kotlin = mergeMappings(kotlin, raw.Kotlin.TypeMappings)
		scala = mergeMappings(scala, raw.Scala.TypeMappings)
	}
	if kotlin != nil {
		c.Kotlin.TypeMappings = kotlin
	}
	if scala != nil {
		c.Scala.TypeMappings = scala
	}
}

func mergeMappings(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
