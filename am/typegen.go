package am

import (
	"github.com/teranos/shapeshare/errors"
	"github.com/teranos/shapeshare/model"
	"github.com/teranos/shapeshare/typegen"
)

// ToTypegenConfig converts the section for lang into a backend config.
// moduleName fills ModuleName when the section leaves it empty.
func (c *Config) ToTypegenConfig(lang model.Lang, moduleName string) (typegen.Config, error) {
	var cfg typegen.Config
	switch lang {
	case model.LangKotlin:
		cfg = typegen.Config{
			Namespace:       c.Kotlin.Package,
			ModuleName:      c.Kotlin.ModuleName,
			Prefix:          c.Kotlin.Prefix,
			TypeMappings:    c.Kotlin.TypeMappings,
			NoVersionHeader: c.Kotlin.NoVersionHeader,
		}
	case model.LangScala:
		cfg = typegen.Config{
			Namespace:       c.Scala.Package,
			ModuleName:      c.Scala.ModuleName,
			TypeMappings:    c.Scala.TypeMappings,
			NoVersionHeader: c.Scala.NoVersionHeader,
		}
	default:
		return typegen.Config{}, errors.WithHint(
			errors.NewInvalidConfigError("unknown language %q", lang),
			"valid languages: kotlin, scala",
		)
	}
	if cfg.ModuleName == "" {
		cfg.ModuleName = moduleName
	}
	return cfg.Clone(), nil
}

// Policy returns the parsed generate.policy.
func (c *Config) Policy() (typegen.Policy, error) {
	return typegen.ParsePolicy(c.Generate.Policy)
}
