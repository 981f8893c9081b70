package am

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	DefaultPolicy    = "warn"
	DefaultNamespace = "shapeshare.generated"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generate.model", "")
	v.SetDefault("generate.output", "")
	v.SetDefault("generate.languages", []string{"kotlin", "scala"})
	v.SetDefault("generate.policy", DefaultPolicy)
	v.SetDefault("generate.min_version", "")

	v.SetDefault("kotlin.package", DefaultNamespace)
	v.SetDefault("kotlin.module_name", "")
	v.SetDefault("kotlin.prefix", "")
	v.SetDefault("kotlin.no_version_header", false)

	v.SetDefault("scala.package", DefaultNamespace)
	v.SetDefault("scala.module_name", "")
	v.SetDefault("scala.no_version_header", false)
}

// String returns a short summary of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Languages: %v, Policy: %s, Kotlin: %s, Scala: %s}",
		c.Generate.Languages, c.Generate.Policy, c.Kotlin.Package, c.Scala.Package)
}
