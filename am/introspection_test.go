package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settingFor(t *testing.T, in *ConfigIntrospection, key string) SettingInfo {
	t.Helper()
	for _, s := range in.Settings {
		if s.Key == key {
			return s
		}
	}
	t.Fatalf("setting %s not found", key)
	return SettingInfo{}
}

func TestIntrospectionTracksSources(t *testing.T) {
	project := isolate(t)
	projectFile := filepath.Join(project, ConfigFileName)
	require.NoError(t, os.WriteFile(projectFile,
		[]byte("[kotlin]\npackage = \"com.acme\"\n"), 0644))
	t.Setenv("SHAPESHARE_GENERATE_POLICY", "skip")

	_, err := Load()
	require.NoError(t, err)
	in := GetConfigIntrospection()

	pkg := settingFor(t, in, "kotlin.package")
	assert.Equal(t, SourceProject, pkg.Source)
	assert.Equal(t, "com.acme", pkg.Value)
	assert.Contains(t, pkg.SourcePath, ConfigFileName)

	policy := settingFor(t, in, "generate.policy")
	assert.Equal(t, SourceEnvironment, policy.Source)
	assert.Equal(t, "SHAPESHARE_GENERATE_POLICY", policy.SourcePath)

	scala := settingFor(t, in, "scala.package")
	assert.Equal(t, SourceDefault, scala.Source)

	assert.Contains(t, in.ConfigFile, ConfigFileName)
}

func TestIntrospectionSettingsAreSorted(t *testing.T) {
	isolate(t)
	in := GetConfigIntrospection()
	require.NotEmpty(t, in.Settings)
	for i := 1; i < len(in.Settings); i++ {
		assert.Less(t, in.Settings[i-1].Key, in.Settings[i].Key)
	}
}

func TestEnvVarName(t *testing.T) {
	assert.Equal(t, "SHAPESHARE_KOTLIN_NO_VERSION_HEADER", EnvVarName("kotlin.no_version_header"))
}
