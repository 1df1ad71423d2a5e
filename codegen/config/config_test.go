package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, file string, args ...string) (*Config, error) {
	t.Helper()
	v, err := NewViper()
	require.NoError(t, err)
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(KeyCRDDir, DefaultCRDDir, "")
	flags.String(KeyNamespace, "", "")
	flags.Bool(KeyLeaderElection, true, "")
	flags.Int(KeyMaxRecursion, 0, "")
	flags.String("unrelated", "", "")
	require.NoError(t, flags.Parse(args))
	require.NoError(t, BindFlags(v, flags))
	return Load(v, file)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t, "")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "theleague.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`crd-dir: from/file
rbac-dir: rbac/from/file
app-name: league-from-file
max-recursion: 2
user-roles: false
`), 0o600))

	t.Run("file over defaults", func(t *testing.T) {
		cfg, err := load(t, file)
		require.NoError(t, err)
		assert.Equal(t, "from/file", cfg.CRDDir)
		assert.Equal(t, "rbac/from/file", cfg.RBACDir)
		assert.Equal(t, "league-from-file", cfg.AppName)
		assert.Equal(t, 2, cfg.MaxRecursion)
		assert.False(t, cfg.UserRoles)
		assert.True(t, cfg.Kustomize)
	})

	t.Run("environment over file", func(t *testing.T) {
		t.Setenv("THELEAGUE_CRD_DIR", "from/env")
		t.Setenv("THELEAGUE_USER_ROLES", "true")
		cfg, err := load(t, file)
		require.NoError(t, err)
		assert.Equal(t, "from/env", cfg.CRDDir)
		assert.True(t, cfg.UserRoles)
		assert.Equal(t, "rbac/from/file", cfg.RBACDir)
	})

	t.Run("flags over environment", func(t *testing.T) {
		t.Setenv("THELEAGUE_CRD_DIR", "from/env")
		cfg, err := load(t, file, "--crd-dir=from/flag", "--max-recursion=3")
		require.NoError(t, err)
		assert.Equal(t, "from/flag", cfg.CRDDir)
		assert.Equal(t, 3, cfg.MaxRecursion)
	})
}

func TestLoadNamespaceEnvironment(t *testing.T) {
	t.Setenv("NAMESPACE", "league-system")
	t.Setenv("WATCH_NAMESPACE", "league-games")
	cfg, err := load(t, "")
	require.NoError(t, err)
	assert.Equal(t, "league-system", cfg.Namespace)
	assert.Equal(t, "league-games", cfg.WatchNamespace)

	t.Setenv("THELEAGUE_NAMESPACE", "prefixed")
	cfg, err = load(t, "")
	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.Namespace)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := load(t, filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "reading config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errs   []string
	}{
		{
			name:   "default",
			mutate: func(*Config) {},
		},
		{
			name:   "empty prefix",
			mutate: func(c *Config) { c.CRDPrefix = "" },
		},
		{
			name: "empty directories",
			mutate: func(c *Config) {
				c.CRDDir = ""
				c.RBACDir = ""
			},
			errs: []string{"crd-dir must not be empty", "rbac-dir must not be empty"},
		},
		{
			name:   "bad namespace",
			mutate: func(c *Config) { c.WatchNamespace = "Games" },
			errs:   []string{"watch-namespace 'Games'"},
		},
		{
			name:   "bad app name",
			mutate: func(c *Config) { c.AppName = "the_league" },
			errs:   []string{"app-name 'the_league'"},
		},
		{
			name: "limits",
			mutate: func(c *Config) {
				c.MaxRecursion = -1
				c.MaxFields = 0
			},
			errs: []string{"max-recursion must not be negative", "schema-max-fields must be positive"},
		},
		{
			name:   "log level",
			mutate: func(c *Config) { c.LogLevel = "loud" },
			errs:   []string{"loud"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(&cfg)
			err := cfg.Validate()
			if len(test.errs) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, msg := range test.errs {
				assert.ErrorContains(t, err, msg)
			}
		})
	}
}
