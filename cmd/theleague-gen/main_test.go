package main

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bexxmodd/theleague/codegen"
)

var setupOnce sync.Once

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	setupOnce.Do(setup)
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAllCommand(t *testing.T) {
	root := t.TempDir()
	crdDir := filepath.Join(root, "crds")
	rbacDir := filepath.Join(root, "rbac")
	_, err := execute(t, "all", "--crd-dir", crdDir, "--rbac-dir", rbacDir, "--log-level", "error")
	require.NoError(t, err)

	for _, path := range []string{
		filepath.Join(crdDir, "league.bexxmodd_com.theleagues.yaml"),
		filepath.Join(crdDir, "kustomization.yaml"),
		filepath.Join(rbacDir, "role.yaml"),
		filepath.Join(rbacDir, "leader_election_role.yaml"),
	} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}
}

func TestCommand_InvalidConfig(t *testing.T) {
	root := t.TempDir()
	_, err := execute(t, "crds", "--crd-dir", filepath.Join(root, "crds"), "--app-name", "The_League", "--log-level", "error")
	require.Error(t, err)
	assert.ErrorContains(t, err, "app-name")
	assert.Equal(t, "Error", codegen.ErrorKind(err))
	_, statErr := os.Stat(filepath.Join(root, "crds"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, currentBuild().version+"\n", out)

	out, err = execute(t, "version", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "theleague-gen "+currentBuild().version)
	assert.Contains(t, out, "built at:")
}
