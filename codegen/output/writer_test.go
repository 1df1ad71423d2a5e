package output

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/grafana/codejen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bexxmodd/theleague/codegen"
)

func file(path, data string) codejen.File {
	return codejen.File{RelativePath: path, Data: []byte(data)}
}

func readDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

func TestWriter_Write(t *testing.T) {
	root := filepath.Join(t.TempDir(), "config", "crds")
	w := NewWriter(root)
	files := codejen.Files{
		file("standard/b.yaml", "kind: B\n"),
		file("standard/a.yaml", "kind: A\n"),
	}
	require.NoError(t, w.Write(context.Background(), files))

	a, err := os.ReadFile(filepath.Join(root, "standard", "a.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "kind: A\n", string(a))
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, readDir(t, filepath.Join(root, "standard")))

	info, err := os.Stat(filepath.Join(root, "standard", "b.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerms), info.Mode().Perm())

	// Rerunning with the same content leaves identical bytes.
	require.NoError(t, w.Write(context.Background(), files))
	again, err := os.ReadFile(filepath.Join(root, "standard", "a.yaml"))
	require.NoError(t, err)
	assert.Equal(t, a, again)

	// Changed content replaces the file.
	require.NoError(t, w.Write(context.Background(), codejen.Files{file("standard/a.yaml", "kind: A2\n")}))
	changed, err := os.ReadFile(filepath.Join(root, "standard", "a.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "kind: A2\n", string(changed))
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, readDir(t, filepath.Join(root, "standard")))
}

func TestWriter_FailureContinuesAndReports(t *testing.T) {
	root := t.TempDir()
	// The second target is a non-empty directory, so renaming onto it fails.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "2-second.yaml", "occupied"), 0755))

	w := NewWriter(root)
	err := w.Write(context.Background(), codejen.Files{
		file("3-third.yaml", "third\n"),
		file("1-first.yaml", "first\n"),
		file("2-second.yaml", "second\n"),
	})
	require.Error(t, err)
	assert.Equal(t, "WriteError", codegen.ErrorKind(err))

	var writeErr *codegen.WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, filepath.Join(root, "2-second.yaml"), writeErr.Path)
	assert.Equal(t, "replace", writeErr.Op)

	first, err := os.ReadFile(filepath.Join(root, "1-first.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(first))
	third, err := os.ReadFile(filepath.Join(root, "3-third.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "third\n", string(third))

	// No temporary files are left behind.
	assert.Equal(t, []string{"1-first.yaml", "2-second.yaml", "3-third.yaml"}, readDir(t, root))
}

func TestWriter_DuplicatePaths(t *testing.T) {
	root := t.TempDir()
	err := NewWriter(root).Write(context.Background(), codejen.Files{
		file("a.yaml", "one\n"),
		file("a.yaml", "two\n"),
	})
	require.Error(t, err)
	var writeErr *codegen.WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, "plan", writeErr.Op)

	a, err := os.ReadFile(filepath.Join(root, "a.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "one\n", string(a))
}

func TestWriter_Prepare(t *testing.T) {
	root := filepath.Join(t.TempDir(), "config", "rbac")
	require.NoError(t, NewWriter(root).Prepare())
	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	blocked := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0644))
	err = NewWriter(filepath.Join(blocked, "sub")).Prepare()
	assert.Equal(t, "WriteError", codegen.ErrorKind(err))
}
