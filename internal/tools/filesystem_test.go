package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pkg"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# demo\n"), 0o644))
	return dir
}

func TestResolvePathRejectsEscape(t *testing.T) {
	ws := newWorkspace(t)

	_, err := resolvePath("../etc/passwd", ws)
	assert.Error(t, err)
	_, err = resolvePath("/etc/passwd", ws)
	assert.Error(t, err)
	_, err = resolvePath("x", "")
	assert.ErrorIs(t, err, errNoWorkspace)

	root, err := filepath.EvalSymlinks(ws)
	require.NoError(t, err)
	p, err := resolvePath(filepath.Join(ws, "main.go"), ws)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "main.go"), p)

	p, err = resolvePath("pkg/new/file.go", ws)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "pkg", "new", "file.go"), p)
}

func TestResolvePathRejectsSymlink(t *testing.T) {
	ws := newWorkspace(t)
	if err := os.Symlink("/etc/hosts", filepath.Join(ws, "hosts")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	_, err := resolvePath("hosts", ws)
	assert.EqualError(t, err, "file hosts does not exist")
}

func TestResolvePathRejectsSymlinkedDir(t *testing.T) {
	ws := newWorkspace(t)
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.txt"), []byte("s3cret"), 0o644))
	if err := os.Symlink(outside, filepath.Join(ws, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	_, err := resolvePath("link/secret.txt", ws)
	assert.EqualError(t, err, "file link/secret.txt does not exist")
	_, err = resolvePath("link/new.txt", ws)
	assert.Error(t, err)

	_, err = NewViewFile(ws).RunImpl(context.Background(), map[string]any{"path": "link/secret.txt"})
	assert.Error(t, err)
	_, err = NewListFiles(ws).RunImpl(context.Background(), map[string]any{"path": "link"})
	assert.Error(t, err)
}

func TestResolvePathRejectsDanglingSymlink(t *testing.T) {
	ws := newWorkspace(t)
	target := filepath.Join(t.TempDir(), "later.txt")
	if err := os.Symlink(target, filepath.Join(ws, "dangling")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	_, err := resolvePath("dangling", ws)
	assert.Error(t, err)
}

func TestResolvePathFollowsInternalSymlink(t *testing.T) {
	ws := newWorkspace(t)
	if err := os.Symlink(filepath.Join(ws, "pkg"), filepath.Join(ws, "alias")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	root, err := filepath.EvalSymlinks(ws)
	require.NoError(t, err)
	p, err := resolvePath("alias/x.go", ws)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "pkg", "x.go"), p)
}

func TestListFiles(t *testing.T) {
	ws := newWorkspace(t)
	out, err := NewListFiles(ws).RunImpl(context.Background(), map[string]any{"path": "."})
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg/", "README.md", "main.go"}, out)

	out, err = NewListFiles(ws).RunImpl(context.Background(), map[string]any{"path": "main.go"})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, out)

	_, err = NewListFiles(ws).RunImpl(context.Background(), map[string]any{"path": "missing"})
	assert.Error(t, err)
}

func TestViewFile(t *testing.T) {
	ws := newWorkspace(t)
	out, err := NewViewFile(ws).RunImpl(context.Background(), map[string]any{"path": "README.md"})
	require.NoError(t, err)
	assert.Equal(t, "# demo\n", out)

	_, err = NewViewFile(ws).RunImpl(context.Background(), map[string]any{"path": "pkg"})
	assert.Error(t, err)
	_, err = NewViewFile(ws).RunImpl(context.Background(), map[string]any{})
	assert.Error(t, err)
}

func TestEditFileReplace(t *testing.T) {
	ws := newWorkspace(t)
	tool := NewEditFile(ws)

	_, err := tool.RunImpl(context.Background(), map[string]any{
		"path":    "main.go",
		"old_str": "func main() {}",
		"new_str": "func main() { println(1) }",
	})
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(ws, "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "package main\n\nfunc main() { println(1) }\n", string(data))

	_, err = tool.RunImpl(context.Background(), map[string]any{
		"path":    "main.go",
		"old_str": "nope",
		"new_str": "x",
	})
	assert.Error(t, err)
}

func TestEditFileRewrite(t *testing.T) {
	ws := newWorkspace(t)
	_, err := NewEditFile(ws).RunImpl(context.Background(), map[string]any{
		"path":    "README.md",
		"new_str": "# rewritten\n",
	})
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(ws, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# rewritten\n", string(data))

	_, err = NewEditFile(ws).RunImpl(context.Background(), map[string]any{"path": "README.md"})
	assert.Error(t, err)
}
