package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stackpilot/stackpilot/internal/schema"
)

// resolvePath maps a tool-supplied path into workspace. Relative paths are
// joined to workspace; absolute paths must already lie inside it. Symlinks
// are resolved first, so a link pointing out of the workspace is treated as
// a missing file.
func resolvePath(path, workspace string) (string, error) {
	if workspace == "" {
		return "", errNoWorkspace
	}
	if path == "" {
		return "", errMissingArg("path")
	}
	root, err := filepath.Abs(workspace)
	if err != nil {
		return "", fmt.Errorf("resolve workspace: %w", err)
	}
	if r, err := filepath.EvalSymlinks(root); err == nil {
		root = r
	}
	p := path
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	resolved, err := evalExisting(filepath.Clean(p))
	if err != nil {
		return "", fmt.Errorf("file %s does not exist", path)
	}

	rel, err := filepath.Rel(root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		// Outside the workspace the file does not exist as far as the model
		// is concerned.
		return "", fmt.Errorf("file %s does not exist", path)
	}
	return resolved, nil
}

// evalExisting resolves symlinks in the deepest existing ancestor of p and
// re-appends the components that do not exist yet (edit_file may create them).
func evalExisting(p string) (string, error) {
	var missing []string
	cur := p
	for {
		r, err := filepath.EvalSymlinks(cur)
		if err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				r = filepath.Join(r, missing[i])
			}
			return r, nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		if _, lerr := os.Lstat(cur); lerr == nil {
			// Dangling symlink: its target is unknown, so refuse it.
			return "", err
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return p, nil
		}
		missing = append(missing, filepath.Base(cur))
		cur = parent
	}
}

// ---------------------------------------------------------------------------
// ListFiles
// ---------------------------------------------------------------------------

// ListFiles lists a directory of the workspace, directories first with a
// trailing slash.
type ListFiles struct {
	workspace string
}

func NewListFiles(workspace string) *ListFiles { return &ListFiles{workspace: workspace} }

func (t *ListFiles) Name() string { return "list_files" }
func (t *ListFiles) Description() string {
	return "List all files in a directory. If path is a file, returns the name of the file."
}
func (t *ListFiles) ParamsDefinition() map[string]schema.ParamDefinition {
	return map[string]schema.ParamDefinition{
		"path": {ParamType: "str", Description: "Path to a directory inside the workspace", Required: true},
	}
}

func (t *ListFiles) RunImpl(_ context.Context, args map[string]any) (any, error) {
	path := stringArg(args, "path")
	dp, err := resolvePath(path, t.workspace)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(dp)
	if err != nil {
		return nil, fmt.Errorf("file %s does not exist", path)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(dp)
	if err != nil {
		return nil, fmt.Errorf("list directory: %w", err)
	}

	var dirs, files []string
	for _, e := range entries {
		if e.Name() == ".git" {
			continue
		}
		if e.IsDir() {
			dirs = append(dirs, e.Name()+"/")
		} else {
			files = append(files, e.Name())
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)
	return append(append(make([]string, 0, len(dirs)+len(files)), dirs...), files...), nil
}

// ---------------------------------------------------------------------------
// ViewFile
// ---------------------------------------------------------------------------

// ViewFile returns the contents of a workspace file.
type ViewFile struct {
	workspace string
}

func NewViewFile(workspace string) *ViewFile { return &ViewFile{workspace: workspace} }

func (t *ViewFile) Name() string        { return "view_file" }
func (t *ViewFile) Description() string { return "View a file" }
func (t *ViewFile) ParamsDefinition() map[string]schema.ParamDefinition {
	return map[string]schema.ParamDefinition{
		"path": {ParamType: "str", Description: "Path to the file to view", Required: true},
	}
}

func (t *ViewFile) RunImpl(_ context.Context, args map[string]any) (any, error) {
	path := stringArg(args, "path")
	fp, err := resolvePath(path, t.workspace)
	if err != nil {
		return nil, err
	}
	if err := requireRegularFile(fp, path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fp)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}

// ---------------------------------------------------------------------------
// EditFile
// ---------------------------------------------------------------------------

// EditFile replaces old_str with new_str in a workspace file, or rewrites
// the whole file with new_str when old_str is absent.
type EditFile struct {
	workspace string
}

func NewEditFile(workspace string) *EditFile { return &EditFile{workspace: workspace} }

func (t *EditFile) Name() string { return "edit_file" }
func (t *EditFile) Description() string {
	return "Edit a file. If old_str is specified, only old_str is replaced with new_str, " +
		"otherwise the entire file is replaced by new_str."
}
func (t *EditFile) ParamsDefinition() map[string]schema.ParamDefinition {
	return map[string]schema.ParamDefinition{
		"path":    {ParamType: "str", Description: "Path to the file to edit", Required: true},
		"old_str": {ParamType: "str", Description: "The exact text to replace"},
		"new_str": {ParamType: "str", Description: "The replacement text", Required: true},
	}
}

func (t *EditFile) RunImpl(_ context.Context, args map[string]any) (any, error) {
	path := stringArg(args, "path")
	fp, err := resolvePath(path, t.workspace)
	if err != nil {
		return nil, err
	}
	newStr, ok := args["new_str"].(string)
	if !ok {
		return nil, errMissingArg("new_str")
	}
	if err := requireRegularFile(fp, path); err != nil {
		return nil, err
	}

	content := newStr
	if oldStr, ok := args["old_str"].(string); ok && oldStr != "" {
		data, err := os.ReadFile(fp)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		if !strings.Contains(string(data), oldStr) {
			return nil, fmt.Errorf("old_str not found in %s", path)
		}
		content = strings.Replace(string(data), oldStr, newStr, 1)
	}
	if err := os.WriteFile(fp, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}
	return "File successfully updated", nil
}

func requireRegularFile(fp, path string) error {
	info, err := os.Stat(fp)
	if err != nil {
		return fmt.Errorf("file %s does not exist", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
