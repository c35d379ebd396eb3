package agent

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stackpilot/stackpilot/internal/github"
)

// fileTreeDepth is how deep the issue prompt's file tree goes.
const fileTreeDepth = 2

// skipDirs are never shown in the file tree.
var skipDirs = map[string]bool{".git": true, "node_modules": true, "vendor": true}

// ContextBuilder assembles the opening message of an issue-solving session.
type ContextBuilder struct {
	workspace string
}

// NewContextBuilder creates a ContextBuilder rooted at workspace.
func NewContextBuilder(workspace string) *ContextBuilder {
	return &ContextBuilder{workspace: expandHome(workspace)}
}

// Workspace returns the expanded workspace path.
func (cb *ContextBuilder) Workspace() string { return cb.workspace }

// BuildIssueMessage returns the user message that opens an issue session:
// working directory, file tree and problem statement.
func (cb *ContextBuilder) BuildIssueMessage(issue github.Issue, details github.IssueDetails) (string, error) {
	tree, err := FileTree(cb.workspace, fileTreeDepth)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`<working_directory>
%s
</working_directory>

<file_tree>
%s
</file_tree>

<problem_statement>
Issue: %s
Issue title: %s
Issue body: %s
</problem_statement>

You are in the working directory as specified in <working_directory>. Paths are relative to it.
I have included the top level files and directories in the repository in <file_tree>.
Please start by listing out and viewing files in the repository to understand the problem,
then use edit_file to make the changes that solve it. Explain your reasoning before you make any edits.`,
		cb.workspace, strings.Join(tree, "\n"), issue, details.Title, details.Body), nil
}

// FileTree lists root up to depth levels, directories with a trailing slash
// before the files of the same directory.
func FileTree(root string, depth int) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("file tree: %w", err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	var out []string
	var walk func(dir, rel string, level int) error
	walk = func(dir, rel string, level int) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		var dirs, files []fs.DirEntry
		for _, e := range entries {
			if e.IsDir() {
				if !skipDirs[e.Name()] {
					dirs = append(dirs, e)
				}
			} else {
				files = append(files, e)
			}
		}
		sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name() < dirs[j].Name() })
		sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

		for _, d := range dirs {
			p := filepath.Join(rel, d.Name())
			out = append(out, p+"/")
			if level+1 < depth {
				if err := walk(filepath.Join(dir, d.Name()), p, level+1); err != nil {
					return err
				}
			}
		}
		for _, f := range files {
			out = append(out, filepath.Join(rel, f.Name()))
		}
		return nil
	}
	if err := walk(root, "", 0); err != nil {
		return nil, fmt.Errorf("file tree: %w", err)
	}
	return out, nil
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
