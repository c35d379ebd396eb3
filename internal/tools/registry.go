package tools

import (
	"fmt"
	"strings"
)

// ToolName is the canonical name of a bundled custom tool.
type ToolName string

const (
	ToolWebSearch ToolName = "web_search"
	ToolWebFetch  ToolName = "web_fetch"
	ToolListFiles ToolName = "list_files"
	ToolViewFile  ToolName = "view_file"
	ToolEditFile  ToolName = "edit_file"
)

// Registry holds every custom tool the process can offer an agent.
type Registry struct {
	tools map[string]CustomTool
}

// GetTool returns the tool with the given name, or nil.
func (r *Registry) GetTool(name ToolName) CustomTool {
	return r.tools[string(name)]
}

// AllTools returns every registered tool.
func (r *Registry) AllTools() *ToolList {
	list := &ToolList{tools: make(map[string]CustomTool, len(r.tools))}
	for k, t := range r.tools {
		list.tools[k] = t
	}
	return list
}

// Select returns the named tools. Unknown names are an error listing what
// is available.
func (r *Registry) Select(names ...string) (*ToolList, error) {
	list := NewToolList()
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		t, ok := r.tools[n]
		if !ok {
			return nil, fmt.Errorf("unknown tool %q (available: %s)", n, strings.Join(r.AllTools().Names(), ", "))
		}
		list.Add(t)
	}
	return list, nil
}
