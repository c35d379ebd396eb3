package tools

import (
	"sort"

	"github.com/stackpilot/stackpilot/internal/schema"
)

// ToolList holds the custom tools of one agent, keyed by name.
type ToolList struct {
	tools map[string]CustomTool
}

func NewToolList(ts ...CustomTool) *ToolList {
	list := ToolList{tools: make(map[string]CustomTool, len(ts))}
	for _, t := range ts {
		list.tools[t.Name()] = t
	}

	return &list
}

// Get returns the tool with the given name, or nil if not found.
func (l *ToolList) Get(name string) CustomTool {
	if l == nil {
		return nil
	}
	return l.tools[name]
}

// Add registers a new tool, replacing any existing tool with the same name.
func (l *ToolList) Add(t CustomTool) CustomTool {
	l.tools[t.Name()] = t

	return t
}

// Len returns the number of tools.
func (l *ToolList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.tools)
}

// Names returns the tool names in sorted order.
func (l *ToolList) Names() []string {
	if l == nil {
		return nil
	}
	names := make([]string, 0, len(l.tools))
	for n := range l.tools {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Tools returns the tools ordered by name.
func (l *ToolList) Tools() []CustomTool {
	names := l.Names()
	out := make([]CustomTool, 0, len(names))
	for _, n := range names {
		out = append(out, l.tools[n])
	}
	return out
}

// Definitions returns the function_call definitions of every tool, ordered
// by name.
func (l *ToolList) Definitions() []schema.ToolDefinition {
	tools := l.Tools()
	defs := make([]schema.ToolDefinition, 0, len(tools))
	for _, t := range tools {
		defs = append(defs, Definition(t))
	}
	return defs
}
