package tools

// RegistryBuilder accumulates tools during the construction phase.
// Call Build() to produce an immutable Registry ready for use.
type RegistryBuilder struct {
	tools map[string]CustomTool
}

// NewRegistryBuilder returns a fresh RegistryBuilder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{tools: make(map[string]CustomTool)}
}

// WithTool adds a tool and returns the builder, enabling chaining.
func (b *RegistryBuilder) WithTool(tool CustomTool) *RegistryBuilder {
	b.tools[tool.Name()] = tool

	return b
}

// WithImpl wraps impl in a SingleMessageTool and adds it.
func (b *RegistryBuilder) WithImpl(impl Impl) *RegistryBuilder {
	return b.WithTool(NewSingleMessageTool(impl))
}

// Build produces an immutable Registry from the accumulated tools.
func (b *RegistryBuilder) Build() *Registry {
	tools := make(map[string]CustomTool, len(b.tools))
	for k, v := range b.tools {
		tools[k] = v
	}
	return &Registry{tools: tools}
}

// Settings configures the tools DefaultRegistry builds. Zero values take
// each tool's default.
type Settings struct {
	BraveAPIKey   string
	SearchTopK    int
	FetchMaxChars int
	Workspace     string
}

// DefaultRegistry registers the web tools and, when a workspace is set, the
// workspace file tools.
func DefaultRegistry(s Settings) *Registry {
	b := NewRegistryBuilder().
		WithImpl(NewWebSearch(s.BraveAPIKey, s.SearchTopK)).
		WithImpl(NewWebFetch(s.FetchMaxChars))
	if s.Workspace != "" {
		b.WithImpl(NewListFiles(s.Workspace)).
			WithImpl(NewViewFile(s.Workspace)).
			WithImpl(NewEditFile(s.Workspace))
	}
	return b.Build()
}
