package schema

// Model is one entry of the server's model registry.
type Model struct {
	Identifier string         `json:"identifier"`
	ProviderID string         `json:"provider_id"`
	ModelType  string         `json:"model_type,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Shield is one registered safety shield.
type Shield struct {
	Identifier string         `json:"identifier"`
	ProviderID string         `json:"provider_id"`
	Params     map[string]any `json:"params,omitempty"`
}
