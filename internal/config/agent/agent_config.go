package agent

type AgentDefaults struct {
	Workspace          string `json:"workspace"`
	Model              string `json:"model"`
	MaxIters           int    `json:"maxIters"`
	PromptFormat       string `json:"promptFormat"`
	AttachmentBehavior string `json:"attachmentBehavior,omitempty"`
	DisableSafety      bool   `json:"disableSafety"`
	Stream             bool   `json:"stream"`
}

type AgentsConfig struct {
	Defaults AgentDefaults `json:"defaults"`
}

func defaultAgentDefaults() AgentDefaults {
	return AgentDefaults{
		Workspace:    "~/.stackpilot/workspace",
		Model:        "Llama3.1-8B-Instruct",
		MaxIters:     5,
		PromptFormat: "json",
		Stream:       true,
	}
}

func DefaultAgentsConfig() AgentsConfig {
	return AgentsConfig{Defaults: defaultAgentDefaults()}
}
