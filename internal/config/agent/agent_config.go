package agent

const (
	// ModeReAct drives tools through a Thought/Action/Observation text protocol.
	ModeReAct = "react"
	// ModeTools uses the provider's native function calling.
	ModeTools = "tools"
)

type AgentDefaults struct {
	Model        string  `json:"model" yaml:"model"`
	MaxTokens    int     `json:"maxTokens" yaml:"maxTokens"`
	Temperature  float64 `json:"temperature" yaml:"temperature"`
	MaxToolIter  int     `json:"maxToolIterations" yaml:"maxToolIterations"`
	MemoryWindow int     `json:"memoryWindow" yaml:"memoryWindow"`
	Mode         string  `json:"mode" yaml:"mode"`
	Greeting     string  `json:"greeting" yaml:"greeting"`
}

type AgentsConfig struct {
	Defaults AgentDefaults `json:"defaults" yaml:"defaults"`
}

func defaultAgentDefaults() AgentDefaults {
	return AgentDefaults{
		Model:        "groq/gemma2-9b-it",
		MaxTokens:    2048,
		Temperature:  0.0,
		MaxToolIter:  15,
		MemoryWindow: 20,
		Mode:         ModeReAct,
		Greeting:     "Hi, I'm your math and knowledge assistant. Ask me anything!",
	}
}

func DefaultAgentsConfig() AgentsConfig {
	return AgentsConfig{Defaults: defaultAgentDefaults()}
}
