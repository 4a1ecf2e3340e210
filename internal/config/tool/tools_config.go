package tool

// DefaultReasoningTemplate is the step-by-step prompt the reasoning tool sends.
// {question} is replaced verbatim with the tool input.
const DefaultReasoningTemplate = `
You are an intelligent agent that solves math and logic problems. 
Provide a clear, step-by-step explanation in bullet points.

Question: {question}
Answer:
`

// WikipediaConfig configures the encyclopedia tool.
type WikipediaConfig struct {
	Lang     string `json:"lang" yaml:"lang"`
	TopK     int    `json:"topK" yaml:"topK"`
	MaxChars int    `json:"maxChars" yaml:"maxChars"`
	APIBase  string `json:"apiBase,omitempty" yaml:"apiBase,omitempty"` // overrides https://{lang}.wikipedia.org/w/api.php
}

// ReasoningConfig configures the step-by-step reasoning tool.
type ReasoningConfig struct {
	Template string `json:"template" yaml:"template"`
}

// ToolsConfig groups all tool-level settings.
type ToolsConfig struct {
	Wikipedia WikipediaConfig `json:"wikipedia" yaml:"wikipedia"`
	Reasoning ReasoningConfig `json:"reasoning" yaml:"reasoning"`
}

func DefaultToolConfigs() ToolsConfig {
	return ToolsConfig{
		Wikipedia: WikipediaConfig{Lang: "en", TopK: 3, MaxChars: 4000},
		Reasoning: ReasoningConfig{Template: DefaultReasoningTemplate},
	}
}
