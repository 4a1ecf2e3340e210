package schema

import "context"

type AgentSettings struct {
	Model        string
	MaxIter      int
	Temperature  float64
	MaxTokens    int
	MemoryWindow int
}

func NewAgentSettings(model string, maxIter int, temperature float64, maxTokens int, memoryWindow int) AgentSettings {
	return AgentSettings{
		Model:        model,
		MaxIter:      maxIter,
		Temperature:  temperature,
		MaxTokens:    maxTokens,
		MemoryWindow: memoryWindow,
	}
}

// ChatOptions returns the per-request options derived from the settings.
func (s AgentSettings) ChatOptions() ChatOptions {
	return NewChatOptions(s.Model, s.MaxTokens, s.Temperature)
}

// Agent answers a conversation, deciding on its own which tools to call.
// history is the full transcript; its last message is the user's question.
type Agent interface {
	Run(ctx context.Context, history Messages, onProgress func(string)) (string, error)
}
