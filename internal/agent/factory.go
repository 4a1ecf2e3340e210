package agent

import (
	"fmt"

	agentcfg "github.com/textmath/textmath/internal/config/agent"
	"github.com/textmath/textmath/internal/schema"
	"github.com/textmath/textmath/internal/tools"
)

// New creates the agent for mode ("react" or "tools"). An empty mode
// selects react.
func New(mode string, provider schema.LLMProvider, settings schema.AgentSettings, registry *tools.Registry) (schema.Agent, error) {
	if settings.MaxIter <= 0 {
		settings.MaxIter = 15
	}
	switch mode {
	case "", agentcfg.ModeReAct:
		return NewReActAgent(provider, settings, registry), nil
	case agentcfg.ModeTools:
		return NewToolCallingAgent(provider, settings, registry), nil
	default:
		return nil, fmt.Errorf("unknown agent mode %q (want %q or %q)", mode, agentcfg.ModeReAct, agentcfg.ModeTools)
	}
}
