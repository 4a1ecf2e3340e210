package agent

import (
	"fmt"
	"strings"

	"github.com/textmath/textmath/internal/schema"
	"github.com/textmath/textmath/internal/tools"
)

const reactTemplate = `Answer the following questions as best you can. You have access to the following tools:

%s

Use the following format:

Question: the input question you must answer
Thought: you should always think about what to do
Action: the action to take, should be one of [%s]
Action Input: the input to the action
Observation: the result of the action
... (this Thought/Action/Action Input/Observation can repeat N times)
Thought: I now know the final answer
Final Answer: the final answer to the original input question

Begin!
%s
Question: %s
Thought:%s`

const toolsSystemPrompt = `You are a math and knowledge assistant.
Use the wikipedia tool for general knowledge, the calculator tool for arithmetic and the reasoning tool for logic questions that need step-by-step explanations.
Call tools directly when they help, then reply with the final answer only.`

// ContextBuilder assembles prompts and message lists for the LLM.
type ContextBuilder struct {
	tools        *tools.Registry
	memoryWindow int
}

// NewContextBuilder creates a ContextBuilder. memoryWindow bounds how many
// prior transcript messages are passed as context; 0 means all.
func NewContextBuilder(registry *tools.Registry, memoryWindow int) *ContextBuilder {
	return &ContextBuilder{tools: registry, memoryWindow: memoryWindow}
}

// Split separates the latest user message (the question) from the messages
// before it. Only user and assistant messages are kept as context.
func (cb *ContextBuilder) Split(history schema.Messages) (string, []schema.Message, error) {
	msgs := history.Messages
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role != schema.RoleUser {
			continue
		}
		question := strings.TrimSpace(msgs[i].Content)
		if question == "" {
			break
		}
		var prior []schema.Message
		for _, m := range msgs[:i] {
			if m.Role == schema.RoleUser || m.Role == schema.RoleAssistant {
				prior = append(prior, m)
			}
		}
		if cb.memoryWindow > 0 && len(prior) > cb.memoryWindow {
			prior = prior[len(prior)-cb.memoryWindow:]
		}
		return question, prior, nil
	}
	return "", nil, ErrNoQuestion
}

// BuildReActPrompt renders the text-protocol prompt for one iteration.
func (cb *ContextBuilder) BuildReActPrompt(question string, prior []schema.Message, scratchpad string) string {
	return fmt.Sprintf(reactTemplate,
		cb.tools.Describe(),
		strings.Join(cb.tools.Names(), ", "),
		previousConversation(prior),
		question,
		scratchpad,
	)
}

// BuildToolsConversation returns system prompt + prior messages + question.
func (cb *ContextBuilder) BuildToolsConversation(question string, prior []schema.Message) schema.Messages {
	conv := schema.NewMessages(schema.NewSystemMessage(toolsSystemPrompt))
	for _, m := range prior {
		conv.Add(schema.Message{Role: m.Role, Content: m.Content})
	}
	conv.AddUser(question)
	return conv
}

func previousConversation(prior []schema.Message) string {
	if len(prior) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\nPrevious conversation:\n")
	for _, m := range prior {
		who := "User"
		if m.Role == schema.RoleAssistant {
			who = "Assistant"
		}
		fmt.Fprintf(&sb, "%s: %s\n", who, m.Content)
	}
	return sb.String()
}
