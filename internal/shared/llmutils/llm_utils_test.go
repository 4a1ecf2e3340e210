package llmutils

import (
	"testing"

	"github.com/textmath/textmath/internal/schema"
)

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("short string changed: %q", got)
	}
	if got := Truncate("héllo wörld", 5); got != "héllo..." {
		t.Errorf("unexpected truncation %q", got)
	}
}

func TestStripThink(t *testing.T) {
	in := "<think>\nlet me see\n</think>\nFinal Answer: 84"
	if got := StripThink(in); got != "Final Answer: 84" {
		t.Errorf("unexpected %q", got)
	}
}

func TestToolHint(t *testing.T) {
	hint := ToolHint([]schema.ToolCallRequest{
		{Name: "Wikipedia", Arguments: map[string]any{"query": "Alan Turing"}},
		{Name: "Calculator"},
	})
	if hint != `Wikipedia("Alan Turing"), Calculator` {
		t.Errorf("unexpected hint %q", hint)
	}
}
