package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/textmath/textmath/internal/schema"
	"github.com/textmath/textmath/internal/session"
)

const (
	pageTitle   = "Text to Math Solver & Knowledge Assistant"
	pageIcon    = "🧮"
	pageHeading = "🧮 Math & Knowledge Assistant using Google Gemma 2"

	// DefaultQuestion pre-fills the input box.
	DefaultQuestion = "I have 5 bananas and 7 grapes. I eat 2 bananas and give away 3 grapes. " +
		"Then I buy a dozen apples and 2 packs of blueberries. Each pack of blueberries contains 25 berries. " +
		"How many total pieces of fruit do I have at the end?"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type messageView struct {
	Role    string
	Content string
}

type flashView struct {
	Kind string
	Icon string
	Text string
}

type pageData struct {
	Title           string
	Icon            string
	Heading         string
	Fatal           string
	Messages        []messageView
	Flash           *flashView
	DefaultQuestion string
}

var flashIcons = map[session.FlashKind]string{
	session.FlashSuccess: "✅",
	session.FlashWarning: "⚠️",
	session.FlashError:   "❌",
}

func newPageData() pageData {
	return pageData{Title: pageTitle, Icon: pageIcon, Heading: pageHeading, DefaultQuestion: DefaultQuestion}
}

func transcriptView(msgs schema.Messages) []messageView {
	out := make([]messageView, 0, msgs.Len())
	for _, m := range msgs.Messages {
		out = append(out, messageView{Role: string(m.Role), Content: m.Content})
	}
	return out
}

func renderPage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = pageTmpl.Execute(w, data)
}
