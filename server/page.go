package server

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/miosa/osa-chatview/message"
)

// The page loads KaTeX auto-render for the math spans and the mermaid
// runtime for diagram blocks; fragments carry neither.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Conversation</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/katex.min.css">
<script defer src="https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/katex.min.js"></script>
<script defer src="https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/contrib/auto-render.min.js"
  onload="renderMathInElement(document.body, {delimiters: [{left: '\\[', right: '\\]', display: true}, {left: '\\(', right: '\\)', display: false}]});"></script>
<script type="module">
import mermaid from "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs";
mermaid.initialize({ startOnLoad: true });
</script>
<style>
{{.CSS}}
</style>
</head>
<body>
<div class="relative mx-auto max-w-2xl px-4">
{{range .Messages}}{{.}}{{end}}
</div>
</body>
</html>
`))

type pageData struct {
	CSS      template.CSS
	Messages []template.HTML
}

// WriteFragments renders conv as concatenated message fragments, filtered
// the same way the /render endpoint filters them.
func (s *Server) WriteFragments(w io.Writer, conv message.Conversation) error {
	return s.fragments.RenderConversation(w, conv)
}

// WritePage renders conv as a standalone HTML document.
func (s *Server) WritePage(w io.Writer, conv message.Conversation) error {
	var css bytes.Buffer
	if err := s.highlighter.WriteCSS(&css); err != nil {
		return fmt.Errorf("write css: %w", err)
	}

	data := pageData{CSS: template.CSS(css.String())}
	for i, m := range conv.Messages {
		var buf bytes.Buffer
		if err := s.fragments.Render(&buf, m); err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
		data.Messages = append(data.Messages, template.HTML(buf.String()))
	}
	return pageTemplate.Execute(w, data)
}
