package server

import (
	"bytes"
	"html/template"
	"log"
	"net/http"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var docsMarkdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

var docsPageTemplate = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; max-width: 880px; margin: 0 auto; padding: 2rem 1.5rem; color: #1f2328; line-height: 1.6; }
h1, h2, h3 { border-bottom: 1px solid #d8dee4; padding-bottom: .3rem; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
th, td { border: 1px solid #d8dee4; padding: .4rem .7rem; text-align: left; }
th { background: #f6f8fa; }
code { background: #f6f8fa; padding: .15rem .35rem; border-radius: 4px; font-size: .92em; }
pre { background: #f6f8fa; padding: 1rem; border-radius: 6px; overflow-x: auto; }
pre code { background: none; padding: 0; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// handleDocsPage renders the current summary document as a standalone
// HTML page.
func (s *Server) handleDocsPage(w http.ResponseWriter, r *http.Request) {
	spec, doc, ok := s.current()
	if !ok {
		http.Error(w, "No API spec uploaded yet. POST a spec to /upload-spec first.", http.StatusNotFound)
		return
	}

	var body bytes.Buffer
	if err := docsMarkdown.Convert([]byte(doc), &body); err != nil {
		log.Printf("server: rendering docs page: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to render documentation")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := docsPageTemplate.Execute(w, struct {
		Title string
		Body  template.HTML
	}{
		Title: spec.Info.Title + " API Documentation",
		Body:  template.HTML(body.String()),
	}); err != nil {
		log.Printf("server: writing docs page: %v", err)
	}
}
