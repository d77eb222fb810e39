// Package export provides the toolbar helper that exports the current document
// as plain text, Markdown or HTML.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/dixieflatline76/Shelf/pkg/toolbar"
	"github.com/dixieflatline76/Shelf/util/log"
)

const (
	// Extension is the namespace extension of export items.
	Extension = ".export"
	// Template is the identifier whose document metadata describes every export item.
	Template = "ExportTemplate"
	// IconName is the image used when the document names none.
	IconName = "export"
)

// Export item names.
const (
	Text     = "Text"
	Markdown = "Markdown"
	HTML     = "HTML"
)

// Document is implemented by toolbar owners whose content can be exported.
type Document interface {
	DocumentTitle() string
	DocumentText() string                      // Markdown source of the document.
	SaveExport(name string, data []byte) error // Stores an exported file under a suggested name.
}

type format struct {
	name    string
	ext     string
	tooltip string
	render  func(h *Helper, title string, src []byte) ([]byte, error)
}

var formats = []format{
	{name: Text, ext: ".txt", tooltip: "Export as plain text", render: (*Helper).renderText},
	{name: Markdown, ext: ".md", tooltip: "Export as Markdown", render: (*Helper).renderMarkdown},
	{name: HTML, ext: ".html", tooltip: "Export as a web page", render: (*Helper).renderHTML},
}

var page = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}</body>
</html>
`))

// Helper contributes one toolbar item per export format.
type Helper struct {
	md goldmark.Markdown
}

// New creates the export helper.
func New() *Helper {
	return &Helper{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// NamespaceExtension implements toolbar.Helper.
func (h *Helper) NamespaceExtension() string {
	return Extension
}

// TemplateIdentifier implements toolbar.Helper.
func (h *Helper) TemplateIdentifier() string {
	return Template
}

// AllowedItems implements toolbar.Helper.
func (h *Helper) AllowedItems() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.name
	}
	return names
}

// Describe implements toolbar.Describer.
func (h *Helper) Describe(name string) *toolbar.ItemInfo {
	f, ok := lookup(name)
	if !ok {
		return nil
	}
	return &toolbar.ItemInfo{Label: f.name, ToolTip: f.tooltip}
}

// Finalize implements toolbar.Helper. Items are bound to the toolbar owner only
// when they are inserted; owners that cannot export get a disabled item.
func (h *Helper) Finalize(item *toolbar.Item, tb *toolbar.Toolbar, willInsert bool) *toolbar.Item {
	f, ok := lookup(strings.TrimSuffix(item.Identifier, Extension))
	if !ok {
		return nil
	}
	if item.IconName == "" && item.Icon == nil {
		item.IconName = IconName
	}
	if !willInsert {
		return item
	}

	doc, ok := tb.Owner().(Document)
	if !ok {
		item.Enabled = false
		return item
	}
	item.Action = func() {
		if err := h.Export(doc, f.name); err != nil {
			log.Printf("Export failed: %v", err)
		}
	}
	return item
}

// Export renders doc in the named format and hands the result back to doc.
func (h *Helper) Export(doc Document, name string) error {
	f, ok := lookup(name)
	if !ok {
		return fmt.Errorf("unknown export format %q", name)
	}
	title := doc.DocumentTitle()
	data, err := f.render(h, title, []byte(doc.DocumentText()))
	if err != nil {
		return fmt.Errorf("rendering %s: %w", f.name, err)
	}
	file := FileName(title, f.ext)
	if err := doc.SaveExport(file, data); err != nil {
		return fmt.Errorf("saving %s: %w", file, err)
	}
	log.Debugf("Exported %q as %s", title, file)
	return nil
}

// Render converts Markdown source to the named format.
func (h *Helper) Render(name, title string, src []byte) ([]byte, error) {
	f, ok := lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown export format %q", name)
	}
	return f.render(h, title, src)
}

func (h *Helper) renderMarkdown(_ string, src []byte) ([]byte, error) {
	return src, nil
}

func (h *Helper) renderHTML(title string, src []byte) ([]byte, error) {
	var body bytes.Buffer
	if err := h.md.Convert(src, &body); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// renderText strips the Markdown syntax, keeping one line per block.
func (h *Helper) renderText(_ string, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	doc := h.md.Parser().Parse(text.NewReader(src))
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			switch node := n.(type) {
			case *ast.Text:
				buf.Write(node.Segment.Value(src))
				if node.SoftLineBreak() || node.HardLineBreak() {
					buf.WriteByte('\n')
				}
			case *ast.String:
				buf.Write(node.Value)
			case *ast.CodeBlock, *ast.FencedCodeBlock:
				lines := n.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					buf.Write(seg.Value(src))
				}
			}
			return ast.WalkContinue, nil
		}
		if n.Type() == ast.TypeBlock && buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
			buf.WriteByte('\n')
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName suggests a file name for an export of the titled document.
func FileName(title, ext string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = "Untitled"
	}
	return name + ext
}

func lookup(name string) (format, bool) {
	for _, f := range formats {
		if f.name == name {
			return f, true
		}
	}
	return format{}, false
}
