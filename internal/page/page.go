// Package page renders the portfolio page: a fixed tree of presentational
// sections, the toaster overlay and the global decorative styles the page
// mounts into its document.
package page

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"time"
)

// Page renders documents for one composed tree. It is immutable after New
// and safe for concurrent use.
type Page struct {
	tree    Node
	tmpl    *template.Template
	content *Content
	theme   Theme
	now     func() time.Time
}

// Option configures a Page.
type Option func(*Page)

// WithTheme sets the design token values. Empty tokens keep their defaults.
func WithTheme(t Theme) Option {
	return func(p *Page) { p.theme = t.WithDefaults() }
}

// WithContent replaces the embedded site copy.
func WithContent(c *Content) Option {
	return func(p *Page) { p.content = c }
}

// WithClock sets the time source used for the footer year.
func WithClock(now func() time.Time) Option {
	return func(p *Page) { p.now = now }
}

// New composes the page and parses its templates. With no options it uses
// the default theme and the embedded content.
func New(opts ...Option) (*Page, error) {
	p := &Page{
		tree:  Compose(),
		theme: DefaultTheme,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.theme.Validate(); err != nil {
		return nil, err
	}
	if p.content == nil {
		c, err := DefaultContent()
		if err != nil {
			return nil, err
		}
		p.content = c
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	for _, name := range []string{"document", "toast"} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("parse templates: missing %q", name)
		}
	}
	for _, k := range Leaves(p.tree) {
		if tmpl.Lookup(string(k)) == nil {
			return nil, fmt.Errorf("parse templates: no template for section %q", k)
		}
	}
	p.tmpl = tmpl
	return p, nil
}

// Must is New that panics on error. The templates and content are embedded,
// so a failure is a build defect.
func Must(opts ...Option) *Page {
	p, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Tree returns a copy of the render tree.
func (p *Page) Tree() Node {
	return p.tree.clone()
}

// Content returns the site copy the page renders.
func (p *Page) Content() *Content {
	return p.content
}

// Theme returns the design token values.
func (p *Page) Theme() Theme {
	return p.theme
}

// Mount injects the page's global styles into head. The returned function
// removes them again and must be called when the document is done.
func (p *Page) Mount(head *Head) (unmount func()) {
	return head.Inject(GlobalStyles())
}

// Render writes a complete document with the page's global styles mounted
// for the duration of the call.
func (p *Page) Render(w io.Writer) error {
	head := NewHead()
	unmount := p.Mount(head)
	defer unmount()
	return p.RenderDocument(w, head)
}

type view struct {
	Title   string
	Content *Content
	Year    int
	Sheets  []StyleSheet
	Body    template.HTML
}

// RenderDocument writes a complete document whose <head> carries the theme
// and whatever sheets are currently mounted in head.
func (p *Page) RenderDocument(w io.Writer, head *Head) error {
	v := &view{
		Title:   p.content.Title,
		Content: p.content,
		Year:    p.now().Year(),
		Sheets:  append([]StyleSheet{p.theme.Sheet()}, head.Sheets()...),
	}
	if v.Title == "" {
		v.Title = p.content.Name
	}

	var body bytes.Buffer
	if err := p.renderNode(&body, p.tree, v); err != nil {
		return err
	}
	v.Body = template.HTML(body.String())

	var doc bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&doc, "document", v); err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	_, err := doc.WriteTo(w)
	return err
}

func (p *Page) renderNode(w *bytes.Buffer, n Node, v *view) error {
	if n.IsLeaf() {
		if err := p.tmpl.ExecuteTemplate(w, string(n.Kind), v); err != nil {
			return fmt.Errorf("render %s: %w", n.Kind, err)
		}
		return nil
	}

	w.WriteString("<" + n.Tag)
	if n.Class != "" {
		w.WriteString(` class="` + template.HTMLEscapeString(n.Class) + `"`)
	}
	w.WriteString(">\n")
	for _, c := range n.Children {
		if err := p.renderNode(w, c, v); err != nil {
			return err
		}
	}
	w.WriteString("</" + n.Tag + ">\n")
	return nil
}

// RenderToast writes t as a fragment that htmx appends to the toaster.
func (p *Page) RenderToast(w io.Writer, t Toast) error {
	if err := p.tmpl.ExecuteTemplate(w, "toast", t); err != nil {
		return fmt.Errorf("render toast: %w", err)
	}
	return nil
}
