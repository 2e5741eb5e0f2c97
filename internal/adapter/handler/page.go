package handler

import (
	"html/template"

	"github.com/rl1809/fitgear/internal/core/view"
	"github.com/rl1809/fitgear/internal/port"
)

// documentPage is the port.Page behind every HTML response. Render calls
// fill it in, then the layout templates read it back by target name.
type documentPage struct {
	Title         string
	Flash         string
	CheckoutToken string

	targets map[string]bool
	html    map[string]template.HTML
	text    map[string]string
	attrs   map[string]map[string]string
	actions map[string]port.Action
}

var _ port.Page = (*documentPage)(nil)

// newDocumentPage declares the page's targets. The cart badge sits in the
// shared header, so every page has it.
func newDocumentPage(title string, targets ...string) *documentPage {
	p := &documentPage{
		Title:   title,
		targets: map[string]bool{view.TargetCartCount: true},
		html:    make(map[string]template.HTML),
		text:    make(map[string]string),
		attrs:   make(map[string]map[string]string),
		actions: make(map[string]port.Action),
	}
	for _, t := range targets {
		p.targets[t] = true
	}
	return p
}

func (p *documentPage) Has(target string) bool {
	return p.targets[target]
}

func (p *documentPage) SetHTML(target string, fragment template.HTML) {
	if p.Has(target) {
		p.html[target] = fragment
	}
}

func (p *documentPage) SetText(target string, text string) {
	if p.Has(target) {
		p.text[target] = text
	}
}

func (p *documentPage) SetAttr(target string, name string, value string) {
	if !p.Has(target) {
		return
	}
	if p.attrs[target] == nil {
		p.attrs[target] = make(map[string]string)
	}
	p.attrs[target][name] = value
}

func (p *documentPage) Bind(target string, action port.Action) {
	if p.Has(target) {
		p.actions[target] = action
	}
}

func (p *documentPage) HTML(target string) template.HTML {
	return p.html[target]
}

func (p *documentPage) Text(target string) string {
	return p.text[target]
}

func (p *documentPage) Attr(target, name string) string {
	return p.attrs[target][name]
}

// Action returns the bound action, or nil so templates can skip the control.
func (p *documentPage) Action(target string) *port.Action {
	a, ok := p.actions[target]
	if !ok {
		return nil
	}
	return &a
}
