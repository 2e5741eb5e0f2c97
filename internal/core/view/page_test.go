package view

import (
	"html/template"

	"github.com/rl1809/fitgear/internal/port"
)

// recordingPage captures writes for a fixed set of targets.
type recordingPage struct {
	targets map[string]bool
	html    map[string]template.HTML
	text    map[string]string
	attrs   map[string]map[string]string
	actions map[string]port.Action
}

func newRecordingPage(targets ...string) *recordingPage {
	p := &recordingPage{
		targets: make(map[string]bool),
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

func (p *recordingPage) Has(target string) bool { return p.targets[target] }

func (p *recordingPage) SetHTML(target string, fragment template.HTML) {
	if p.targets[target] {
		p.html[target] = fragment
	}
}

func (p *recordingPage) SetText(target string, text string) {
	if p.targets[target] {
		p.text[target] = text
	}
}

func (p *recordingPage) SetAttr(target string, name string, value string) {
	if !p.targets[target] {
		return
	}
	if p.attrs[target] == nil {
		p.attrs[target] = make(map[string]string)
	}
	p.attrs[target][name] = value
}

func (p *recordingPage) Bind(target string, action port.Action) {
	if p.targets[target] {
		p.actions[target] = action
	}
}
