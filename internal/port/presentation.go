package port

import "html/template"

// Action is what a bound control triggers when used.
type Action struct {
	Method string
	Path   string
}

// Page is a set of named presentation targets. Writes to a target the page
// does not have are ignored.
type Page interface {
	Has(target string) bool
	SetHTML(target string, fragment template.HTML)
	SetText(target string, text string)
	SetAttr(target string, name string, value string)
	Bind(target string, action Action)
}
