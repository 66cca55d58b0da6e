package scene

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagRe  = regexp.MustCompile(`<([a-zA-Z][\w-]*)((?:\s+[^\s=/>]+(?:="[^"]*")?)*)\s*(/?)>`)
	attrRe = regexp.MustCompile(`([^\s=/>]+)(?:="([^"]*)")?`)
)

type attr struct {
	name, value string
}

// element collects the attributes a line type writes into its template.
// It implements registry.Target.
type element struct {
	order []string
	attrs map[string][]attr
}

func newElement() *element {
	return &element{attrs: map[string][]attr{}}
}

// SetAttribute records name=value for the first template element called el.
func (e *element) SetAttribute(el, name, value string) {
	list, seen := e.attrs[el]
	if !seen {
		e.order = append(e.order, el)
	}
	for i := range list {
		if list[i].name == name {
			list[i].value = value
			return
		}
	}
	e.attrs[el] = append(list, attr{name, value})
}

// fill applies the recorded attributes to tmpl. Like a DOM querySelector,
// only the first element of each name is updated. Elements that do not
// appear in the template are appended as empty elements.
func (e *element) fill(tmpl string) string {
	done := map[string]bool{}
	out := tagRe.ReplaceAllStringFunc(tmpl, func(tag string) string {
		m := tagRe.FindStringSubmatch(tag)
		name := m[1]
		set, ok := e.attrs[name]
		if !ok || done[name] {
			return tag
		}
		done[name] = true
		return writeTag(name, merge(parseAttrs(m[2]), set), m[3] == "/")
	})

	var b strings.Builder
	b.WriteString(strings.TrimSpace(out))
	for _, name := range e.order {
		if !done[name] {
			b.WriteString(writeTag(name, e.attrs[name], true))
		}
	}
	return b.String()
}

func parseAttrs(s string) []attr {
	var list []attr
	for _, m := range attrRe.FindAllStringSubmatch(s, -1) {
		list = append(list, attr{m[1], html.UnescapeString(m[2])})
	}
	return list
}

func merge(base, set []attr) []attr {
	out := append([]attr(nil), base...)
next:
	for _, a := range set {
		for i := range out {
			if out[i].name == a.name {
				out[i].value = a.value
				continue next
			}
		}
		out = append(out, a)
	}
	return out
}

func writeTag(name string, attrs []attr, selfClose bool) string {
	var b strings.Builder
	b.WriteString("<" + name)
	for _, a := range attrs {
		b.WriteString(" " + a.name + `="` + html.EscapeString(a.value) + `"`)
	}
	if selfClose {
		b.WriteString("/>")
	} else {
		b.WriteString(">")
	}
	return b.String()
}
