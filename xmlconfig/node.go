package xmlconfig

import (
	"encoding/xml"
	"strings"
)

// node is a generic, recursive XML element tree. Using encoding/xml's
// catch-all `,any`/`,any,attr` tags here instead of one Go struct per
// element name (appender/logger/root/...) keeps the grammar's "any
// unrecognized element is a generic property setter" rule representable
// without a fallback code path: every element, known or not, decodes into
// the same shape.
type node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Value   string     `xml:",chardata"`
	Nodes   []node     `xml:",any"`
}

func (n node) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if strings.EqualFold(a.Name.Local, name) {
			return a.Value, true
		}
	}
	return "", false
}

func (n node) attrOr(name, def string) string {
	if v, ok := n.attr(name); ok {
		return v
	}
	return def
}

func (n node) children(name string) []node {
	var out []node
	for _, c := range n.Nodes {
		if strings.EqualFold(c.XMLName.Local, name) {
			out = append(out, c)
		}
	}
	return out
}

func (n node) child(name string) (node, bool) {
	cs := n.children(name)
	if len(cs) == 0 {
		return node{}, false
	}
	return cs[0], true
}

// paramMap collects this element's direct `<param name=".." value="..">`
// children into a plain string map, for handing to the plugin registry's
// mapstructure decode.
func (n node) paramMap() map[string]string {
	m := make(map[string]string)
	for _, p := range n.children("param") {
		name, ok := p.attr("name")
		if !ok {
			continue
		}
		value, _ := p.attr("value")
		m[name] = resolveEnvVars(value)
	}
	return m
}

var reservedElements = map[string]bool{
	"appender":     true,
	"appender-ref": true,
	"logger":       true,
	"category":     true,
	"root":         true,
	"renderer":     true,
	"param":        true,
	"level":        true,
	"priority":     true,
}
