// Package xml is the XML projection base for ASC CDL documents: it parses CC, CCC
// and CDL files into queryable trees, builds element trees for writers and prints
// them deterministically.
//
// Parsing goes through xmlquery, which uses encoding/xml and does not fetch
// external entities.
package xml

import (
	"bytes"
	"fmt"
	"regexp"
	"sync"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Declaration is written ahead of every root document.
const Declaration = `<?xml version="1.0" encoding="UTF-8"?>`

// Indent is the indentation used for pretty printed output.
const Indent = "    "

// defaultNamespace matches the first default namespace declaration. CDL files
// declare one of several ASC schema versions; element lookups are by local name.
var defaultNamespace = regexp.MustCompile(` xmlns="[^"]+"`)

// Document represents a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node represents an XML element, either parsed or built.
type Node struct {
	node *xmlquery.Node
}

// Parse strips the default namespace declaration from data and parses it.
func Parse(data []byte) (*Document, error) {
	loc := defaultNamespace.FindIndex(data)
	if loc != nil {
		stripped := make([]byte, 0, len(data)-(loc[1]-loc[0]))
		stripped = append(stripped, data[:loc[0]]...)
		stripped = append(stripped, data[loc[1]:]...)
		data = stripped
	}

	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// Root returns the root element of the document.
func (d *Document) Root() *Node {
	if d == nil || d.root == nil {
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

// compiled caches XPath expressions; CDL parsing asks the same few questions of
// every element.
var compiled sync.Map

func compile(expr string) (*xpath.Expr, error) {
	if e, ok := compiled.Load(expr); ok {
		return e.(*xpath.Expr), nil
	}
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
	}
	compiled.Store(expr, e)
	return e, nil
}

// Find evaluates expr relative to n and returns the matching nodes in document order.
func (n *Node) Find(expr string) ([]*Node, error) {
	if n == nil || n.node == nil {
		return nil, nil
	}
	e, err := compile(expr)
	if err != nil {
		return nil, err
	}
	matches := xmlquery.QuerySelectorAll(n.node, e)
	result := make([]*Node, len(matches))
	for i, m := range matches {
		result[i] = &Node{node: m}
	}
	return result, nil
}

// ChildrenNamed returns the direct child elements called name.
func (n *Node) ChildrenNamed(name string) []*Node {
	if n == nil || n.node == nil {
		return nil
	}
	var children []*Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode && child.Data == name {
			children = append(children, &Node{node: child})
		}
	}
	return children
}

// FirstChildNamed returns the first direct child matching any of names, trying
// the names in order.
func (n *Node) FirstChildNamed(names ...string) *Node {
	for _, name := range names {
		if found := n.ChildrenNamed(name); len(found) > 0 {
			return found[0]
		}
	}
	return nil
}

// Children returns the child element nodes.
func (n *Node) Children() []*Node {
	if n == nil || n.node == nil {
		return nil
	}
	var children []*Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			children = append(children, &Node{node: child})
		}
	}
	return children
}

// Name returns the element's local name.
func (n *Node) Name() string {
	if n == nil || n.node == nil {
		return ""
	}
	return n.node.Data
}

// Text returns the text content of the node and its descendants.
func (n *Node) Text() string {
	if n == nil || n.node == nil {
		return ""
	}
	return n.node.InnerText()
}

// Attr returns the value of an attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil || n.node == nil {
		return "", false
	}
	for _, attr := range n.node.Attr {
		if attr.Name.Space == "" && attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Descriptions returns the text of every direct Description child, in order.
// Empty elements contribute empty strings.
func Descriptions(n *Node) []string {
	var descs []string
	for _, d := range n.ChildrenNamed("Description") {
		descs = append(descs, d.Text())
	}
	return descs
}

// ChildText returns the text of the first direct child called name.
func ChildText(n *Node, name string) (string, bool) {
	child := n.FirstChildNamed(name)
	if child == nil {
		return "", false
	}
	return child.Text(), true
}
