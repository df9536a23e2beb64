package xml

import (
	"encoding/xml"

	"github.com/antchfx/xmlquery"
)

// NewElement creates a detached element node.
func NewElement(name string) *Node {
	return &Node{node: &xmlquery.Node{Type: xmlquery.ElementNode, Data: name}}
}

// SetAttr appends an attribute. Attributes print in the order they are set.
func (n *Node) SetAttr(name, value string) *Node {
	n.node.Attr = append(n.node.Attr, xmlquery.Attr{Name: xml.Name{Local: name}, Value: value})
	return n
}

// AddChild appends child as the last child of n.
func (n *Node) AddChild(child *Node) *Node {
	if child != nil && child.node != nil {
		xmlquery.AddChild(n.node, child.node)
	}
	return n
}

// AddElement appends a new, empty child element and returns it.
func (n *Node) AddElement(name string) *Node {
	child := NewElement(name)
	n.AddChild(child)
	return child
}

// AddTextElement appends a child element holding text. An empty text prints
// as a self-closing element.
func (n *Node) AddTextElement(name, text string) *Node {
	child := n.AddElement(name)
	child.SetText(text)
	return child
}

// SetText appends a text node to n.
func (n *Node) SetText(text string) *Node {
	if text != "" {
		xmlquery.AddChild(n.node, &xmlquery.Node{Type: xmlquery.TextNode, Data: text})
	}
	return n
}
