package xml

import (
	"bytes"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/FocuswithJustin/cdlconvert/core/encoding"
)

// XML pretty prints n and its descendants with the package indent.
func (n *Node) XML() string {
	if n == nil || n.node == nil {
		return ""
	}
	var buf bytes.Buffer
	formatNode(&buf, n.node, 0, Indent)
	return buf.String()
}

// XMLRoot prints n as a standalone document, prefixed with the XML declaration.
func (n *Node) XMLRoot() string {
	return Declaration + "\n" + n.XML()
}

// Format pretty prints n with a caller supplied indent.
func Format(n *Node, indent string) string {
	if n == nil || n.node == nil {
		return ""
	}
	var buf bytes.Buffer
	formatNode(&buf, n.node, 0, indent)
	return buf.String()
}

func formatNode(w *bytes.Buffer, n *xmlquery.Node, depth int, indent string) {
	switch n.Type {
	case xmlquery.DocumentNode:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			formatNode(w, child, depth, indent)
		}

	case xmlquery.DeclarationNode:
		w.WriteString("<?xml")
		for _, attr := range n.Attr {
			w.WriteString(" ")
			w.WriteString(attr.Name.Local)
			w.WriteString("=\"")
			w.WriteString(encoding.EscapeXMLAttr(attr.Value))
			w.WriteString("\"")
		}
		w.WriteString("?>\n")

	case xmlquery.ElementNode:
		writeIndent(w, depth, indent)
		w.WriteString("<")
		if n.Prefix != "" {
			w.WriteString(n.Prefix)
			w.WriteString(":")
		}
		w.WriteString(n.Data)

		for _, attr := range n.Attr {
			w.WriteString(" ")
			if attr.Name.Space != "" {
				w.WriteString(attr.Name.Space)
				w.WriteString(":")
			}
			w.WriteString(attr.Name.Local)
			w.WriteString("=\"")
			w.WriteString(encoding.EscapeXMLAttr(attr.Value))
			w.WriteString("\"")
		}

		hasElementChildren := false
		hasContent := false
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			switch child.Type {
			case xmlquery.ElementNode:
				hasElementChildren = true
				hasContent = true
			case xmlquery.TextNode, xmlquery.CharDataNode:
				if child.Data != "" {
					hasContent = true
				}
			}
		}

		if !hasContent {
			w.WriteString("/>\n")
			return
		}

		w.WriteString(">")
		if hasElementChildren {
			w.WriteString("\n")
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			switch child.Type {
			case xmlquery.ElementNode:
				formatNode(w, child, depth+1, indent)
			case xmlquery.TextNode, xmlquery.CharDataNode:
				// Leaf text is written verbatim; text between child
				// elements is reindented.
				if !hasElementChildren {
					w.WriteString(encoding.EscapeXMLText(child.Data))
					continue
				}
				text := strings.TrimSpace(child.Data)
				if text == "" {
					continue
				}
				writeIndent(w, depth+1, indent)
				w.WriteString(encoding.EscapeXMLText(text))
				w.WriteString("\n")
			}
		}
		if hasElementChildren {
			writeIndent(w, depth, indent)
		}
		w.WriteString("</")
		if n.Prefix != "" {
			w.WriteString(n.Prefix)
			w.WriteString(":")
		}
		w.WriteString(n.Data)
		w.WriteString(">\n")

	case xmlquery.CommentNode:
		writeIndent(w, depth, indent)
		w.WriteString("<!--")
		w.WriteString(n.Data)
		w.WriteString("-->\n")
	}
}

func writeIndent(w *bytes.Buffer, depth int, indent string) {
	for i := 0; i < depth; i++ {
		w.WriteString(indent)
	}
}
