// Package encoding provides the XML escaping used when printing CDL documents.
package encoding

import "strings"

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\"", "&quot;")
)

// EscapeXMLText escapes the basic XML entities for text content.
func EscapeXMLText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeXMLAttr escapes text for use in double quoted XML attributes.
func EscapeXMLAttr(s string) string {
	return attrEscaper.Replace(s)
}
