// Package sexp builds and serializes LibrePCB S-expression documents.
//
// The writer reproduces the library's on-disk layout byte for byte: one
// space of indent per nesting level, one atom per line after the first,
// and the fixed-precision float format LibrePCB uses everywhere. Stable
// output is what makes converted elements diffable against the official
// library, so the layout rules here are not negotiable.
package sexp

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sym is a bare (unquoted) token, e.g. an enum value like `rect` or `auto`.
type Sym string

type linebreak struct{}

// LineBreak forces a blank continuation line inside a node's item list.
// Vertex-heavy nodes use it to group coordinates the way LibrePCB does.
var LineBreak = linebreak{}

// Node is one parenthesized list: a tag followed by items. An item is a
// token (bool, int, float64, uuid.UUID, time.Time, Sym, string, nil), a
// nested *Node, or LineBreak.
type Node struct {
	Tag   string
	Items []any
}

// New builds a node from a tag and its initial items.
func New(tag string, items ...any) *Node {
	return &Node{Tag: tag, Items: items}
}

// Add appends items to the node and returns it for chaining.
func (n *Node) Add(items ...any) *Node {
	n.Items = append(n.Items, items...)
	return n
}

// AddChild appends a nested node built from tag and items, returning the child.
func (n *Node) AddChild(tag string, items ...any) *Node {
	child := New(tag, items...)
	n.Items = append(n.Items, child)
	return child
}

// FormatFloat renders a float the way LibrePCB stores dimensions: three
// decimals, trailing zeros stripped, but always with a decimal point so
// integral values read "2.0" rather than "2".
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatToken(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		if t {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(t)
	case float64:
		return FormatFloat(t)
	case uuid.UUID:
		return t.String()
	case Sym:
		return string(t)
	case time.Time:
		return t.UTC().Format("2006-01-02T15:04:05Z")
	case string:
		return quote(t)
	default:
		return quote(fmt.Sprint(v))
	}
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// Serialize renders the node as a complete document with trailing newline.
func (n *Node) Serialize() string {
	var b strings.Builder
	n.serialize(&b, 0)
	b.WriteByte('\n')
	return b.String()
}

func (n *Node) serialize(b *strings.Builder, indent int) {
	pad := strings.Repeat(" ", indent)
	b.WriteString(pad)
	b.WriteByte('(')
	b.WriteString(n.Tag)
	first := true
	for _, item := range n.Items {
		switch v := item.(type) {
		case linebreak:
			b.WriteString("\n" + pad + " ")
			first = true
		case *Node:
			b.WriteString("\n")
			v.serialize(b, indent+1)
			first = false
		default:
			tok := formatToken(item)
			if first {
				b.WriteString(" " + tok)
			} else {
				b.WriteString("\n" + pad + " " + tok)
			}
			first = false
		}
	}
	b.WriteByte(')')
}
