package sexp

import (
	"fmt"
	"io"
	"strconv"
)

// Parser reads a serialized document back into a Node tree. Bare tokens
// come back as Sym and quoted tokens as string; LineBreak hints are not
// recoverable from text and are dropped.
type Parser struct {
	lexer   *Lexer
	current Token
}

// NewParser creates a new parser from an io.Reader
func NewParser(r io.Reader) *Parser {
	return &Parser{
		lexer: NewLexer(r),
	}
}

// Parse reads a single top-level node from the input.
func Parse(r io.Reader) (*Node, error) {
	p := NewParser(r)

	tok, err := p.lexer.NextToken()
	if err != nil {
		return nil, err
	}
	p.current = tok

	if p.current.Type != TokenLeftParen {
		return nil, fmt.Errorf("expected '(' at document start, got %q", p.current.Value)
	}
	return p.parseNode()
}

// parseNode parses a list: (tag ...). The current token is '('.
func (p *Parser) parseNode() (*Node, error) {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return nil, err
	}
	if tok.Type != TokenSymbol {
		return nil, fmt.Errorf("expected tag after '(', got %q", tok.Value)
	}
	node := &Node{Tag: tok.Value}

	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return nil, err
		}
		p.current = tok

		switch tok.Type {
		case TokenRightParen:
			return node, nil

		case TokenEOF:
			return nil, fmt.Errorf("unexpected EOF in (%s", node.Tag)

		case TokenLeftParen:
			child, err := p.parseNode()
			if err != nil {
				return nil, err
			}
			node.Items = append(node.Items, child)

		case TokenSymbol:
			node.Items = append(node.Items, Sym(tok.Value))

		case TokenString:
			node.Items = append(node.Items, tok.Value)

		default:
			return nil, fmt.Errorf("unexpected token type: %v", tok.Type)
		}
	}
}

// Navigation helpers for parsed trees.

// Find returns the first child node with the given tag.
func (n *Node) Find(tag string) (*Node, bool) {
	for _, item := range n.Items {
		if child, ok := item.(*Node); ok && child.Tag == tag {
			return child, true
		}
	}
	return nil, false
}

// FindAll returns every child node with the given tag, in document order.
func (n *Node) FindAll(tag string) []*Node {
	var result []*Node
	for _, item := range n.Items {
		if child, ok := item.(*Node); ok && child.Tag == tag {
			result = append(result, child)
		}
	}
	return result
}

// Str returns the token at the given index as a string. Both bare and
// quoted tokens qualify.
func (n *Node) Str(index int) (string, error) {
	if index < 0 || index >= len(n.Items) {
		return "", fmt.Errorf("(%s: no item at index %d", n.Tag, index)
	}
	switch v := n.Items[index].(type) {
	case Sym:
		return string(v), nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("(%s: item %d is not a token", n.Tag, index)
	}
}

// Float returns the token at the given index parsed as a float64.
func (n *Node) Float(index int) (float64, error) {
	s, err := n.Str(index)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("(%s: item %d: %w", n.Tag, index, err)
	}
	return f, nil
}
