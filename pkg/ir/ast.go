// Package ir defines the bound intermediate representation of a component
// template. The tree is produced by the front-end and binder; package codegen
// lowers it to Go source.
package ir

import "fmt"

// NodeType identifies the kind of an IR node.
type NodeType int

const (
	NodeDocument NodeType = iota
	NodeMarkupElement
	NodeMarkupBlock
	NodeHtmlContent
	NodeHtmlAttribute
	NodeHtmlAttributeValue
	NodeUsingDirective
	NodeCodeStatement
	NodeCodeExpression
	NodeCodeExpressionAttributeValue
	NodeComponent
	NodeComponentAttribute
	NodeComponentChildContent
	NodeComponentTypeArgument
	NodeTemplate
	NodeSetKey
	NodeSplat
	NodeReferenceCapture
	NodeToken

	nodeTypeCount
)

var nodeTypeNames = [...]string{
	NodeDocument:                     "Document",
	NodeMarkupElement:                "MarkupElement",
	NodeMarkupBlock:                  "MarkupBlock",
	NodeHtmlContent:                  "HtmlContent",
	NodeHtmlAttribute:                "HtmlAttribute",
	NodeHtmlAttributeValue:           "HtmlAttributeValue",
	NodeUsingDirective:               "UsingDirective",
	NodeCodeStatement:                "CodeStatement",
	NodeCodeExpression:               "CodeExpression",
	NodeCodeExpressionAttributeValue: "CodeExpressionAttributeValue",
	NodeComponent:                    "Component",
	NodeComponentAttribute:           "ComponentAttribute",
	NodeComponentChildContent:        "ComponentChildContent",
	NodeComponentTypeArgument:        "ComponentTypeArgument",
	NodeTemplate:                     "Template",
	NodeSetKey:                       "SetKey",
	NodeSplat:                        "Splat",
	NodeReferenceCapture:             "ReferenceCapture",
	NodeToken:                        "Token",
}

func (t NodeType) String() string {
	if t >= 0 && t < nodeTypeCount {
		return nodeTypeNames[t]
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// NodeTypes returns every node kind, in declaration order.
func NodeTypes() []NodeType {
	types := make([]NodeType, 0, nodeTypeCount)
	for t := NodeType(0); t < nodeTypeCount; t++ {
		types = append(types, t)
	}
	return types
}

// Node is a node in the IR tree. The set of implementations is closed.
type Node interface {
	Type() NodeType
	// Source returns the template span the node was produced from, or nil.
	Source() *Span
	node()
}

// Span locates text in the original template. Line and character indexes
// are zero-based.
type Span struct {
	FilePath       string
	AbsoluteIndex  int
	LineIndex      int
	CharacterIndex int
	Length         int
}

func (s Span) String() string {
	return fmt.Sprintf("%s(%d:%d,%d)", s.FilePath, s.LineIndex+1, s.CharacterIndex+1, s.Length)
}

// TokenKind distinguishes literal markup text from host-language code.
type TokenKind int

const (
	TokenMarkup TokenKind = iota
	TokenCode
)

func (k TokenKind) String() string {
	if k == TokenCode {
		return "Code"
	}
	return "Markup"
}
