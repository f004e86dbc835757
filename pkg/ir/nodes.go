package ir

import (
	"strings"

	"github.com/njreid/compgen/pkg/descriptor"
)

// Document is the root of a template.
type Document struct {
	Package  string
	TypeName string
	Children []Node
}

// Token is literal text, either markup or code.
type Token struct {
	Kind    TokenKind
	Content string
	Span    *Span
}

// IsWhitespace reports whether the token holds nothing but whitespace.
func (t *Token) IsWhitespace() bool { return strings.TrimSpace(t.Content) == "" }

// MarkupElement is a plain (non-component) element. Children hold, in
// source order, its attributes, splats, keys, captures and body.
type MarkupElement struct {
	TagName  string
	Children []Node
	Span     *Span
}

// MarkupBlock is static markup already rendered to text.
type MarkupBlock struct {
	Content string
	Span    *Span
}

// HtmlContent is literal text inside an element body.
type HtmlContent struct {
	Children []Node
	Span     *Span
}

// HtmlAttribute is an attribute on a markup element. Prefix and Suffix are
// the source text around the value, e.g. ` class="` and `"`.
type HtmlAttribute struct {
	AttributeName string
	Prefix        string
	Suffix        string
	Children      []Node
	Span          *Span
}

// HtmlAttributeValue is a literal fragment of an attribute value.
type HtmlAttributeValue struct {
	Prefix   string
	Children []Node
	Span     *Span
}

// CodeExpressionAttributeValue is a code fragment of an attribute value.
type CodeExpressionAttributeValue struct {
	Prefix   string
	Children []Node
	Span     *Span
}

// UsingDirective imports a package. Content is an import spec such as
// `"fmt"` or `str "strings"`.
type UsingDirective struct {
	Content string
	Span    *Span
}

// CodeStatement is verbatim host code. Children are tokens and templates.
type CodeStatement struct {
	Children []Node
	Span     *Span
}

// CodeExpression is host code whose value is rendered.
type CodeExpression struct {
	Children []Node
	Span     *Span
}

// Component is an element bound to a component descriptor.
type Component struct {
	TagName    string
	TypeName   string
	Descriptor *descriptor.Descriptor
	Children   []Node
	Span       *Span
}

// ComponentAttribute assigns a value to a component parameter, or binds an
// event handler attribute on a markup element.
type ComponentAttribute struct {
	AttributeName  string
	PropertyName   string
	TypeName       string
	BoundAttribute *descriptor.BoundAttribute
	// Minimized is set when the attribute was written without a value.
	Minimized bool
	Children  []Node
	Span      *Span
}

// ComponentChildContent is a body passed to a component as a fragment.
type ComponentChildContent struct {
	AttributeName  string
	ParameterName  string
	TypeName       string
	BoundAttribute *descriptor.BoundAttribute
	Children       []Node
	Span           *Span
}

// ComponentTypeArgument supplies an explicit type argument for a generic
// component.
type ComponentTypeArgument struct {
	TypeParameterName string
	BoundAttribute    *descriptor.BoundAttribute
	Value             *Token
	Span              *Span
}

// Template is an inline markup fragment inside host code.
type Template struct {
	Children []Node
	Span     *Span
}

// SetKey assigns a diffing key to the enclosing element or component.
type SetKey struct {
	Value *Token
	Span  *Span
}

// Splat spreads a collection of attributes onto the enclosing element or
// component.
type Splat struct {
	Value *Token
	Span  *Span
}

// ReferenceCapture stores a reference to the enclosing element or
// component into Identifier.
type ReferenceCapture struct {
	Identifier         *Token
	IsComponentCapture bool
	// ComponentTypeName is the capture target type for component captures.
	ComponentTypeName string
	Span              *Span
}

func (*Document) Type() NodeType                     { return NodeDocument }
func (*Token) Type() NodeType                        { return NodeToken }
func (*MarkupElement) Type() NodeType                { return NodeMarkupElement }
func (*MarkupBlock) Type() NodeType                  { return NodeMarkupBlock }
func (*HtmlContent) Type() NodeType                  { return NodeHtmlContent }
func (*HtmlAttribute) Type() NodeType                { return NodeHtmlAttribute }
func (*HtmlAttributeValue) Type() NodeType           { return NodeHtmlAttributeValue }
func (*CodeExpressionAttributeValue) Type() NodeType { return NodeCodeExpressionAttributeValue }
func (*UsingDirective) Type() NodeType               { return NodeUsingDirective }
func (*CodeStatement) Type() NodeType                { return NodeCodeStatement }
func (*CodeExpression) Type() NodeType               { return NodeCodeExpression }
func (*Component) Type() NodeType                    { return NodeComponent }
func (*ComponentAttribute) Type() NodeType           { return NodeComponentAttribute }
func (*ComponentChildContent) Type() NodeType        { return NodeComponentChildContent }
func (*ComponentTypeArgument) Type() NodeType        { return NodeComponentTypeArgument }
func (*Template) Type() NodeType                     { return NodeTemplate }
func (*SetKey) Type() NodeType                       { return NodeSetKey }
func (*Splat) Type() NodeType                        { return NodeSplat }
func (*ReferenceCapture) Type() NodeType             { return NodeReferenceCapture }

func (*Document) Source() *Span                       { return nil }
func (n *Token) Source() *Span                        { return n.Span }
func (n *MarkupElement) Source() *Span                { return n.Span }
func (n *MarkupBlock) Source() *Span                  { return n.Span }
func (n *HtmlContent) Source() *Span                  { return n.Span }
func (n *HtmlAttribute) Source() *Span                { return n.Span }
func (n *HtmlAttributeValue) Source() *Span           { return n.Span }
func (n *CodeExpressionAttributeValue) Source() *Span { return n.Span }
func (n *UsingDirective) Source() *Span               { return n.Span }
func (n *CodeStatement) Source() *Span                { return n.Span }
func (n *CodeExpression) Source() *Span               { return n.Span }
func (n *Component) Source() *Span                    { return n.Span }
func (n *ComponentAttribute) Source() *Span           { return n.Span }
func (n *ComponentChildContent) Source() *Span        { return n.Span }
func (n *ComponentTypeArgument) Source() *Span        { return n.Span }
func (n *Template) Source() *Span                     { return n.Span }
func (n *SetKey) Source() *Span                       { return n.Span }
func (n *Splat) Source() *Span                        { return n.Span }
func (n *ReferenceCapture) Source() *Span             { return n.Span }

func (*Document) node()                     {}
func (*Token) node()                        {}
func (*MarkupElement) node()                {}
func (*MarkupBlock) node()                  {}
func (*HtmlContent) node()                  {}
func (*HtmlAttribute) node()                {}
func (*HtmlAttributeValue) node()           {}
func (*CodeExpressionAttributeValue) node() {}
func (*UsingDirective) node()               {}
func (*CodeStatement) node()                {}
func (*CodeExpression) node()               {}
func (*Component) node()                    {}
func (*ComponentAttribute) node()           {}
func (*ComponentChildContent) node()        {}
func (*ComponentTypeArgument) node()        {}
func (*Template) node()                     {}
func (*SetKey) node()                       {}
func (*Splat) node()                        {}
func (*ReferenceCapture) node()             {}
