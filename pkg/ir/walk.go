package ir

import "strings"

// ChildrenOf returns the direct children of n in source order.
func ChildrenOf(n Node) []Node {
	switch n := n.(type) {
	case *Document:
		return n.Children
	case *MarkupElement:
		return n.Children
	case *HtmlContent:
		return n.Children
	case *HtmlAttribute:
		return n.Children
	case *HtmlAttributeValue:
		return n.Children
	case *CodeExpressionAttributeValue:
		return n.Children
	case *CodeStatement:
		return n.Children
	case *CodeExpression:
		return n.Children
	case *Component:
		return n.Children
	case *ComponentAttribute:
		return n.Children
	case *ComponentChildContent:
		return n.Children
	case *Template:
		return n.Children
	case *ComponentTypeArgument:
		if n.Value != nil {
			return []Node{n.Value}
		}
	case *SetKey:
		if n.Value != nil {
			return []Node{n.Value}
		}
	case *Splat:
		if n.Value != nil {
			return []Node{n.Value}
		}
	case *ReferenceCapture:
		if n.Identifier != nil {
			return []Node{n.Identifier}
		}
	}
	return nil
}

// SetChildren replaces the children of a container node. It reports false
// for nodes whose children are not a plain list.
func SetChildren(n Node, children []Node) bool {
	switch n := n.(type) {
	case *Document:
		n.Children = children
	case *MarkupElement:
		n.Children = children
	case *HtmlContent:
		n.Children = children
	case *HtmlAttribute:
		n.Children = children
	case *HtmlAttributeValue:
		n.Children = children
	case *CodeExpressionAttributeValue:
		n.Children = children
	case *CodeStatement:
		n.Children = children
	case *CodeExpression:
		n.Children = children
	case *Component:
		n.Children = children
	case *ComponentAttribute:
		n.Children = children
	case *ComponentChildContent:
		n.Children = children
	case *Template:
		n.Children = children
	default:
		return false
	}
	return true
}

// Walk visits n and its descendants depth-first in source order. Returning
// false from fn skips the node's children.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range ChildrenOf(n) {
		Walk(c, fn)
	}
}

// Tokens returns the direct token children of n.
func Tokens(n Node) []*Token {
	var out []*Token
	for _, c := range ChildrenOf(n) {
		if t, ok := c.(*Token); ok {
			out = append(out, t)
		}
	}
	return out
}

// TextContent concatenates the content of every token below n.
func TextContent(n Node) string {
	var sb strings.Builder
	Walk(n, func(c Node) bool {
		if t, ok := c.(*Token); ok {
			sb.WriteString(t.Content)
		}
		return true
	})
	return sb.String()
}

// IsBodyNode reports whether n renders content, as opposed to decorating the
// enclosing element or component.
func IsBodyNode(n Node) bool {
	switch n.(type) {
	case *HtmlAttribute, *ComponentAttribute, *Splat, *SetKey, *ReferenceCapture,
		*ComponentChildContent, *ComponentTypeArgument:
		return false
	}
	return true
}

// Body returns the content children of a markup element.
func (n *MarkupElement) Body() []Node {
	var out []Node
	for _, c := range n.Children {
		if IsBodyNode(c) {
			out = append(out, c)
		}
	}
	return out
}

// AttributesAndSplats returns the attributes, event handlers and splats of
// the element in source order.
func (n *MarkupElement) AttributesAndSplats() []Node {
	var out []Node
	for _, c := range n.Children {
		switch c.(type) {
		case *HtmlAttribute, *ComponentAttribute, *Splat:
			out = append(out, c)
		}
	}
	return out
}

func (n *MarkupElement) SetKeys() []*SetKey { return childrenOfType[*SetKey](n.Children) }
func (n *MarkupElement) Captures() []*ReferenceCapture {
	return childrenOfType[*ReferenceCapture](n.Children)
}
func (n *Component) SetKeys() []*SetKey { return childrenOfType[*SetKey](n.Children) }
func (n *Component) Captures() []*ReferenceCapture {
	return childrenOfType[*ReferenceCapture](n.Children)
}
func (n *Component) ChildContents() []*ComponentChildContent {
	return childrenOfType[*ComponentChildContent](n.Children)
}
func (n *Component) TypeArguments() []*ComponentTypeArgument {
	return childrenOfType[*ComponentTypeArgument](n.Children)
}
func (n *Component) Attributes() []*ComponentAttribute {
	return childrenOfType[*ComponentAttribute](n.Children)
}

// AttributesAndSplats returns attributes and splats in source order; their
// relative order is significant at runtime.
func (n *Component) AttributesAndSplats() []Node {
	var out []Node
	for _, c := range n.Children {
		switch c.(type) {
		case *ComponentAttribute, *Splat:
			out = append(out, c)
		}
	}
	return out
}

// NeedsTypeInference reports whether the component is generic and at least
// one of its type parameters has no explicit type argument.
func (n *Component) NeedsTypeInference() bool {
	if n.Descriptor == nil || !n.Descriptor.IsGenericTyped() {
		return false
	}
	explicit := make(map[string]bool)
	for _, ta := range n.TypeArguments() {
		explicit[ta.TypeParameterName] = true
	}
	for _, tp := range n.Descriptor.TypeParameters() {
		if !explicit[tp.Name()] {
			return true
		}
	}
	return false
}

// IsParameterized reports whether the child content receives a context value.
func (n *ComponentChildContent) IsParameterized() bool {
	if n.BoundAttribute != nil {
		return n.BoundAttribute.IsParameterizedChildContent()
	}
	return n.ParameterName != ""
}

func childrenOfType[T Node](children []Node) []T {
	var out []T
	for _, c := range children {
		if t, ok := c.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
