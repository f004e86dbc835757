package codegen

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/njreid/compgen/pkg/ir"
)

// TrimWhitespace removes whitespace-only text at the start and end of
// element, component, child-content and template bodies and of the
// document. It is the only pass that removes nodes from a body.
func TrimWhitespace(doc *ir.Document) {
	if doc == nil {
		return
	}
	ir.Walk(doc, func(n ir.Node) bool {
		switch n.(type) {
		case *ir.Document, *ir.MarkupElement, *ir.Component, *ir.ComponentChildContent, *ir.Template:
			ir.SetChildren(n, trimBody(ir.ChildrenOf(n)))
		}
		return true
	})
}

func trimBody(children []ir.Node) []ir.Node {
	blank := func(n ir.Node) bool {
		hc, ok := n.(*ir.HtmlContent)
		return ok && strings.TrimSpace(ir.TextContent(hc)) == ""
	}
	drop := make(map[int]bool)
	for i := 0; i < len(children); i++ {
		if !ir.IsBodyNode(children[i]) {
			continue
		}
		if !blank(children[i]) {
			break
		}
		drop[i] = true
	}
	for i := len(children) - 1; i >= 0; i-- {
		if !ir.IsBodyNode(children[i]) {
			continue
		}
		if !blank(children[i]) {
			break
		}
		drop[i] = true
	}
	if len(drop) == 0 {
		return children
	}
	out := make([]ir.Node, 0, len(children)-len(drop))
	for i, c := range children {
		if !drop[i] {
			out = append(out, c)
		}
	}
	return out
}

// CollapseMarkup replaces every element subtree without code, components or
// directives by one MarkupBlock holding its rendered HTML. Script and style
// elements are left alone.
func CollapseMarkup(doc *ir.Document) error {
	if doc == nil {
		return ErrNilInput
	}
	return collapseChildren(doc)
}

func collapseChildren(n ir.Node) error {
	children := ir.ChildrenOf(n)
	changed := false
	for i, c := range children {
		if el, ok := c.(*ir.MarkupElement); ok && isStatic(el) {
			block, err := renderStatic(el)
			if err != nil {
				return err
			}
			children[i] = block
			changed = true
			continue
		}
		if err := collapseChildren(c); err != nil {
			return err
		}
	}
	if changed {
		ir.SetChildren(n, children)
	}
	return nil
}

func isStatic(el *ir.MarkupElement) bool {
	switch strings.ToLower(el.TagName) {
	case "script", "style":
		return false
	}
	for _, c := range el.Children {
		switch c := c.(type) {
		case *ir.HtmlContent:
		case *ir.HtmlAttribute:
			for _, v := range c.Children {
				switch v := v.(type) {
				case *ir.HtmlAttributeValue:
				case *ir.Token:
					if v.Kind != ir.TokenMarkup {
						return false
					}
				default:
					return false
				}
			}
		case *ir.MarkupElement:
			if !isStatic(c) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func renderStatic(el *ir.MarkupElement) (*ir.MarkupBlock, error) {
	var sb strings.Builder
	if err := html.Render(&sb, htmlNode(el)); err != nil {
		return nil, err
	}
	return &ir.MarkupBlock{Content: sb.String(), Span: el.Span}, nil
}

// htmlNode converts a static element. Text and attribute values are
// decoded so that rendering encodes them exactly once.
func htmlNode(el *ir.MarkupElement) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     el.TagName,
		DataAtom: atom.Lookup([]byte(strings.ToLower(el.TagName))),
	}
	for _, c := range el.Children {
		switch c := c.(type) {
		case *ir.HtmlAttribute:
			var val strings.Builder
			for _, v := range c.Children {
				if av, ok := v.(*ir.HtmlAttributeValue); ok {
					val.WriteString(av.Prefix)
				}
				val.WriteString(ir.TextContent(v))
			}
			n.Attr = append(n.Attr, html.Attribute{Key: c.AttributeName, Val: html.UnescapeString(val.String())})
		case *ir.HtmlContent:
			n.AppendChild(&html.Node{Type: html.TextNode, Data: html.UnescapeString(ir.TextContent(c))})
		case *ir.MarkupElement:
			n.AppendChild(htmlNode(c))
		}
	}
	return n
}
