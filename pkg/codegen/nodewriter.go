package codegen

import (
	"strconv"
	"strings"

	"github.com/njreid/compgen/pkg/ir"
)

// NodeWriter emits code for each IR node kind. RuntimeWriter and
// DesignTimeWriter are the two strategies.
type NodeWriter interface {
	// Sequence returns the sequence number for the next emission site.
	Sequence() string

	WriteDocument(*Context, *ir.Document) error
	WriteToken(*Context, *ir.Token) error
	WriteMarkupElement(*Context, *ir.MarkupElement) error
	WriteMarkupBlock(*Context, *ir.MarkupBlock) error
	WriteHtmlContent(*Context, *ir.HtmlContent) error
	WriteHtmlAttribute(*Context, *ir.HtmlAttribute) error
	WriteHtmlAttributeValue(*Context, *ir.HtmlAttributeValue) error
	WriteCodeExpressionAttributeValue(*Context, *ir.CodeExpressionAttributeValue) error
	WriteUsingDirective(*Context, *ir.UsingDirective) error
	WriteCodeStatement(*Context, *ir.CodeStatement) error
	WriteCodeExpression(*Context, *ir.CodeExpression) error
	WriteComponent(*Context, *ir.Component) error
	WriteComponentAttribute(*Context, *ir.ComponentAttribute) error
	WriteComponentChildContent(*Context, *ir.ComponentChildContent) error
	WriteComponentTypeArgument(*Context, *ir.ComponentTypeArgument) error
	WriteTemplate(*Context, *ir.Template) error
	WriteSetKey(*Context, *ir.SetKey) error
	WriteSplat(*Context, *ir.Splat) error
	WriteReferenceCapture(*Context, *ir.ReferenceCapture) error
}

var (
	_ NodeWriter = (*RuntimeWriter)(nil)
	_ NodeWriter = (*DesignTimeWriter)(nil)
)

// sharedWriter holds the behaviour both strategies agree on.
type sharedWriter struct{}

func (sharedWriter) WriteDocument(ctx *Context, n *ir.Document) error {
	return ctx.RenderChildren(n)
}

// WriteToken writes code verbatim and markup as a string literal. Inside an
// attribute a bare token is buffered like any other value fragment.
func (sharedWriter) WriteToken(ctx *Context, n *ir.Token) error {
	if ctx.pending != nil {
		ctx.bufferValue(n, n.Kind == ir.TokenCode, "")
		return nil
	}
	if n.Kind == ir.TokenMarkup {
		ctx.Writer.Write(strconv.Quote(n.Content))
		return nil
	}
	writeCode(ctx, n)
	return nil
}

func (sharedWriter) WriteHtmlAttributeValue(ctx *Context, n *ir.HtmlAttributeValue) error {
	ctx.bufferValue(n, false, n.Prefix)
	return nil
}

func (sharedWriter) WriteCodeExpressionAttributeValue(ctx *Context, n *ir.CodeExpressionAttributeValue) error {
	ctx.bufferValue(n, true, n.Prefix)
	return nil
}

// Imports are hoisted by Generate; nothing is written in place.
func (sharedWriter) WriteUsingDirective(*Context, *ir.UsingDirective) error { return nil }

// WriteTemplate writes an inline template as a render fragment literal.
func (sharedWriter) WriteTemplate(ctx *Context, n *ir.Template) error {
	return ctx.withComponent(nil, func() error {
		s, exit := ctx.enterScope(ScopeTemplate, "")
		defer exit()
		ctx.Writer.Writef("func(%s *%s) {\n", s.BuilderName, ctx.rt(BuilderType)).Indent()
		if err := ctx.RenderChildren(n); err != nil {
			return err
		}
		ctx.Writer.NewLine().Dedent().Write("}")
		return nil
	})
}

func writeCode(ctx *Context, t *ir.Token) {
	if t.Content == "" {
		return
	}
	ctx.Writer.WriteMapped(t.Span, t.Content)
}

// writeValueParts writes buffered attribute fragments as one expression.
// A lone code fragment is written as is; anything else is concatenated
// into a string.
func writeValueParts(ctx *Context, parts []valuePart) error {
	if len(parts) == 1 && parts[0].code && parts[0].prefix == "" {
		return renderValuePart(ctx, parts[0])
	}
	var literal strings.Builder
	first := true
	sep := func() {
		if !first {
			ctx.Writer.Write(" + ")
		}
		first = false
	}
	flush := func() {
		if literal.Len() > 0 {
			sep()
			ctx.Writer.Write(strconv.Quote(literal.String()))
			literal.Reset()
		}
	}
	for _, p := range parts {
		literal.WriteString(p.prefix)
		if !p.code {
			literal.WriteString(ir.TextContent(p.node))
			continue
		}
		flush()
		sep()
		ctx.Writer.Writef("%s(", ctx.rt(Stringify))
		if err := renderValuePart(ctx, p); err != nil {
			return err
		}
		ctx.Writer.Write(")")
	}
	flush()
	if first {
		ctx.Writer.Write(`""`)
	}
	return nil
}

// renderValuePart writes the code of a buffered fragment.
func renderValuePart(ctx *Context, p valuePart) error {
	if t, ok := p.node.(*ir.Token); ok {
		writeCode(ctx, t)
		return nil
	}
	return ctx.RenderChildren(p.node)
}
