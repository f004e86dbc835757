package codegen

import (
	"regexp"
	"strconv"

	"github.com/njreid/compgen/pkg/ir"
)

// charRef matches an HTML character reference such as &amp; or &#169;.
var charRef = regexp.MustCompile(`&(#\d+|#[xX][0-9a-fA-F]+|[a-zA-Z][a-zA-Z0-9]*);`)

// RuntimeWriter emits code that builds the render tree when executed.
type RuntimeWriter struct {
	sharedWriter
	seq int
}

func NewRuntimeWriter() *RuntimeWriter { return &RuntimeWriter{} }

// Sequence returns the next sequence number. Numbers start at 0 and are
// never reused by one writer.
func (w *RuntimeWriter) Sequence() string {
	s := strconv.Itoa(w.seq)
	w.seq++
	return s
}

func (w *RuntimeWriter) WriteMarkupElement(ctx *Context, n *ir.MarkupElement) error {
	ctx.Writer.Writef("%s.%s(%s, %s)\n", ctx.BuilderName(), OpenElement, w.Sequence(), strconv.Quote(n.TagName))
	if err := writeElementContent(ctx, n); err != nil {
		return err
	}
	ctx.Writer.Writef("%s.%s()\n", ctx.BuilderName(), CloseElement)
	return nil
}

func (w *RuntimeWriter) WriteMarkupBlock(ctx *Context, n *ir.MarkupBlock) error {
	ctx.Writer.Writef("%s.%s(%s, %s)\n", ctx.BuilderName(), AddMarkupContent, w.Sequence(), strconv.Quote(n.Content))
	return nil
}

// WriteHtmlContent appends text. Text holding character references is
// already encoded and goes through AddMarkupContent.
func (w *RuntimeWriter) WriteHtmlContent(ctx *Context, n *ir.HtmlContent) error {
	text := ir.TextContent(n)
	method := AddContent
	if charRef.MatchString(text) {
		method = AddMarkupContent
	}
	ctx.Writer.Writef("%s.%s(%s, %s)\n", ctx.BuilderName(), method, w.Sequence(), strconv.Quote(text))
	return nil
}

func (w *RuntimeWriter) WriteHtmlAttribute(ctx *Context, n *ir.HtmlAttribute) error {
	parts, err := ctx.collectValues(n)
	if err != nil {
		return err
	}
	ctx.Writer.Writef("%s.%s(%s, %s, ", ctx.BuilderName(), AddAttribute, w.Sequence(), strconv.Quote(n.AttributeName))
	if len(parts) == 0 {
		ctx.Writer.Write("true")
	} else if err := writeValueParts(ctx, parts); err != nil {
		return err
	}
	ctx.Writer.Write(")\n")
	return nil
}

// WriteCodeStatement drops statements that hold only whitespace.
func (w *RuntimeWriter) WriteCodeStatement(ctx *Context, n *ir.CodeStatement) error {
	if isWhitespaceStatement(n) {
		return nil
	}
	return ctx.writeStatement(n)
}

func (w *RuntimeWriter) WriteCodeExpression(ctx *Context, n *ir.CodeExpression) error {
	ctx.Writer.Writef("%s.%s(%s, ", ctx.BuilderName(), AddContent, w.Sequence())
	if err := ctx.RenderChildren(n); err != nil {
		return err
	}
	ctx.Writer.Write(")\n")
	return nil
}

func (w *RuntimeWriter) WriteComponent(ctx *Context, n *ir.Component) error {
	return writeComponent(ctx, n)
}

func (w *RuntimeWriter) WriteComponentAttribute(ctx *Context, n *ir.ComponentAttribute) error {
	if ctx.inferenceArgument() {
		return writeAttributeInnards(ctx, n, false)
	}
	if skipAttribute(n) {
		return nil
	}
	ctx.Writer.Writef("%s.%s(%s, %s, ", ctx.BuilderName(), AddAttribute, w.Sequence(), strconv.Quote(attributeName(n)))
	if err := writeAttributeInnards(ctx, n, true); err != nil {
		return err
	}
	ctx.Writer.Write(")\n")
	return nil
}

// WriteComponentChildContent assigns the body, converted to the declared
// fragment type, to the child-content parameter.
func (w *RuntimeWriter) WriteComponentChildContent(ctx *Context, n *ir.ComponentChildContent) error {
	if ctx.inferenceArgument() {
		return writeChildContentLambda(ctx, n)
	}
	ctx.Writer.Writef("%s.%s(%s, %s, ", ctx.BuilderName(), AddAttribute, w.Sequence(), strconv.Quote(n.AttributeName))
	typ, err := childContentType(ctx, n)
	if err != nil {
		return err
	}
	ctx.Writer.Write(conversionType(typ) + "(")
	if err := writeChildContentLambda(ctx, n); err != nil {
		return err
	}
	ctx.Writer.Write("))\n")
	return nil
}

// Type arguments are part of the component type; nothing is written.
func (w *RuntimeWriter) WriteComponentTypeArgument(*Context, *ir.ComponentTypeArgument) error {
	return nil
}

func isWhitespaceStatement(n *ir.CodeStatement) bool {
	for _, c := range n.Children {
		t, ok := c.(*ir.Token)
		if !ok || !t.IsWhitespace() {
			return false
		}
	}
	return true
}
