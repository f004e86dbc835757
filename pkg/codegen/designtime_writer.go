package codegen

import (
	"github.com/njreid/compgen/pkg/ir"
)

// DesignTimeWriter emits code that is only compiled, never run: every
// template expression is assigned to the discard variable so tooling gets
// type errors and positions. Markup produces no code.
type DesignTimeWriter struct {
	sharedWriter
}

func NewDesignTimeWriter() *DesignTimeWriter { return &DesignTimeWriter{} }

func (*DesignTimeWriter) Sequence() string { return DesignTimeSequence }

func (w *DesignTimeWriter) WriteMarkupElement(ctx *Context, n *ir.MarkupElement) error {
	return writeElementContent(ctx, n)
}

func (*DesignTimeWriter) WriteMarkupBlock(*Context, *ir.MarkupBlock) error { return nil }

func (*DesignTimeWriter) WriteHtmlContent(*Context, *ir.HtmlContent) error { return nil }

// WriteHtmlAttribute type-checks the code fragments of the value.
func (w *DesignTimeWriter) WriteHtmlAttribute(ctx *Context, n *ir.HtmlAttribute) error {
	parts, err := ctx.collectValues(n)
	if err != nil {
		return err
	}
	for _, p := range parts {
		if !p.code {
			continue
		}
		ctx.Writer.Write(DesignTimeVar + " = ")
		if err := renderValuePart(ctx, p); err != nil {
			return err
		}
		ctx.Writer.NewLine()
	}
	return nil
}

// WriteCodeStatement keeps whitespace-only statements so positions inside
// them still map.
func (w *DesignTimeWriter) WriteCodeStatement(ctx *Context, n *ir.CodeStatement) error {
	return ctx.writeStatement(n)
}

func (w *DesignTimeWriter) WriteCodeExpression(ctx *Context, n *ir.CodeExpression) error {
	ctx.Writer.Write(DesignTimeVar + " = ")
	if err := ctx.RenderChildren(n); err != nil {
		return err
	}
	ctx.Writer.NewLine()
	return nil
}

func (w *DesignTimeWriter) WriteComponent(ctx *Context, n *ir.Component) error {
	return writeComponent(ctx, n)
}

func (w *DesignTimeWriter) WriteComponentAttribute(ctx *Context, n *ir.ComponentAttribute) error {
	if ctx.inferenceArgument() {
		return writeAttributeInnards(ctx, n, false)
	}
	if skipAttribute(n) {
		return nil
	}
	ctx.Writer.Write(DesignTimeVar + " = ")
	if err := writeAttributeInnards(ctx, n, true); err != nil {
		return err
	}
	ctx.Writer.NewLine()
	return nil
}

func (w *DesignTimeWriter) WriteComponentChildContent(ctx *Context, n *ir.ComponentChildContent) error {
	if ctx.inferenceArgument() {
		return writeChildContentLambda(ctx, n)
	}
	ctx.Writer.Write(DesignTimeVar + " = ")
	if err := writeChildContentLambda(ctx, n); err != nil {
		return err
	}
	ctx.Writer.NewLine()
	return nil
}

// WriteComponentTypeArgument makes the compiler resolve the argument.
func (w *DesignTimeWriter) WriteComponentTypeArgument(ctx *Context, n *ir.ComponentTypeArgument) error {
	if n.Value == nil {
		return nil
	}
	ctx.Writer.Writef("%s = reflect.TypeFor[", DesignTimeVar)
	ctx.Writer.WriteMapped(n.Value.Span, n.Value.Content)
	ctx.Writer.Write("]()\n")
	return nil
}
