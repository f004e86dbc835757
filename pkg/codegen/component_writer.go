package codegen

import (
	"strconv"
	"strings"

	"github.com/njreid/compgen/pkg/descriptor"
	"github.com/njreid/compgen/pkg/ir"
)

// writeElementContent writes attributes and splats in source order, then
// keys, captures and the body of a markup element.
func writeElementContent(ctx *Context, n *ir.MarkupElement) error {
	return ctx.withComponent(nil, func() error {
		if err := ctx.renderAll(n.AttributesAndSplats()); err != nil {
			return err
		}
		for _, k := range n.SetKeys() {
			if err := ctx.RenderNode(k); err != nil {
				return err
			}
		}
		for _, c := range n.Captures() {
			if err := ctx.RenderNode(c); err != nil {
				return err
			}
		}
		_, exit := ctx.enterScope(ScopeElement, "")
		defer exit()
		return ctx.renderAll(n.Body())
	})
}

// writeComponent picks the direct or the type-inference path.
func writeComponent(ctx *Context, n *ir.Component) error {
	if n.Descriptor == nil && n.TypeName == "" {
		panic(contractf("component", "%s has neither a descriptor nor a type name", n.TagName))
	}
	for _, ta := range n.TypeArguments() {
		if ta.Value == nil {
			panic(contractf("component", "%s type argument %s has no value", n.TagName, ta.TypeParameterName))
		}
	}
	if err := checkComponentBody(n); err != nil {
		return err
	}
	if n.NeedsTypeInference() {
		return writeInferredComponent(ctx, n)
	}
	return writeDirectComponent(ctx, n)
}

// checkComponentBody rejects body content the binder left outside of a
// child-content node.
func checkComponentBody(n *ir.Component) error {
	for _, c := range n.Children {
		if !ir.IsBodyNode(c) {
			continue
		}
		if hc, ok := c.(*ir.HtmlContent); ok && strings.TrimSpace(ir.TextContent(hc)) == "" {
			continue
		}
		return &UnsupportedShapeError{Node: n, Reason: "body content outside of a child content block"}
	}
	return nil
}

func writeDirectComponent(ctx *Context, n *ir.Component) error {
	args := explicitTypeArguments(n)
	typ := componentTypeName(ctx, n)
	if params := typeParameterNames(n); len(params) > 0 {
		values := make([]string, len(params))
		for i, p := range params {
			values[i] = args[p]
		}
		typ += "[" + strings.Join(values, ", ") + "]"
	}
	frame := &componentFrame{node: n, typeName: typ, typeArgs: args}
	designTime := ctx.Options.Mode == DesignTime

	return ctx.withComponent(frame, func() error {
		b := ctx.BuilderName()
		if designTime {
			ctx.Writer.Writef("%s = reflect.TypeFor[%s]()\n", DesignTimeVar, typ)
		} else {
			ctx.Writer.Writef("%s[%s](%s, %s)\n", ctx.rt(OpenComponent), typ, b, ctx.nodeWriter.Sequence())
		}
		for _, ta := range n.TypeArguments() {
			if err := ctx.RenderNode(ta); err != nil {
				return err
			}
		}
		if err := ctx.renderAll(n.AttributesAndSplats()); err != nil {
			return err
		}
		contents := n.ChildContents()
		for _, cc := range contents {
			if err := ctx.RenderNode(cc); err != nil {
				return err
			}
		}
		if designTime && len(contents) == 0 {
			writeEmptyChildContent(ctx)
		}
		for _, k := range n.SetKeys() {
			if err := ctx.RenderNode(k); err != nil {
				return err
			}
		}
		for _, c := range n.Captures() {
			if err := ctx.RenderNode(c); err != nil {
				return err
			}
		}
		if !designTime {
			ctx.Writer.Writef("%s.%s()\n", b, CloseComponent)
		}
		return nil
	})
}

// writeEmptyChildContent gives tooling a builder scope for a component
// written without a body.
func writeEmptyChildContent(ctx *Context) {
	s, exit := ctx.enterScope(ScopeChildContent, "")
	defer exit()
	ctx.Writer.Writef("%s = func(%s *%s) {\n}\n", DesignTimeVar, s.BuilderName, ctx.rt(BuilderType))
}

// componentTypeName returns the component type as generated code in the
// document package names it, without type arguments.
func componentTypeName(ctx *Context, n *ir.Component) string {
	typ := n.TypeName
	if typ == "" {
		typ = descriptor.SourceName(n.Descriptor.TypeName(), n.Descriptor.PackageName())
	}
	if i := strings.IndexByte(typ, '['); i >= 0 {
		typ = typ[:i]
	}
	return localize(typ, ctx.pkg)
}

func typeParameterNames(n *ir.Component) []string {
	if n.Descriptor == nil {
		return nil
	}
	var out []string
	for _, tp := range n.Descriptor.TypeParameters() {
		out = append(out, tp.Name())
	}
	return out
}

func explicitTypeArguments(n *ir.Component) map[string]string {
	args := make(map[string]string)
	for _, ta := range n.TypeArguments() {
		args[ta.TypeParameterName] = strings.TrimSpace(ta.Value.Content)
	}
	return args
}

// skipAttribute reports attributes consumed by the binder that produce no
// code, such as the context name of parameterized child content.
func skipAttribute(n *ir.ComponentAttribute) bool {
	return n.BoundAttribute != nil && n.BoundAttribute.IsChildContentParameterName()
}

// attributeName is the name passed to the builder; directive attributes
// lose their marker.
func attributeName(n *ir.ComponentAttribute) string {
	name := n.AttributeName
	if name == "" && n.BoundAttribute != nil {
		name = n.BoundAttribute.Name()
	}
	return strings.TrimPrefix(name, "@")
}

// attributeTypeName returns the declared type of the attribute with known
// type arguments substituted.
func attributeTypeName(ctx *Context, declared string) string {
	if ctx.component != nil {
		declared = substituteTypeParameters(declared, ctx.component.typeArgs)
	}
	return localize(declared, ctx.pkg)
}

// unresolved returns the type parameters of the current component that have
// no explicit argument.
func unresolved(ctx *Context) []string {
	if ctx.component == nil {
		return nil
	}
	var out []string
	for _, tp := range typeParameterNames(ctx.component.node) {
		if _, ok := ctx.component.typeArgs[tp]; !ok {
			out = append(out, tp)
		}
	}
	return out
}

// attributeValue is the shape of a component attribute value.
type attributeValue struct {
	minimized bool
	markup    bool
	text      string
	write     func() error
}

// valueOf checks the value shape: one minimized marker, or a single markup
// or code node, or a run of tokens of one kind.
func valueOf(ctx *Context, n *ir.ComponentAttribute) (*attributeValue, error) {
	if n.Minimized {
		if len(n.Children) > 0 {
			return nil, &UnsupportedShapeError{Node: n, Reason: "minimized attribute with a value"}
		}
		return &attributeValue{minimized: true}, nil
	}
	switch len(n.Children) {
	case 0:
		return &attributeValue{markup: true}, nil
	case 1:
		switch c := n.Children[0].(type) {
		case *ir.HtmlContent, *ir.HtmlAttributeValue:
			ctx.visit(c)
			return &attributeValue{markup: true, text: ir.TextContent(c)}, nil
		case *ir.CodeExpression, *ir.CodeExpressionAttributeValue:
			return &attributeValue{write: func() error {
				ctx.visit(c)
				return ctx.RenderChildren(c)
			}}, nil
		}
	}
	var kind ir.TokenKind
	for i, c := range n.Children {
		t, ok := c.(*ir.Token)
		if !ok {
			return nil, &UnsupportedShapeError{Node: n, Reason: "value mixes " + n.Children[0].Type().String() + " and " + c.Type().String()}
		}
		if i > 0 && t.Kind != kind {
			return nil, &UnsupportedShapeError{Node: n, Reason: "value mixes markup and code tokens"}
		}
		kind = t.Kind
	}
	if kind == ir.TokenMarkup {
		return &attributeValue{markup: true, text: ir.TextContent(n)}, nil
	}
	return &attributeValue{write: func() error { return ctx.renderAll(n.Children) }}, nil
}

// writeAttributeInnards writes the value expression of a component
// parameter or event handler. typeCheck is false for factory arguments,
// whose parameter types do the checking.
func writeAttributeInnards(ctx *Context, n *ir.ComponentAttribute, typeCheck bool) error {
	v, err := valueOf(ctx, n)
	if err != nil {
		return err
	}
	switch {
	case v.minimized:
		ctx.Writer.Write("true")
		return nil
	case v.markup:
		ctx.Writer.Write(strconv.Quote(v.text))
		return nil
	}

	a := n.BoundAttribute
	kind := descriptor.AttributeDefault
	declared := n.TypeName
	if a != nil {
		kind = a.Kind()
		if declared == "" {
			declared = a.TypeName()
		}
	}
	typ := attributeTypeName(ctx, declared)
	generic := mentionsTypeParameter(typ, unresolved(ctx))
	checked := typeCheck && a != nil && !a.IsWeaklyTyped() && typ != "" && !generic

	switch kind {
	case descriptor.AttributeChildContent, descriptor.AttributeDelegate:
		if typ == "" || generic {
			return v.write()
		}
		ctx.Writer.Write(conversionType(typ) + "(")
		if err := v.write(); err != nil {
			return err
		}
		ctx.Writer.Write(")")
		return nil

	case descriptor.AttributeEventCallback:
		if checked {
			ctx.Writer.Writef("%s[%s](", ctx.rt(TypeCheck), typ)
		}
		if arg, ok := typeArgumentOf(typ, EventCallbackOf); ok && !generic {
			ctx.Writer.Writef("%s[%s](%s, ", ctx.rt(CreateEventCallbackOf), arg, ctx.Options.Receiver)
		} else {
			ctx.Writer.Writef("%s(%s, ", ctx.rt(CreateEventCallback), ctx.Options.Receiver)
		}
		if err := v.write(); err != nil {
			return err
		}
		ctx.Writer.Write(")")
		if checked {
			ctx.Writer.Write(")")
		}
		return nil

	default:
		if !checked {
			return v.write()
		}
		ctx.Writer.Writef("%s[%s](", ctx.rt(TypeCheck), typ)
		if err := v.write(); err != nil {
			return err
		}
		ctx.Writer.Write(")")
		return nil
	}
}

// childContentType returns the declared fragment type of n.
func childContentType(ctx *Context, n *ir.ComponentChildContent) (string, error) {
	declared := n.TypeName
	if declared == "" && n.BoundAttribute != nil {
		declared = n.BoundAttribute.TypeName()
	}
	if declared == "" {
		if n.IsParameterized() {
			return "", &UnsupportedShapeError{Node: n, Reason: "parameterized child content without a declared type"}
		}
		return ctx.rt(RenderFragment), nil
	}
	return attributeTypeName(ctx, declared), nil
}

// writeChildContentLambda writes the body of n as a func literal. The
// parameterized form returns the fragment for a context value.
func writeChildContentLambda(ctx *Context, n *ir.ComponentChildContent) error {
	param := ""
	var paramType string
	if n.IsParameterized() {
		typ, err := childContentType(ctx, n)
		if err != nil {
			return err
		}
		arg, ok := typeArgumentOf(typ, RenderFragmentOf)
		if !ok {
			return &UnsupportedShapeError{Node: n, Reason: "cannot read the context type of " + typ}
		}
		if mentionsTypeParameter(arg, unresolved(ctx)) {
			return &UnsupportedShapeError{Node: n, Reason: "context type " + arg + " depends on an inferred type parameter"}
		}
		param = n.ParameterName
		if param == "" {
			param = "context"
		}
		paramType = arg
	}

	return ctx.withComponent(nil, func() error {
		s, exit := ctx.enterScope(ScopeChildContent, param)
		defer exit()
		s.AttributeName = n.AttributeName

		builder := ctx.rt(BuilderType)
		if param != "" {
			ctx.Writer.Writef("func(%s %s) %s {\n", param, paramType, ctx.rt(RenderFragment)).Indent()
			ctx.Writer.Write("return ")
		}
		ctx.Writer.Writef("func(%s *%s) {\n", s.BuilderName, builder).Indent()
		if err := ctx.RenderChildren(n); err != nil {
			return err
		}
		ctx.Writer.NewLine().Dedent().Write("}")
		if param != "" {
			ctx.Writer.NewLine().Dedent().Write("}")
		}
		return nil
	})
}

// WriteSetKey writes the key call, or only the key on the type-inference
// path.
func (sharedWriter) WriteSetKey(ctx *Context, n *ir.SetKey) error {
	if n.Value == nil {
		return &UnsupportedShapeError{Node: n, Reason: "missing key expression"}
	}
	if ctx.inferenceArgument() {
		writeCode(ctx, n.Value)
		return nil
	}
	ctx.Writer.Writef("%s.%s(", ctx.BuilderName(), SetKey)
	writeCode(ctx, n.Value)
	ctx.Writer.Write(")\n")
	return nil
}

// WriteSplat spreads an attribute collection. Outside of a factory call the
// expression is checked against the collection type.
func (sharedWriter) WriteSplat(ctx *Context, n *ir.Splat) error {
	if n.Value == nil {
		return &UnsupportedShapeError{Node: n, Reason: "missing attribute collection"}
	}
	if ctx.inferenceArgument() {
		writeCode(ctx, n.Value)
		return nil
	}
	if ctx.Options.Mode == DesignTime {
		ctx.Writer.Write(DesignTimeVar + " = ")
	} else {
		ctx.Writer.Writef("%s.%s(%s, ", ctx.BuilderName(), AddMultipleAttributes, ctx.nodeWriter.Sequence())
	}
	ctx.Writer.Writef("%s[%s](", ctx.rt(TypeCheck), AttributeCollection)
	writeCode(ctx, n.Value)
	ctx.Writer.Write(")")
	if ctx.Options.Mode != DesignTime {
		ctx.Writer.Write(")")
	}
	ctx.Writer.NewLine()
	return nil
}

// WriteReferenceCapture stores the element or component reference into the
// target. A factory takes the address of the target instead.
func (sharedWriter) WriteReferenceCapture(ctx *Context, n *ir.ReferenceCapture) error {
	if n.Identifier == nil || strings.TrimSpace(n.Identifier.Content) == "" {
		return &UnsupportedShapeError{Node: n, Reason: "missing capture target"}
	}
	if ctx.inferenceArgument() {
		ctx.Writer.Write("&")
		writeCode(ctx, n.Identifier)
		return nil
	}
	b := ctx.BuilderName()
	if !n.IsComponentCapture {
		ctx.Writer.Writef("%s.%s(%s, func(%s %s) { ", b, AddElementReferenceCapture, ctx.nodeWriter.Sequence(), captureParameter, ctx.rt(ElementReference))
		writeCode(ctx, n.Identifier)
		ctx.Writer.Writef(" = %s })\n", captureParameter)
		return nil
	}
	typ := n.ComponentTypeName
	if typ == "" && ctx.component != nil {
		typ = ctx.component.typeName
	}
	if typ == "" {
		return &UnsupportedShapeError{Node: n, Reason: "component capture outside of a component"}
	}
	typ = localize(typ, ctx.pkg)
	ctx.Writer.Writef("%s.%s(%s, func(%s any) { ", b, AddComponentReferenceCapture, ctx.nodeWriter.Sequence(), captureParameter)
	writeCode(ctx, n.Identifier)
	ctx.Writer.Writef(" = %s.(*%s) })\n", captureParameter, typ)
	return nil
}
